package handlers

import (
	"net/http"

	"brewlog/internal/models"

	"github.com/gin-gonic/gin"
)

type favoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body      models.Recipe  true  "Recipe"
// @Success      200   {object}  models.Recipe
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/recipes [post]
// @Security     BearerAuth
func (h *Handler) createRecipe(c *gin.Context) {
	var input models.Recipe
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	r, err := h.services.Recipes.Create(c.Request.Context(), userID(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {array}  models.Recipe
// @Router       /api/v1/recipes [get]
// @Security     BearerAuth
func (h *Handler) listRecipes(c *gin.Context) {
	items, err := h.services.Recipes.List(c.Request.Context(), userID(c))
	if err != nil {
		h.respondStoreError(c, "recipes_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Get one recipe with its steps
// @Tags         recipes
// @Produce      json
// @Param        id  path      int  true  "Recipe ID"
// @Success      200  {object}  models.Recipe
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/recipes/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := h.services.Recipes.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.respondStoreError(c, "recipe_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Update a recipe
// @Description  Replaces the recipe and its steps. Historical brews keep their copied values.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Recipe ID"
// @Param        body  body      models.Recipe  true  "Recipe"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/recipes/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input models.Recipe
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.ID = id
	if err := h.services.Recipes.Update(c.Request.Context(), userID(c), input); err != nil {
		h.respondStoreError(c, "recipe_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete a recipe
// @Tags         recipes
// @Produce      json
// @Param        id  path      int  true  "Recipe ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/recipes/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.Recipes.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "recipe_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

// @Summary      Mark or unmark a recipe as favorite
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Recipe ID"
// @Param        body  body      favoriteRequest  true  "Flag"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/recipes/{id}/favorite [put]
// @Security     BearerAuth
func (h *Handler) setRecipeFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input favoriteRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if err := h.services.Recipes.SetFavorite(c.Request.Context(), userID(c), id, *input.Favorite); err != nil {
		h.respondStoreError(c, "recipe_favorite_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}
