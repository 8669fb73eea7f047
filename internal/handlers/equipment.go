package handlers

import (
	"net/http"

	"brewlog/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Register a grinder
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        body  body      models.Grinder  true  "Grinder"
// @Success      200   {object}  models.Grinder
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/grinders [post]
// @Security     BearerAuth
func (h *Handler) createGrinder(c *gin.Context) {
	var input models.Grinder
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	g, err := h.services.CreateGrinder(c.Request.Context(), userID(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, g)
}

// @Summary      List grinders
// @Tags         equipment
// @Produce      json
// @Success      200  {array}   models.Grinder
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/grinders [get]
// @Security     BearerAuth
func (h *Handler) listGrinders(c *gin.Context) {
	items, err := h.services.ListGrinders(c.Request.Context(), userID(c))
	if err != nil {
		h.respondStoreError(c, "grinders_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Update a grinder
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Grinder ID"
// @Param        body  body      models.Grinder  true  "Grinder"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/grinders/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateGrinder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input models.Grinder
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.ID = id
	if err := h.services.UpdateGrinder(c.Request.Context(), userID(c), input); err != nil {
		h.respondStoreError(c, "grinder_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete a grinder
// @Tags         equipment
// @Produce      json
// @Param        id  path      int  true  "Grinder ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/grinders/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteGrinder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteGrinder(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "grinder_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

// @Summary      Register a brewer
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        body  body      models.Brewer  true  "Brewer"
// @Success      200   {object}  models.Brewer
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/brewers [post]
// @Security     BearerAuth
func (h *Handler) createBrewer(c *gin.Context) {
	var input models.Brewer
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	b, err := h.services.CreateBrewer(c.Request.Context(), userID(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      List brewers
// @Tags         equipment
// @Produce      json
// @Success      200  {array}  models.Brewer
// @Router       /api/v1/brewers [get]
// @Security     BearerAuth
func (h *Handler) listBrewers(c *gin.Context) {
	items, err := h.services.ListBrewers(c.Request.Context(), userID(c))
	if err != nil {
		h.respondStoreError(c, "brewers_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Update a brewer
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Brewer ID"
// @Param        body  body      models.Brewer  true  "Brewer"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/brewers/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBrewer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input models.Brewer
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.ID = id
	if err := h.services.UpdateBrewer(c.Request.Context(), userID(c), input); err != nil {
		h.respondStoreError(c, "brewer_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete a brewer
// @Tags         equipment
// @Produce      json
// @Param        id  path      int  true  "Brewer ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/brewers/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBrewer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteBrewer(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "brewer_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

// @Summary      Register a server (carafe)
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        body  body      models.Server  true  "Server"
// @Success      200   {object}  models.Server
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/servers [post]
// @Security     BearerAuth
func (h *Handler) createServer(c *gin.Context) {
	var input models.Server
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	s, err := h.services.CreateServer(c.Request.Context(), userID(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      List servers
// @Tags         equipment
// @Produce      json
// @Success      200  {array}  models.Server
// @Router       /api/v1/servers [get]
// @Security     BearerAuth
func (h *Handler) listServers(c *gin.Context) {
	items, err := h.services.ListServers(c.Request.Context(), userID(c))
	if err != nil {
		h.respondStoreError(c, "servers_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Update a server
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Server ID"
// @Param        body  body      models.Server  true  "Server"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/servers/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateServer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input models.Server
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.ID = id
	if err := h.services.UpdateServer(c.Request.Context(), userID(c), input); err != nil {
		h.respondStoreError(c, "server_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete a server
// @Tags         equipment
// @Produce      json
// @Param        id  path      int  true  "Server ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/servers/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteServer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteServer(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "server_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
