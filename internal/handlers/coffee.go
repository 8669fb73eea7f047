package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"brewlog/internal/models"
	"brewlog/internal/repository"

	"github.com/gin-gonic/gin"
)

// @Summary      Add a coffee bean
// @Tags         coffee
// @Accept       json
// @Produce      json
// @Param        body  body      models.CoffeeBean  true  "Bean"
// @Success      200   {object}  models.CoffeeBean
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/beans [post]
// @Security     BearerAuth
func (h *Handler) createBean(c *gin.Context) {
	var input models.CoffeeBean
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	b, err := h.services.CreateBean(c.Request.Context(), userID(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      List coffee beans
// @Tags         coffee
// @Produce      json
// @Success      200  {array}  models.CoffeeBean
// @Router       /api/v1/beans [get]
// @Security     BearerAuth
func (h *Handler) listBeans(c *gin.Context) {
	items, err := h.services.ListBeans(c.Request.Context(), userID(c))
	if err != nil {
		h.respondStoreError(c, "beans_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Update a coffee bean
// @Tags         coffee
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Bean ID"
// @Param        body  body      models.CoffeeBean  true  "Bean"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/beans/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBean(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input models.CoffeeBean
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.ID = id
	if err := h.services.UpdateBean(c.Request.Context(), userID(c), input); err != nil {
		h.respondStoreError(c, "bean_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete a coffee bean
// @Tags         coffee
// @Produce      json
// @Param        id  path      int  true  "Bean ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/beans/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBean(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteBean(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "bean_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

// @Summary      Add a purchase batch
// @Tags         coffee
// @Accept       json
// @Produce      json
// @Param        body  body      models.CoffeeBatch  true  "Batch"
// @Success      200   {object}  models.CoffeeBatch
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string  "bean not found"
// @Router       /api/v1/batches [post]
// @Security     BearerAuth
func (h *Handler) createBatch(c *gin.Context) {
	var input models.CoffeeBatch
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	b, err := h.services.CreateBatch(c.Request.Context(), userID(c), input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bean not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      List purchase batches
// @Tags         coffee
// @Produce      json
// @Param        bean_id  query     int  false  "Filter by bean"
// @Success      200      {array}   models.CoffeeBatch
// @Router       /api/v1/batches [get]
// @Security     BearerAuth
func (h *Handler) listBatches(c *gin.Context) {
	beanID := 0
	if qs := c.Query("bean_id"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bean_id"})
			return
		}
		beanID = v
	}
	items, err := h.services.ListBatches(c.Request.Context(), userID(c), beanID)
	if err != nil {
		h.respondStoreError(c, "batches_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Update a purchase batch
// @Tags         coffee
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Batch ID"
// @Param        body  body      models.CoffeeBatch  true  "Batch"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/batches/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input models.CoffeeBatch
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.ID = id
	if err := h.services.UpdateBatch(c.Request.Context(), userID(c), input); err != nil {
		h.respondStoreError(c, "batch_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete a purchase batch
// @Tags         coffee
// @Produce      json
// @Param        id  path      int  true  "Batch ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/batches/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteBatch(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "batch_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

type consumeRequest struct {
	AmountG float64 `json:"amount_g" binding:"required"`
}

// @Summary      Consume grams from a batch
// @Description  Atomically subtracts the used amount from the remaining weight, clamped at zero.
// @Tags         coffee
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Batch ID"
// @Param        body  body      consumeRequest  true  "Amount"
// @Success      200   {object}  map[string]interface{}  "current_weight_g"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/batches/{id}/consume [patch]
// @Security     BearerAuth
func (h *Handler) consumeBatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input consumeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	remaining, err := h.services.ConsumeBatch(c.Request.Context(), userID(c), id, input.AmountG)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_weight_g": remaining})
}
