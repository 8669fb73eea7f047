package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"brewlog/internal/service"

	"github.com/gin-gonic/gin"
)

type bagScanRequest struct {
	// Image is the photo bytes, base64-encoded.
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
}

// @Summary      Read bag metadata from a photo
// @Description  Sends the photo to the vision model and returns the recognized fields. Everything is a suggestion; nothing is stored until the user saves the bean.
// @Tags         vision
// @Accept       json
// @Produce      json
// @Param        body  body      bagScanRequest  true  "Base64 photo"
// @Success      200   {object}  ai.BagInfo
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/vision/bag-scan [post]
// @Security     BearerAuth
func (h *Handler) scanBag(c *gin.Context) {
	var input bagScanRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	image, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64-encoded"})
		return
	}
	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	info, err := h.services.AnalyzeBag(c.Request.Context(), image, mimeType)
	if err != nil {
		if errors.Is(err, service.ErrVisionUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusBadGateway, "bag scan failed", "vision_bag_scan_failed", err)
		return
	}
	c.JSON(http.StatusOK, info)
}
