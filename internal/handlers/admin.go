package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      Usage statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.UsageStats
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/admin/stats [get]
// @Security     BearerAuth
func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.services.Usage(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load stats", "admin_stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Daily brew counts
// @Tags         admin
// @Produce      json
// @Param        days  query     int  false  "Window in days (default 30, max 365)"
// @Success      200   {object}  map[string]interface{}  "days"
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/admin/stats/brews-per-day [get]
// @Security     BearerAuth
func (h *Handler) adminBrewsPerDay(c *gin.Context) {
	days := 0
	if qs := c.Query("days"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = v
	}
	counts, err := h.services.BrewsPerDay(c.Request.Context(), days)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load stats", "admin_brews_per_day_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": counts})
}
