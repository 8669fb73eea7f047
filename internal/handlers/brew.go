package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"brewlog/internal/models"
	"brewlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"

	maxPhotoBytes = 10 << 20 // 10 MB
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

// parseBrewFilter reads the shared list/export query parameters.
// Returns false when the request was already answered with a 400.
func (h *Handler) parseBrewFilter(c *gin.Context) (service.BrewFilter, bool) {
	var f service.BrewFilter

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return f, false
		}
		f.From = t
	}
	// If only a date is provided, make 'to' end-of-day inclusive.
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return f, false
		}
		if isDateOnly(qs) {
			t = t.Add(24*time.Hour - time.Nanosecond).UTC()
		}
		f.To = t
	}
	if qs := c.Query("bean_id"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bean_id"})
			return f, false
		}
		f.BeanID = v
	}
	f.FavoriteOnly = c.Query("favorite") == "true"
	return f, true
}

// @Summary      List brews
// @Description  Filter by date range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'; date-only 'to' is end-of-day inclusive), bean and favorite flag. Newest first.
// @Tags         brews
// @Produce      json
// @Param        from      query     string  false  "Start of range"  example(2026-08-01)
// @Param        to        query     string  false  "End of range"    example(2026-08-31)
// @Param        bean_id   query     int     false  "Filter by bean"
// @Param        favorite  query     bool    false  "Favorites only"
// @Success      200       {object}  map[string]interface{}  "count, brews"
// @Failure      400       {object}  map[string]string
// @Router       /api/v1/brews [get]
// @Security     BearerAuth
func (h *Handler) listBrews(c *gin.Context) {
	filter, ok := h.parseBrewFilter(c)
	if !ok {
		return
	}
	brews, err := h.services.Brews.List(c.Request.Context(), userID(c), filter)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("brews_list_failed", "err", err, "from", filter.From, "to", filter.To)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(brews),
		"brews": brews,
	})
}

// @Summary      Export brews as CSV
// @Description  Same filters as the list endpoint; streams a CSV attachment.
// @Tags         brews
// @Produce      text/csv
// @Param        from      query  string  false  "Start of range"
// @Param        to        query  string  false  "End of range"
// @Param        bean_id   query  int     false  "Filter by bean"
// @Param        favorite  query  bool    false  "Favorites only"
// @Success      200  {string}  string  "CSV data"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/brews/export [get]
// @Security     BearerAuth
func (h *Handler) exportBrews(c *gin.Context) {
	filter, ok := h.parseBrewFilter(c)
	if !ok {
		return
	}
	brews, err := h.services.Brews.List(c.Request.Context(), userID(c), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="brews.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"id", "brewed_at", "coffee_bean_id", "recipe_id",
		"dose_g", "grind_size", "water_g", "yield_g", "temp_c", "brew_time",
		"tds", "extraction_yield", "rating", "comment", "favorite",
	})
	for _, b := range brews {
		_ = w.Write(brewCSVRow(b))
	}
	w.Flush()
}

func brewCSVRow(b models.Brew) []string {
	float := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	optional := func(v *float64) string {
		if v == nil {
			return ""
		}
		return float(*v)
	}
	return []string{
		strconv.Itoa(b.ID),
		b.BrewedAt.UTC().Format(time.RFC3339),
		strconv.Itoa(b.CoffeeBeanID),
		strconv.Itoa(b.RecipeID),
		float(b.DoseG),
		float(b.GrindSize),
		float(b.WaterG),
		float(b.YieldG),
		float(b.TempC),
		b.BrewTime,
		optional(b.TDS),
		optional(b.ExtractionYield),
		strconv.Itoa(b.Rating),
		b.Comment,
		strconv.FormatBool(b.Favorite),
	}
}

// @Summary      Get one brew
// @Tags         brews
// @Produce      json
// @Param        id  path      int  true  "Brew ID"
// @Success      200  {object}  models.Brew
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/brews/{id} [get]
// @Security     BearerAuth
func (h *Handler) getBrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.services.Brews.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		h.respondStoreError(c, "brew_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type evaluationRequest struct {
	Rating  int      `json:"rating"`
	Comment string   `json:"comment"`
	TDS     *float64 `json:"tds"`
}

// @Summary      Update a brew's evaluation
// @Description  Rating, comment and measured TDS are the only editable fields after creation; extraction yield is derived, never set directly.
// @Tags         brews
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Brew ID"
// @Param        body  body      evaluationRequest  true  "Evaluation"
// @Success      200   {object}  models.Brew
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/brews/{id}/evaluation [put]
// @Security     BearerAuth
func (h *Handler) updateBrewEvaluation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input evaluationRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	b, err := h.services.Brews.UpdateEvaluation(c.Request.Context(), userID(c), id, service.EvaluationParams{
		Rating:  input.Rating,
		Comment: input.Comment,
		TDS:     input.TDS,
	})
	if err != nil {
		h.respondStoreError(c, "brew_evaluation_failed", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Mark or unmark a brew as favorite
// @Tags         brews
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Brew ID"
// @Param        body  body      favoriteRequest  true  "Flag"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/brews/{id}/favorite [put]
// @Security     BearerAuth
func (h *Handler) setBrewFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input favoriteRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if err := h.services.Brews.SetFavorite(c.Request.Context(), userID(c), id, *input.Favorite); err != nil {
		h.respondStoreError(c, "brew_favorite_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Attach a photo to a brew
// @Description  Multipart upload, field name "photo". The file lands in the uploads dir under a random name.
// @Tags         brews
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      int   true  "Brew ID"
// @Param        photo  formData  file  true  "Photo"
// @Success      200    {object}  map[string]string  "photo_path"
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/brews/{id}/photo [post]
// @Security     BearerAuth
func (h *Handler) uploadBrewPhoto(c *gin.Context) {
	if h.uploadsDir == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo uploads are not configured"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'photo' form file"})
		return
	}
	if file.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 10 MB limit"})
		return
	}

	// Random name keeps uploads collision-free and hides the original filename.
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(h.uploadsDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to store photo", "brew_photo_save_failed", err)
		return
	}
	if err := h.services.Brews.SetPhoto(c.Request.Context(), userID(c), id, name); err != nil {
		h.respondStoreError(c, "brew_photo_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_path": name})
}

// @Summary      Delete a brew
// @Tags         brews
// @Produce      json
// @Param        id  path      int  true  "Brew ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/brews/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.services.Brews.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.respondStoreError(c, "brew_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
