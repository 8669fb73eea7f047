package handlers

import (
	"errors"
	"net/http"

	"brewlog/internal/brewing"
	"brewlog/internal/repository"

	"github.com/gin-gonic/gin"
)

// Draft requests carry the whole draft value in the body and get the
// next draft back. Nothing is stored server-side until finalize, so
// concurrent sessions on different devices can never see each other's
// half-built brew.

type selectRecipeRequest struct {
	Draft    brewing.Draft `json:"draft"`
	RecipeID int           `json:"recipe_id" binding:"required"`
}

type editRequest struct {
	Draft brewing.Draft `json:"draft"`
	Edit  brewing.Edit  `json:"edit" binding:"required"`
}

type resumeRequest struct {
	Draft     brewing.Draft     `json:"draft"`
	CarryOver brewing.CarryOver `json:"carry_over"`
}

type noteRequest struct {
	Draft brewing.Draft `json:"draft"`
	Key   string        `json:"key" binding:"required"`
	Value string        `json:"value"`
}

type finalizeRequest struct {
	Draft brewing.Draft `json:"draft"`
}

// respondDraftError maps reducer errors: a finalized draft is a
// conflict, everything else a bad request.
func respondDraftError(c *gin.Context, err error) {
	if errors.Is(err, brewing.ErrDraftFinalized) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// @Summary      Start an empty brew draft
// @Tags         draft
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "draft"
// @Router       /api/v1/draft/new [get]
// @Security     BearerAuth
func (h *Handler) newDraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"draft": brewing.NewDraft()})
}

// @Summary      Apply a recipe to the draft
// @Description  Snapshots the recipe's parameters into the draft; fields already edited this session keep their values.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      selectRecipeRequest  true  "Draft and recipe id"
// @Success      200   {object}  map[string]interface{}  "draft"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/draft/select-recipe [post]
// @Security     BearerAuth
func (h *Handler) draftSelectRecipe(c *gin.Context) {
	var input selectRecipeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := h.services.Brews.SelectRecipe(c.Request.Context(), userID(c), input.Draft, input.RecipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		respondDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// @Summary      Edit one draft field
// @Description  Applies the edit and returns the reconciled draft; dose and ratio edits recompute water, water edits re-derive the ratio.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      editRequest  true  "Draft and edit"
// @Success      200   {object}  map[string]interface{}  "draft"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/draft/edit [post]
// @Security     BearerAuth
func (h *Handler) draftEdit(c *gin.Context) {
	var input editRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := h.services.Brews.EditDraft(input.Draft, input.Edit)
	if err != nil {
		respondDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// @Summary      Merge values carried back from the timer
// @Description  Carried values fill non-edited fields only and never override this session's edits.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      resumeRequest  true  "Draft and carried values"
// @Success      200   {object}  map[string]interface{}  "draft"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/draft/resume [post]
// @Security     BearerAuth
func (h *Handler) draftResume(c *gin.Context) {
	var input resumeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := h.services.Brews.ResumeDraft(input.Draft, input.CarryOver)
	if err != nil {
		respondDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// @Summary      Set a template note on the draft
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      noteRequest  true  "Draft, key, value"
// @Success      200   {object}  map[string]interface{}  "draft"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/draft/note [post]
// @Security     BearerAuth
func (h *Handler) draftNote(c *gin.Context) {
	var input noteRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	draft, err := brewing.SetTemplateNote(input.Draft, input.Key, input.Value)
	if err != nil {
		respondDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// @Summary      Finalize the draft into a saved brew
// @Description  Validates every required field and persists the brew. Failures come back per field with no side effects.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      finalizeRequest  true  "Draft"
// @Success      200   {object}  map[string]interface{}  "brew, draft"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}  "field_errors"
// @Router       /api/v1/draft/finalize [post]
// @Security     BearerAuth
func (h *Handler) draftFinalize(c *gin.Context) {
	var input finalizeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	brew, draft, fieldErrs, err := h.services.Brews.FinalizeDraft(c.Request.Context(), userID(c), input.Draft)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save brew", "draft_finalize_failed", err)
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"field_errors": fieldErrs, "draft": draft})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brew": brew, "draft": draft})
}
