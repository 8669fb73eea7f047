package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brewlog/internal/brewing"
	"brewlog/internal/models"
	"brewlog/internal/repository"
)

var (
	errInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	errInvalidRating    = errors.New("rating must be between 1 and 5")
)

// BrewService runs the derivation engine over drafts and owns the brew
// log. Draft operations are pure; only finalize touches storage.
type BrewService struct {
	brewRepo   repository.BrewRepo
	recipeRepo repository.RecipeRepo
}

func NewBrewService(brewRepo repository.BrewRepo, recipeRepo repository.RecipeRepo) *BrewService {
	return &BrewService{brewRepo: brewRepo, recipeRepo: recipeRepo}
}

// SelectRecipe loads the user's recipe and snapshots it into the
// draft. Loading through the scoped repository doubles as the
// ownership check.
func (s *BrewService) SelectRecipe(ctx context.Context, userID int, d brewing.Draft, recipeID int) (brewing.Draft, error) {
	rec, err := s.recipeRepo.GetByID(ctx, userID, recipeID)
	if err != nil {
		return d, err
	}
	return brewing.SelectRecipe(d, rec)
}

// EditDraft applies one user edit through the pure reducer.
func (s *BrewService) EditDraft(d brewing.Draft, e brewing.Edit) (brewing.Draft, error) {
	return brewing.ApplyEdit(d, e)
}

// ResumeDraft merges values carried back from the timer sub-view.
func (s *BrewService) ResumeDraft(d brewing.Draft, c brewing.CarryOver) (brewing.Draft, error) {
	return brewing.Resume(d, c)
}

// FinalizeDraft validates the draft, persists the resulting brew and
// returns the stored record plus the finalized draft. Validation
// failures come back as per-field errors with no storage side effects.
func (s *BrewService) FinalizeDraft(ctx context.Context, userID int, d brewing.Draft) (models.Brew, brewing.Draft, []brewing.FieldError, error) {
	brew, next, fieldErrs := brewing.Finalize(d, time.Now())
	if len(fieldErrs) > 0 {
		return models.Brew{}, d, fieldErrs, nil
	}

	brew.UserID = userID
	id, err := s.brewRepo.Create(ctx, brew)
	if err != nil {
		return models.Brew{}, d, nil, fmt.Errorf("persist brew: %w", err)
	}
	brew.ID = id
	return brew, next, nil, nil
}

func (s *BrewService) List(ctx context.Context, userID int, f BrewFilter) ([]models.Brew, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.brewRepo.List(ctx, userID, from, to, f.BeanID, f.FavoriteOnly)
}

func (s *BrewService) Get(ctx context.Context, userID, id int) (models.Brew, error) {
	return s.brewRepo.GetByID(ctx, userID, id)
}

// UpdateEvaluation edits the post-brew fields. Extraction yield is
// recomputed from the stored dose/yield whenever TDS changes and stays
// unset while the metric is not computable; it is never user-editable.
func (s *BrewService) UpdateEvaluation(ctx context.Context, userID, id int, p EvaluationParams) (models.Brew, error) {
	if p.Rating < 0 || p.Rating > 5 {
		return models.Brew{}, errInvalidRating
	}

	brew, err := s.brewRepo.GetByID(ctx, userID, id)
	if err != nil {
		return models.Brew{}, err
	}

	var ey *float64
	if p.TDS != nil {
		if v, err := brewing.ExtractionYield(*p.TDS, brew.YieldG, brew.DoseG); err == nil {
			ey = &v
		}
	}

	if err := s.brewRepo.UpdateEvaluation(ctx, userID, id, p.Rating, p.Comment, p.TDS, ey); err != nil {
		return models.Brew{}, err
	}

	brew.Rating = p.Rating
	brew.Comment = p.Comment
	brew.TDS = p.TDS
	brew.ExtractionYield = ey
	return brew, nil
}

func (s *BrewService) SetPhoto(ctx context.Context, userID, id int, path string) error {
	return s.brewRepo.SetPhoto(ctx, userID, id, path)
}

func (s *BrewService) SetFavorite(ctx context.Context, userID, id int, favorite bool) error {
	return s.brewRepo.SetFavorite(ctx, userID, id, favorite)
}

func (s *BrewService) Delete(ctx context.Context, userID, id int) error {
	return s.brewRepo.Delete(ctx, userID, id)
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
