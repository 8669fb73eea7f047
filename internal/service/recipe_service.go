package service

import (
	"context"
	"fmt"
	"strings"

	"brewlog/internal/brewing"
	"brewlog/internal/models"
	"brewlog/internal/repository"
)

// RecipeService validates and stores brew templates.
type RecipeService struct {
	repo repository.RecipeRepo
}

func NewRecipeService(repo repository.RecipeRepo) *RecipeService {
	return &RecipeService{repo: repo}
}

// validateRecipe checks the fields the engine later relies on: a
// parseable ratio and positive physical parameters where present.
func validateRecipe(r *models.Recipe) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errNameRequired
	}
	if r.Ratio != "" {
		if _, err := brewing.ParseRatio(r.Ratio); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"dose_g", r.DoseG},
		{"water_g", r.WaterG},
		{"yield_g", r.YieldG},
		{"temp_c", r.TempC},
		{"grind_size", r.GrindSize},
	} {
		if v.val < 0 {
			return fmt.Errorf("%s must not be negative", v.name)
		}
	}
	for i := range r.Steps {
		r.Steps[i].Description = strings.TrimSpace(r.Steps[i].Description)
		if r.Steps[i].Description == "" {
			return fmt.Errorf("step %d: description is required", i+1)
		}
		if r.Steps[i].Position == 0 {
			r.Steps[i].Position = i + 1
		}
	}
	return nil
}

func (s *RecipeService) Create(ctx context.Context, userID int, r models.Recipe) (models.Recipe, error) {
	if err := validateRecipe(&r); err != nil {
		return models.Recipe{}, err
	}
	r.UserID = userID
	id, err := s.repo.Create(ctx, r)
	if err != nil {
		return models.Recipe{}, err
	}
	r.ID = id
	return r, nil
}

func (s *RecipeService) List(ctx context.Context, userID int) ([]models.Recipe, error) {
	return s.repo.List(ctx, userID)
}

func (s *RecipeService) Get(ctx context.Context, userID, id int) (models.Recipe, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *RecipeService) Update(ctx context.Context, userID int, r models.Recipe) error {
	if err := validateRecipe(&r); err != nil {
		return err
	}
	r.UserID = userID
	return s.repo.Update(ctx, r)
}

func (s *RecipeService) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *RecipeService) SetFavorite(ctx context.Context, userID, id int, favorite bool) error {
	return s.repo.SetFavorite(ctx, userID, id, favorite)
}
