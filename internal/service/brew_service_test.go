package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"brewlog/internal/brewing"
	"brewlog/internal/models"
	"brewlog/internal/repository"
)

type fakeBrewRepo struct {
	nextID  int
	created []models.Brew
	brews   map[int]models.Brew

	evalUserID int
	evalID     int
	evalRating int
	evalTDS    *float64
	evalEY     *float64
}

func newFakeBrewRepo() *fakeBrewRepo {
	return &fakeBrewRepo{nextID: 1, brews: map[int]models.Brew{}}
}

func (f *fakeBrewRepo) Create(_ context.Context, b models.Brew) (int, error) {
	id := f.nextID
	f.nextID++
	b.ID = id
	f.created = append(f.created, b)
	f.brews[id] = b
	return id, nil
}

func (f *fakeBrewRepo) List(_ context.Context, _ int, _, _ time.Time, _ int, _ bool) ([]models.Brew, error) {
	out := make([]models.Brew, 0, len(f.brews))
	for _, b := range f.brews {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBrewRepo) GetByID(_ context.Context, userID, id int) (models.Brew, error) {
	b, ok := f.brews[id]
	if !ok || b.UserID != userID {
		return models.Brew{}, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeBrewRepo) UpdateEvaluation(_ context.Context, userID, id, rating int, comment string, tds, ey *float64) error {
	if _, ok := f.brews[id]; !ok {
		return repository.ErrNotFound
	}
	f.evalUserID = userID
	f.evalID = id
	f.evalRating = rating
	f.evalTDS = tds
	f.evalEY = ey
	return nil
}

func (f *fakeBrewRepo) SetPhoto(_ context.Context, _, _ int, _ string) error  { return nil }
func (f *fakeBrewRepo) SetFavorite(_ context.Context, _, _ int, _ bool) error { return nil }

func (f *fakeBrewRepo) Delete(_ context.Context, _, id int) error {
	delete(f.brews, id)
	return nil
}

type fakeRecipeRepo struct {
	recipes map[int]models.Recipe
}

func (f *fakeRecipeRepo) Create(_ context.Context, _ models.Recipe) (int, error) { return 0, nil }
func (f *fakeRecipeRepo) List(_ context.Context, _ int) ([]models.Recipe, error) { return nil, nil }
func (f *fakeRecipeRepo) GetByID(_ context.Context, userID, id int) (models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok || r.UserID != userID {
		return models.Recipe{}, repository.ErrNotFound
	}
	return r, nil
}
func (f *fakeRecipeRepo) Update(_ context.Context, _ models.Recipe) error { return nil }
func (f *fakeRecipeRepo) Delete(_ context.Context, _, _ int) error        { return nil }
func (f *fakeRecipeRepo) SetFavorite(_ context.Context, _, _ int, _ bool) error {
	return nil
}

func editedDraft(t *testing.T) brewing.Draft {
	t.Helper()
	d := brewing.NewDraft()
	edits := []brewing.Edit{
		{Field: brewing.FieldCoffeeBeanID, Value: 4},
		{Field: brewing.FieldGrinderID, Value: 2},
		{Field: brewing.FieldBrewerID, Value: 3},
		{Field: brewing.FieldDoseG, Value: 18.0},
		{Field: brewing.FieldRatio, Value: "1:15"},
		{Field: brewing.FieldYieldG, Value: 250.0},
		{Field: brewing.FieldTempC, Value: 93.0},
		{Field: brewing.FieldBrewTime, Value: "02:30"},
	}
	for _, e := range edits {
		var err error
		d, err = brewing.ApplyEdit(d, e)
		if err != nil {
			t.Fatalf("edit %s: %v", e.Field, err)
		}
	}
	return d
}

func TestFinalizeDraftPersists(t *testing.T) {
	brewRepo := newFakeBrewRepo()
	svc := NewBrewService(brewRepo, &fakeRecipeRepo{})

	brew, next, fieldErrs, err := svc.FinalizeDraft(context.Background(), 7, editedDraft(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) != 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if brew.ID != 1 {
		t.Errorf("brew.ID = %d, want 1", brew.ID)
	}
	if brew.UserID != 7 {
		t.Errorf("brew.UserID = %d, want 7", brew.UserID)
	}
	if next.State != brewing.StateFinalized {
		t.Errorf("next.State = %q, want %q", next.State, brewing.StateFinalized)
	}
	if len(brewRepo.created) != 1 {
		t.Fatalf("created %d brews, want 1", len(brewRepo.created))
	}
	if got := brewRepo.created[0].WaterG; got != 270 {
		t.Errorf("persisted WaterG = %v, want 270", got)
	}
}

func TestFinalizeDraftInvalidDoesNotPersist(t *testing.T) {
	brewRepo := newFakeBrewRepo()
	svc := NewBrewService(brewRepo, &fakeRecipeRepo{})

	d := brewing.NewDraft() // everything missing
	_, next, fieldErrs, err := svc.FinalizeDraft(context.Background(), 7, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) == 0 {
		t.Fatal("expected field errors for empty draft")
	}
	if len(brewRepo.created) != 0 {
		t.Errorf("created %d brews, want 0", len(brewRepo.created))
	}
	if next.State == brewing.StateFinalized {
		t.Error("draft must not finalize on validation failure")
	}
}

func TestSelectRecipeChecksOwnership(t *testing.T) {
	recipes := &fakeRecipeRepo{recipes: map[int]models.Recipe{
		5: {ID: 5, UserID: 2, Name: "V60", Ratio: "1:16", DoseG: 15},
	}}
	svc := NewBrewService(newFakeBrewRepo(), recipes)

	_, err := svc.SelectRecipe(context.Background(), 1, brewing.NewDraft(), 5)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("foreign recipe: err = %v, want ErrNotFound", err)
	}

	d, err := svc.SelectRecipe(context.Background(), 2, brewing.NewDraft(), 5)
	if err != nil {
		t.Fatalf("own recipe: %v", err)
	}
	if d.DoseG != 15 || d.Ratio != "1:16" {
		t.Errorf("draft = %+v, recipe defaults not applied", d)
	}
}

func TestUpdateEvaluationRecomputesExtractionYield(t *testing.T) {
	brewRepo := newFakeBrewRepo()
	brewRepo.brews[3] = models.Brew{ID: 3, UserID: 7, DoseG: 18, YieldG: 250}
	svc := NewBrewService(brewRepo, &fakeRecipeRepo{})

	tds := 1.35
	brew, err := svc.UpdateEvaluation(context.Background(), 7, 3, EvaluationParams{Rating: 4, TDS: &tds})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brew.ExtractionYield == nil {
		t.Fatal("expected extraction yield to be computed")
	}
	if got := *brew.ExtractionYield; got != 18.75 {
		t.Errorf("extraction yield = %v, want 18.75", got)
	}
	if brewRepo.evalEY == nil || *brewRepo.evalEY != 18.75 {
		t.Errorf("persisted extraction yield = %v, want 18.75", brewRepo.evalEY)
	}
}

func TestUpdateEvaluationYieldStaysUnsetWithoutDose(t *testing.T) {
	brewRepo := newFakeBrewRepo()
	brewRepo.brews[3] = models.Brew{ID: 3, UserID: 7, DoseG: 0, YieldG: 250}
	svc := NewBrewService(brewRepo, &fakeRecipeRepo{})

	tds := 1.35
	brew, err := svc.UpdateEvaluation(context.Background(), 7, 3, EvaluationParams{Rating: 4, TDS: &tds})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brew.ExtractionYield != nil {
		t.Errorf("extraction yield = %v, want nil when dose is missing", *brew.ExtractionYield)
	}
}

func TestUpdateEvaluationRejectsBadRating(t *testing.T) {
	svc := NewBrewService(newFakeBrewRepo(), &fakeRecipeRepo{})
	if _, err := svc.UpdateEvaluation(context.Background(), 7, 3, EvaluationParams{Rating: 6}); err == nil {
		t.Fatal("expected error for rating 6")
	}
}

func TestListRejectsInvertedRange(t *testing.T) {
	svc := NewBrewService(newFakeBrewRepo(), &fakeRecipeRepo{})
	f := BrewFilter{
		From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := svc.List(context.Background(), 7, f); err == nil {
		t.Fatal("expected error for from > to")
	}
}
