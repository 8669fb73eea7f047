package brewing

import (
	"errors"
	"math"
	"testing"
	"time"

	"brewlog/internal/models"
)

func recipeA() models.Recipe {
	return models.Recipe{
		ID:        1,
		Name:      "V60 morning",
		GrinderID: 3,
		BrewerID:  4,
		Ratio:     "1:16",
		DoseG:     18,
		GrindSize: 24,
		WaterG:    288,
		YieldG:    250,
		TempC:     93,
		BrewTime:  "02:45",
	}
}

func recipeB() models.Recipe {
	return models.Recipe{
		ID:        2,
		Name:      "Aeropress",
		GrinderID: 5,
		BrewerID:  6,
		Ratio:     "1:13",
		DoseG:     15,
		GrindSize: 18,
		WaterG:    195,
		YieldG:    180,
		TempC:     85,
		BrewTime:  "01:30",
	}
}

func mustEdit(t *testing.T, d Draft, f Field, v any) Draft {
	t.Helper()
	next, err := ApplyEdit(d, Edit{Field: f, Value: v})
	if err != nil {
		t.Fatalf("ApplyEdit(%s, %v): %v", f, v, err)
	}
	return next
}

func TestSelectRecipe_SnapshotsAllFields(t *testing.T) {
	d, err := SelectRecipe(NewDraft(), recipeA())
	if err != nil {
		t.Fatalf("SelectRecipe: %v", err)
	}
	if d.State != StateRecipeSelected {
		t.Fatalf("state = %s, want %s", d.State, StateRecipeSelected)
	}
	if d.RecipeID != 1 || d.GrinderID != 3 || d.BrewerID != 4 {
		t.Fatalf("references not copied: %+v", d)
	}
	if d.Ratio != "1:16" || d.DoseG != 18 || d.WaterG != 288 || d.BrewTime != "02:45" {
		t.Fatalf("parameters not copied: %+v", d)
	}
	if len(d.Dirty) != 0 {
		t.Fatalf("snapshot must not mark fields dirty: %v", d.Dirty)
	}
}

func TestReselectRecipe_PreservesDirtyFieldsOnly(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldDoseG, 20.0)

	d, err := SelectRecipe(d, recipeB())
	if err != nil {
		t.Fatalf("SelectRecipe(B): %v", err)
	}
	// dose keeps the user edit; everything else takes recipe B's defaults
	if d.DoseG != 20 {
		t.Fatalf("dose = %v, want user-edited 20", d.DoseG)
	}
	if d.GrindSize != 18 {
		t.Fatalf("grind size = %v, want recipe B's 18", d.GrindSize)
	}
	if d.WaterG != 195 || d.TempC != 85 || d.BrewTime != "01:30" {
		t.Fatalf("non-dirty fields not overwritten: %+v", d)
	}
	if d.RecipeID != 2 {
		t.Fatalf("recipe id = %d, want 2", d.RecipeID)
	}
}

func TestApplyEdit_DoseRecomputesWater(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldDoseG, 20.0)
	if math.Abs(d.WaterG-320) > 1e-9 {
		t.Fatalf("water = %v, want 320 (20 x 16)", d.WaterG)
	}
	if !d.Dirty[FieldDoseG] {
		t.Fatalf("dose must be dirty after edit")
	}
	if d.Dirty[FieldWaterG] {
		t.Fatalf("derived water must not be dirty")
	}
}

func TestApplyEdit_WaterRederivesRatio(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldWaterG, 297.0)
	if d.Ratio != "1:16.5" {
		t.Fatalf("ratio = %q, want 1:16.5 (297/18)", d.Ratio)
	}
	// water keeps user precision
	if d.WaterG != 297 {
		t.Fatalf("water = %v, want 297", d.WaterG)
	}
	if d.Dirty[FieldRatio] {
		t.Fatalf("derived ratio must not be dirty")
	}
}

func TestApplyEdit_InvalidRatioRejected(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	if _, err := ApplyEdit(d, Edit{Field: FieldRatio, Value: "1-16"}); !errors.Is(err, ErrInvalidRatioFormat) {
		t.Fatalf("expected ErrInvalidRatioFormat, got %v", err)
	}
}

func TestApplyEdit_UnknownField(t *testing.T) {
	if _, err := ApplyEdit(NewDraft(), Edit{Field: "altitude", Value: 1.0}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestResume_RanksBelowSessionEdits(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldBrewTime, "03:10")

	d, err := Resume(d, CarryOver{BrewTime: "02:58", TempC: 90})
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if d.BrewTime != "03:10" {
		t.Fatalf("brew time = %q, session edit must win over carry-over", d.BrewTime)
	}
	if d.TempC != 90 {
		t.Fatalf("temp = %v, carry-over must win over recipe default", d.TempC)
	}
	if d.Dirty[FieldTempC] {
		t.Fatalf("carried value must not mark the field dirty")
	}
}

func TestFinalize_MissingFieldReportedPerField(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldCoffeeBeanID, 9)
	d = mustEdit(t, d, FieldBrewerID, 0) // user cleared the brewer

	_, _, errs := Finalize(d, time.Now())
	if len(errs) != 1 {
		t.Fatalf("expected exactly one field error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != FieldBrewerID {
		t.Fatalf("error field = %s, want %s", errs[0].Field, FieldBrewerID)
	}
}

func TestFinalize_InvalidBrewTimeFormat(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldCoffeeBeanID, 9)
	d = mustEdit(t, d, FieldBrewTime, "165 seconds")

	_, _, errs := Finalize(d, time.Now())
	if len(errs) != 1 || errs[0].Field != FieldBrewTime {
		t.Fatalf("expected single brew_time error, got %v", errs)
	}
}

func TestFinalize_ProducesIndependentPayloads(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldCoffeeBeanID, 9)
	d, _ = SetTemplateNote(d, "bloom", "45s, 60g")

	now := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)
	first, finalized, errs := Finalize(d, now)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if finalized.State != StateFinalized {
		t.Fatalf("state = %s, want %s", finalized.State, StateFinalized)
	}
	second, _, errs := Finalize(d, now)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	// mutating one payload's notes must not leak into the other
	first.TemplateNotes["bloom"] = "changed"
	if second.TemplateNotes["bloom"] != "45s, 60g" {
		t.Fatalf("payloads share template notes map")
	}
	if first.CoffeeBeanID != 9 || second.CoffeeBeanID != 9 {
		t.Fatalf("payload fields wrong: %+v / %+v", first, second)
	}
	if !first.BrewedAt.Equal(now) {
		t.Fatalf("brewed at = %v, want %v", first.BrewedAt, now)
	}
}

func TestFinalized_IsTerminal(t *testing.T) {
	d, _ := SelectRecipe(NewDraft(), recipeA())
	d = mustEdit(t, d, FieldCoffeeBeanID, 9)
	_, finalized, errs := Finalize(d, time.Now())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if _, err := ApplyEdit(finalized, Edit{Field: FieldDoseG, Value: 21.0}); !errors.Is(err, ErrDraftFinalized) {
		t.Fatalf("expected ErrDraftFinalized on edit, got %v", err)
	}
	if _, err := SelectRecipe(finalized, recipeB()); !errors.Is(err, ErrDraftFinalized) {
		t.Fatalf("expected ErrDraftFinalized on re-select, got %v", err)
	}
	if _, err := Resume(finalized, CarryOver{BrewTime: "01:00"}); !errors.Is(err, ErrDraftFinalized) {
		t.Fatalf("expected ErrDraftFinalized on resume, got %v", err)
	}
}
