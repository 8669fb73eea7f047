package brewing

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"brewlog/internal/models"
)

// DraftState tracks the per-session state machine:
// empty -> recipe_selected -> fields_edited* -> finalized.
type DraftState string

const (
	StateEmpty          DraftState = "empty"
	StateRecipeSelected DraftState = "recipe_selected"
	StateFieldsEdited   DraftState = "fields_edited"
	StateFinalized      DraftState = "finalized"
)

// Field names a single editable draft field. Values double as wire
// identifiers so per-field errors can point at the exact input.
type Field string

const (
	FieldCoffeeBeanID  Field = "coffee_bean_id"
	FieldCoffeeBatchID Field = "coffee_batch_id"
	FieldGrinderID     Field = "grinder_id"
	FieldBrewerID      Field = "brewer_id"
	FieldServerID      Field = "server_id"
	FieldRatio         Field = "ratio"
	FieldDoseG         Field = "dose_g"
	FieldGrindSize     Field = "grind_size"
	FieldWaterG        Field = "water_g"
	FieldYieldG        Field = "yield_g"
	FieldTempC         Field = "temp_c"
	FieldBrewTime      Field = "brew_time"
)

// ErrDraftFinalized rejects mutations after finalize; post-creation
// changes go through the plain brew update path, not the reconciler.
var ErrDraftFinalized = errors.New("draft already finalized")

// ErrUnknownField rejects edits naming a field the reconciler does not
// manage.
var ErrUnknownField = errors.New("unknown draft field")

// Draft is the in-progress, unsaved brew being assembled during a
// session. It is a plain value: every operation takes a Draft and
// returns a new one, so no hidden shared state survives between
// requests or sessions.
type Draft struct {
	State    DraftState `json:"state"`
	RecipeID int        `json:"recipe_id,omitempty"`

	CoffeeBeanID  int     `json:"coffee_bean_id,omitempty"`
	CoffeeBatchID int     `json:"coffee_batch_id,omitempty"`
	GrinderID     int     `json:"grinder_id,omitempty"`
	BrewerID      int     `json:"brewer_id,omitempty"`
	ServerID      int     `json:"server_id,omitempty"`
	Ratio         string  `json:"ratio,omitempty"`
	DoseG         float64 `json:"dose_g,omitempty"`
	GrindSize     float64 `json:"grind_size,omitempty"`
	WaterG        float64 `json:"water_g,omitempty"`
	YieldG        float64 `json:"yield_g,omitempty"`
	TempC         float64 `json:"temp_c,omitempty"`
	BrewTime      string  `json:"brew_time,omitempty"`

	TemplateNotes map[string]string `json:"template_notes,omitempty"`

	// Dirty marks fields the user touched this session. Dirty fields
	// always win over recipe defaults and carried-over values.
	Dirty map[Field]bool `json:"dirty,omitempty"`
}

// Edit is a single user change to one draft field.
type Edit struct {
	Field Field `json:"field"`
	Value any   `json:"value"`
}

// FieldError reports one validation failure against one input, so a
// caller can highlight exactly the fields needing attention.
type FieldError struct {
	Field  Field  `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{State: StateEmpty}
}

// SelectRecipe snapshots the recipe's fields into the draft. Fields
// the user already edited this session stay untouched, so switching
// recipes mid-session preserves user intent for dirty fields only.
func SelectRecipe(d Draft, r models.Recipe) (Draft, error) {
	if d.State == StateFinalized {
		return d, ErrDraftFinalized
	}
	next := d.clone()
	next.RecipeID = r.ID

	set := func(f Field, apply func(*Draft)) {
		if !next.Dirty[f] {
			apply(&next)
		}
	}
	set(FieldGrinderID, func(n *Draft) { n.GrinderID = r.GrinderID })
	set(FieldBrewerID, func(n *Draft) { n.BrewerID = r.BrewerID })
	set(FieldRatio, func(n *Draft) { n.Ratio = r.Ratio })
	set(FieldDoseG, func(n *Draft) { n.DoseG = r.DoseG })
	set(FieldGrindSize, func(n *Draft) { n.GrindSize = r.GrindSize })
	set(FieldWaterG, func(n *Draft) { n.WaterG = r.WaterG })
	set(FieldYieldG, func(n *Draft) { n.YieldG = r.YieldG })
	set(FieldTempC, func(n *Draft) { n.TempC = r.TempC })
	set(FieldBrewTime, func(n *Draft) { n.BrewTime = r.BrewTime })

	if next.State == StateEmpty {
		next.State = StateRecipeSelected
	}
	return next, nil
}

// CarryOver holds values brought back from an in-progress brew, e.g.
// the accumulated brew time when returning from the timer sub-view.
// Carried values rank below session edits and above recipe defaults:
// they apply to non-dirty fields only and do not mark them dirty.
type CarryOver struct {
	BrewTime string  `json:"brew_time,omitempty"`
	WaterG   float64 `json:"water_g,omitempty"`
	TempC    float64 `json:"temp_c,omitempty"`
}

// Resume merges carried-over values into the draft.
func Resume(d Draft, c CarryOver) (Draft, error) {
	if d.State == StateFinalized {
		return d, ErrDraftFinalized
	}
	next := d.clone()
	if c.BrewTime != "" && !next.Dirty[FieldBrewTime] {
		next.BrewTime = c.BrewTime
	}
	if c.WaterG > 0 && !next.Dirty[FieldWaterG] {
		next.WaterG = c.WaterG
	}
	if c.TempC > 0 && !next.Dirty[FieldTempC] {
		next.TempC = c.TempC
	}
	return next, nil
}

// ApplyEdit is the pure reducer (draft, edit) -> draft'. It records
// the edited field as dirty and keeps the dose/water/ratio relation
// consistent: a dose or ratio edit recomputes water, a direct water
// edit re-derives the ratio string. Derived fields are not marked
// dirty; only the user's own edit is.
func ApplyEdit(d Draft, e Edit) (Draft, error) {
	if d.State == StateFinalized {
		return d, ErrDraftFinalized
	}
	next := d.clone()

	switch e.Field {
	case FieldCoffeeBeanID:
		v, err := intValue(e)
		if err != nil {
			return d, err
		}
		next.CoffeeBeanID = v
	case FieldCoffeeBatchID:
		v, err := intValue(e)
		if err != nil {
			return d, err
		}
		next.CoffeeBatchID = v
	case FieldGrinderID:
		v, err := intValue(e)
		if err != nil {
			return d, err
		}
		next.GrinderID = v
	case FieldBrewerID:
		v, err := intValue(e)
		if err != nil {
			return d, err
		}
		next.BrewerID = v
	case FieldServerID:
		v, err := intValue(e)
		if err != nil {
			return d, err
		}
		next.ServerID = v
	case FieldRatio:
		v, err := stringValue(e)
		if err != nil {
			return d, err
		}
		factor, err := ParseRatio(v)
		if err != nil {
			return d, err
		}
		next.Ratio = v
		if next.DoseG > 0 {
			next.WaterG = WaterForDose(next.DoseG, factor)
		}
	case FieldDoseG:
		v, err := floatValue(e)
		if err != nil {
			return d, err
		}
		next.DoseG = v
		if next.Ratio != "" {
			if factor, err := ParseRatio(next.Ratio); err == nil {
				next.WaterG = WaterForDose(v, factor)
			}
		}
	case FieldGrindSize:
		v, err := floatValue(e)
		if err != nil {
			return d, err
		}
		next.GrindSize = v
	case FieldWaterG:
		v, err := floatValue(e)
		if err != nil {
			return d, err
		}
		next.WaterG = v
		if factor, err := RatioFromWater(next.DoseG, v); err == nil {
			next.Ratio = FormatRatio(factor)
		}
	case FieldYieldG:
		v, err := floatValue(e)
		if err != nil {
			return d, err
		}
		next.YieldG = v
	case FieldTempC:
		v, err := floatValue(e)
		if err != nil {
			return d, err
		}
		next.TempC = v
	case FieldBrewTime:
		v, err := stringValue(e)
		if err != nil {
			return d, err
		}
		next.BrewTime = v
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}

	next.markDirty(e.Field)
	next.State = StateFieldsEdited
	return next, nil
}

// SetTemplateNote records one template-field note on the draft.
func SetTemplateNote(d Draft, key, value string) (Draft, error) {
	if d.State == StateFinalized {
		return d, ErrDraftFinalized
	}
	next := d.clone()
	if next.TemplateNotes == nil {
		next.TemplateNotes = map[string]string{}
	}
	next.TemplateNotes[key] = value
	return next, nil
}

var brewTimePattern = regexp.MustCompile(`^\d{1,2}:[0-5]\d$`)

const reasonRequired = "required"

// Finalize validates the draft and produces an immutable brew payload
// ready for persistence. Failures are reported per field. On success
// the returned draft is in the terminal finalized state; the payload
// is an independent copy, so repeated finalize calls never share
// state.
func Finalize(d Draft, now time.Time) (models.Brew, Draft, []FieldError) {
	var errs []FieldError
	requireID := func(f Field, v int) {
		if v <= 0 {
			errs = append(errs, FieldError{Field: f, Reason: reasonRequired})
		}
	}
	requirePositive := func(f Field, v float64) {
		if v <= 0 {
			errs = append(errs, FieldError{Field: f, Reason: "must be greater than zero"})
		}
	}

	requireID(FieldCoffeeBeanID, d.CoffeeBeanID)
	requireID(FieldGrinderID, d.GrinderID)
	requireID(FieldBrewerID, d.BrewerID)
	requirePositive(FieldDoseG, d.DoseG)
	requirePositive(FieldWaterG, d.WaterG)
	requirePositive(FieldYieldG, d.YieldG)
	requirePositive(FieldTempC, d.TempC)
	switch {
	case d.BrewTime == "":
		errs = append(errs, FieldError{Field: FieldBrewTime, Reason: reasonRequired})
	case !brewTimePattern.MatchString(d.BrewTime):
		errs = append(errs, FieldError{Field: FieldBrewTime, Reason: `must be "MM:SS"`})
	}
	if len(errs) > 0 {
		return models.Brew{}, d, errs
	}

	brew := models.Brew{
		CoffeeBeanID:  d.CoffeeBeanID,
		CoffeeBatchID: d.CoffeeBatchID,
		GrinderID:     d.GrinderID,
		BrewerID:      d.BrewerID,
		ServerID:      d.ServerID,
		RecipeID:      d.RecipeID,
		DoseG:         d.DoseG,
		GrindSize:     d.GrindSize,
		WaterG:        d.WaterG,
		YieldG:        d.YieldG,
		TempC:         d.TempC,
		BrewTime:      d.BrewTime,
		BrewedAt:      now.UTC(),
	}
	if len(d.TemplateNotes) > 0 {
		brew.TemplateNotes = make(map[string]string, len(d.TemplateNotes))
		for k, v := range d.TemplateNotes {
			brew.TemplateNotes[k] = v
		}
	}

	next := d.clone()
	next.State = StateFinalized
	return brew, next, nil
}

// clone deep-copies the draft so reducer results never alias the
// input's maps.
func (d Draft) clone() Draft {
	next := d
	if d.Dirty != nil {
		next.Dirty = make(map[Field]bool, len(d.Dirty))
		for k, v := range d.Dirty {
			next.Dirty[k] = v
		}
	}
	if d.TemplateNotes != nil {
		next.TemplateNotes = make(map[string]string, len(d.TemplateNotes))
		for k, v := range d.TemplateNotes {
			next.TemplateNotes[k] = v
		}
	}
	return next
}

func (d *Draft) markDirty(f Field) {
	if d.Dirty == nil {
		d.Dirty = map[Field]bool{}
	}
	d.Dirty[f] = true
}

func intValue(e Edit) (int, error) {
	switch v := e.Value.(type) {
	case int:
		return v, nil
	case float64: // JSON numbers decode as float64
		return int(v), nil
	default:
		return 0, fmt.Errorf("field %s: expected integer value, got %T", e.Field, e.Value)
	}
}

func floatValue(e Edit) (float64, error) {
	switch v := e.Value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("field %s: expected numeric value, got %T", e.Field, e.Value)
	}
}

func stringValue(e Edit) (string, error) {
	v, ok := e.Value.(string)
	if !ok {
		return "", fmt.Errorf("field %s: expected string value, got %T", e.Field, e.Value)
	}
	return v, nil
}
