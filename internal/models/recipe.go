package models

// Recipe is an immutable brew template. Brews copy its numeric fields
// at creation; later recipe edits never touch historical brews.
type Recipe struct {
	ID        int          `json:"id"`
	UserID    int          `json:"-"`
	Name      string       `json:"name"`
	GrinderID int          `json:"grinder_id,omitempty"`
	BrewerID  int          `json:"brewer_id,omitempty"`
	Ratio     string       `json:"ratio,omitempty"` // "1:N"
	DoseG     float64      `json:"dose_g,omitempty"`
	GrindSize float64      `json:"grind_size,omitempty"` // device-specific scale
	WaterG    float64      `json:"water_g,omitempty"`
	YieldG    float64      `json:"yield_g,omitempty"`
	TempC     float64      `json:"temp_c,omitempty"`
	BrewTime  string       `json:"brew_time,omitempty"` // "MM:SS"
	Steps     []RecipeStep `json:"steps,omitempty"`
	Favorite  bool         `json:"favorite"`
}

// RecipeStep is one ordered pour/wait instruction of a recipe.
type RecipeStep struct {
	ID          int     `json:"id,omitempty"`
	Position    int     `json:"position"`
	Description string  `json:"description"`
	WaterG      float64 `json:"water_g,omitempty"`
	DurationSec int     `json:"duration_sec,omitempty"`
}
