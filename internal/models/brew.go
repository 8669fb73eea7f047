package models

import "time"

// Brew is a point-in-time record of one brewing session. Numeric
// parameters are independent copies taken from the recipe (if any) at
// creation time.
type Brew struct {
	ID            int     `json:"id"`
	UserID        int     `json:"-"`
	CoffeeBeanID  int     `json:"coffee_bean_id"`
	CoffeeBatchID int     `json:"coffee_batch_id,omitempty"`
	GrinderID     int     `json:"grinder_id"`
	BrewerID      int     `json:"brewer_id"`
	ServerID      int     `json:"server_id,omitempty"`
	RecipeID      int     `json:"recipe_id,omitempty"`

	DoseG     float64 `json:"dose_g"`
	GrindSize float64 `json:"grind_size,omitempty"`
	WaterG    float64 `json:"water_g"`
	YieldG    float64 `json:"yield_g"`
	TempC     float64 `json:"temp_c"`
	BrewTime  string  `json:"brew_time"` // "MM:SS"

	// Measured outcomes. TDS is always user-entered; ExtractionYield is
	// derived from TDS/dose/yield and nil while not computable.
	TDS             *float64 `json:"tds,omitempty"` // %
	ExtractionYield *float64 `json:"extraction_yield,omitempty"`
	Rating          int      `json:"rating,omitempty"` // 1..5
	Comment         string   `json:"comment,omitempty"`
	PhotoPath       string   `json:"photo_path,omitempty"`
	Favorite        bool     `json:"favorite"`

	// TemplateNotes maps template-field ids to free-form values.
	TemplateNotes map[string]string `json:"template_notes,omitempty"`

	BrewedAt time.Time `json:"brewed_at"`
}
