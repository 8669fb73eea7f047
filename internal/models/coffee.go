package models

import "time"

// CoffeeBean is a coffee the user buys, independent of any purchase.
type CoffeeBean struct {
	ID         int    `json:"id"`
	UserID     int    `json:"-"`
	Name       string `json:"name"`
	Roaster    string `json:"roaster,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Process    string `json:"process,omitempty"` // washed | natural | honey | ...
	RoastLevel string `json:"roast_level,omitempty"`
}

// CoffeeBatch is one purchased quantity of a bean, tracked for
// remaining weight. CurrentWeightG is only changed through the atomic
// consume statement, never read-modify-write.
type CoffeeBatch struct {
	ID             int        `json:"id"`
	CoffeeBeanID   int        `json:"coffee_bean_id"`
	Price          float64    `json:"price,omitempty"`
	RoastDate      *time.Time `json:"roast_date,omitempty"`
	WeightG        float64    `json:"weight_g"`
	CurrentWeightG float64    `json:"current_weight_g"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	Active         bool       `json:"active"`
}
