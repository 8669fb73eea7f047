package models

// UsageStats is the admin panel's headline numbers.
type UsageStats struct {
	Users     int     `json:"users"`
	Guests    int     `json:"guests"`
	Beans     int     `json:"beans"`
	Recipes   int     `json:"recipes"`
	Brews     int     `json:"brews"`
	AvgRating float64 `json:"avg_rating"`
}

// DayCount is one day's brew count for the activity chart.
type DayCount struct {
	Day   string `json:"day"` // "YYYY-MM-DD"
	Count int    `json:"count"`
}
