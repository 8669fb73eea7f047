package models

// Grinder is a registered coffee grinder. GrindScaleMax documents the
// device-specific grind setting range (clicks, dial numbers, microns).
type Grinder struct {
	ID            int     `json:"id"`
	UserID        int     `json:"-"`
	Name          string  `json:"name"`
	GrindScaleMax float64 `json:"grind_scale_max,omitempty"`
}

// Brewer is a brewing device (dripper, press, etc.).
type Brewer struct {
	ID     int    `json:"id"`
	UserID int    `json:"-"`
	Name   string `json:"name"`
	Method string `json:"method,omitempty"` // e.g. "pour-over", "immersion"
}

// Server is a carafe or vessel the brew drains into. Optional on brews.
type Server struct {
	ID       int     `json:"id"`
	UserID   int     `json:"-"`
	Name     string  `json:"name"`
	VolumeML float64 `json:"volume_ml,omitempty"`
}
