package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don't expose hash
	IsGuest      bool   `json:"is_guest"`
	IsAdmin      bool   `json:"is_admin"`
}
