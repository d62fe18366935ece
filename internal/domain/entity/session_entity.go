package entity

import "time"

// Session is the server-side record behind a pair of access/refresh tokens.
// One live session per user; ID changes on every refresh.
type Session struct {
	ID              string
	UserID          string
	Email           string
	Name            string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
