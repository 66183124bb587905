package model

import "time"

// DateBlock marks a single calendar day as unavailable for a host,
// independent of bookings.
type DateBlock struct {
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
