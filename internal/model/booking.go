package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a confirmed guest reservation on a host's calendar.
// Bookings are immutable once created. Date carries only the calendar
// day (midnight in the service timezone); the slot itself is the
// half-open minute interval [StartMinute, EndMinute).
type Booking struct {
	ID          int64     `json:"id"`
	PublicID    uuid.UUID `json:"public_id"`
	UserID      int64     `json:"user_id"`
	Date        time.Time `json:"date"`
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email"`
	GuestNotes  string    `json:"guest_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
