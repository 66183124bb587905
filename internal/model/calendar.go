package model

import "time"

// BlockedDates is the per-month availability summary for a host:
// weekdays that are never available plus day-of-month numbers that are
// fully unavailable (manually blocked, fully booked or entirely past).
// It is recomputed from storage on every request, never persisted.
type BlockedDates struct {
	BlockedWeekdays []int `json:"blocked_weekdays"`
	BlockedDates    []int `json:"blocked_dates"`
}

type CalendarDay struct {
	Date     time.Time `json:"date"`
	Disabled bool      `json:"disabled"`
}

// CalendarWeek is one row of the month grid: exactly 7 days, padded
// with disabled days from the adjacent months.
type CalendarWeek struct {
	Week int           `json:"week"`
	Days []CalendarDay `json:"days"`
}

// TimeSlot is one bookable window within a day.
type TimeSlot struct {
	StartMinute int  `json:"start_minute"`
	Available   bool `json:"available"`
}
