package model

// WeekdayInterval is one weekly availability window. Weekday follows
// time.Weekday numbering: 0 = Sunday, 6 = Saturday. Start and end are
// minutes from midnight (0-1439).
type WeekdayInterval struct {
	Weekday     int  `json:"weekday"`
	Enabled     bool `json:"enabled"`
	StartMinute int  `json:"start_minute"`
	EndMinute   int  `json:"end_minute"`
}
