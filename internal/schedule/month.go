package schedule

import (
	"time"

	"github.com/pcamargo/slotbook/internal/model"
)

// WeeksFor builds the full month grid: the in-month days plus disabled
// padding from the adjacent months so every row starts on Sunday and
// holds exactly 7 days. An in-month day is disabled when its end of day
// is strictly before now, its weekday is blocked, or its day-of-month
// is blocked. Week numbers start at 1.
func WeeksFor(year int, month time.Month, blocked model.BlockedDates, now time.Time, loc *time.Location) []model.CalendarWeek {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	blockedWeekdays := make(map[int]bool, len(blocked.BlockedWeekdays))
	for _, wd := range blocked.BlockedWeekdays {
		blockedWeekdays[wd] = true
	}
	blockedDates := make(map[int]bool, len(blocked.BlockedDates))
	for _, d := range blocked.BlockedDates {
		blockedDates[d] = true
	}

	days := make([]model.CalendarDay, 0, 42)

	// Trailing days of the previous month up to the first weekday.
	for i := int(first.Weekday()); i > 0; i-- {
		days = append(days, model.CalendarDay{Date: first.AddDate(0, 0, -i), Disabled: true})
	}

	for d := 1; d <= last.Day(); d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		// Past only when the whole day is over; the current day stays
		// selectable until midnight.
		past := !date.AddDate(0, 0, 1).After(now)
		disabled := past || blockedWeekdays[int(date.Weekday())] || blockedDates[d]
		days = append(days, model.CalendarDay{Date: date, Disabled: disabled})
	}

	// Leading days of the next month to complete the final week.
	for i := 1; i <= 6-int(last.Weekday()); i++ {
		days = append(days, model.CalendarDay{Date: last.AddDate(0, 0, i), Disabled: true})
	}

	weeks := make([]model.CalendarWeek, 0, len(days)/7)
	for i := 0; i < len(days); i += 7 {
		weeks = append(weeks, model.CalendarWeek{Week: i/7 + 1, Days: days[i : i+7]})
	}
	return weeks
}
