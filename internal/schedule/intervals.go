package schedule

import (
	"fmt"

	"github.com/pcamargo/slotbook/internal/model"
)

const (
	minutesPerDay = 24 * 60

	// MinIntervalMinutes is the shortest allowed availability window
	// per enabled weekday.
	MinIntervalMinutes = 60

	// DefaultSlotDuration is the slot length in minutes when no other
	// duration is configured.
	DefaultSlotDuration = 60
)

// ValidationError reports malformed scheduling input. It is returned
// before any storage mutation happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// WeekdayIntervalSet holds one availability interval per weekday.
// The zero value is an unconfigured set: every lookup misses and every
// weekday counts as blocked.
type WeekdayIntervalSet struct {
	intervals [7]model.WeekdayInterval
	present   [7]bool
}

// NewWeekdayIntervalSet validates a full weekly configuration: exactly
// one entry per weekday 0-6, at least one enabled, and every enabled
// window at least MinIntervalMinutes long.
func NewWeekdayIntervalSet(intervals []model.WeekdayInterval) (WeekdayIntervalSet, error) {
	var set WeekdayIntervalSet

	if len(intervals) != 7 {
		return set, validationErrorf("expected 7 weekday intervals, got %d", len(intervals))
	}

	enabled := 0
	for _, iv := range intervals {
		if iv.Weekday < 0 || iv.Weekday > 6 {
			return WeekdayIntervalSet{}, validationErrorf("weekday %d out of range", iv.Weekday)
		}
		if set.present[iv.Weekday] {
			return WeekdayIntervalSet{}, validationErrorf("duplicate interval for weekday %d", iv.Weekday)
		}
		if iv.StartMinute < 0 || iv.StartMinute >= minutesPerDay || iv.EndMinute < 0 || iv.EndMinute > minutesPerDay {
			return WeekdayIntervalSet{}, validationErrorf("interval for weekday %d has minutes out of range", iv.Weekday)
		}
		if iv.Enabled {
			if iv.EndMinute-iv.StartMinute < MinIntervalMinutes {
				return WeekdayIntervalSet{}, validationErrorf(
					"interval for weekday %d must be at least %d minutes long", iv.Weekday, MinIntervalMinutes)
			}
			enabled++
		}
		set.intervals[iv.Weekday] = iv
		set.present[iv.Weekday] = true
	}

	if enabled == 0 {
		return WeekdayIntervalSet{}, validationErrorf("at least one weekday must be enabled")
	}

	return set, nil
}

// FromStoredIntervals rebuilds a set from rows already persisted for a
// user. Rows were validated on write, so no constraints are re-checked
// here; a user with no rows yields the empty (fully unavailable) set.
func FromStoredIntervals(rows []model.WeekdayInterval) WeekdayIntervalSet {
	var set WeekdayIntervalSet
	for _, iv := range rows {
		if iv.Weekday < 0 || iv.Weekday > 6 {
			continue
		}
		set.intervals[iv.Weekday] = iv
		set.present[iv.Weekday] = true
	}
	return set
}

// Get returns the interval configured for the weekday. ok is false when
// the user never configured that weekday.
func (s WeekdayIntervalSet) Get(weekday int) (model.WeekdayInterval, bool) {
	if weekday < 0 || weekday > 6 || !s.present[weekday] {
		return model.WeekdayInterval{}, false
	}
	return s.intervals[weekday], true
}

// Intervals returns the configured intervals ordered by weekday.
func (s WeekdayIntervalSet) Intervals() []model.WeekdayInterval {
	out := make([]model.WeekdayInterval, 0, 7)
	for wd := 0; wd < 7; wd++ {
		if s.present[wd] {
			out = append(out, s.intervals[wd])
		}
	}
	return out
}

// BlockedWeekdays returns the weekdays with no enabled interval, in
// ascending order. These days are never bookable regardless of month.
func (s WeekdayIntervalSet) BlockedWeekdays() []int {
	out := make([]int, 0, 7)
	for wd := 0; wd < 7; wd++ {
		if !s.present[wd] || !s.intervals[wd].Enabled {
			out = append(out, wd)
		}
	}
	return out
}
