package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/pcamargo/slotbook/internal/model"
)

func TestWeeksFor_GridShape(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		year  int
		month time.Month
	}{
		{2026, time.February}, // 28 days, starts Sunday
		{2024, time.February}, // 29 days, leap year
		{2026, time.March},    // 31 days, starts Sunday
		{2026, time.June},     // 30 days, starts Monday
		{2026, time.August},   // 31 days, starts Saturday
		{2025, time.November}, // 30 days, ends Sunday
	}

	for _, tc := range cases {
		weeks := WeeksFor(tc.year, tc.month, model.BlockedDates{}, now, time.UTC)

		first := time.Date(tc.year, tc.month, 1, 0, 0, 0, 0, time.UTC)
		daysInMonth := first.AddDate(0, 1, -1).Day()
		front := int(first.Weekday())
		back := 6 - int(first.AddDate(0, 1, -1).Weekday())
		wantWeeks := (front + daysInMonth + back) / 7

		if len(weeks) != wantWeeks {
			t.Fatalf("%v %d: expected %d weeks, got %d", tc.month, tc.year, wantWeeks, len(weeks))
		}
		for i, w := range weeks {
			if w.Week != i+1 {
				t.Fatalf("%v %d: week %d numbered %d", tc.month, tc.year, i+1, w.Week)
			}
			if len(w.Days) != 7 {
				t.Fatalf("%v %d: week %d has %d days", tc.month, tc.year, w.Week, len(w.Days))
			}
		}
		if got := weeks[0].Days[0].Date.Weekday(); got != time.Sunday {
			t.Fatalf("%v %d: grid starts on %v", tc.month, tc.year, got)
		}

		// Padding days belong to adjacent months and are disabled.
		for _, w := range weeks {
			for _, d := range w.Days {
				if d.Date.Month() != tc.month && !d.Disabled {
					t.Fatalf("%v %d: padding day %v enabled", tc.month, tc.year, d.Date)
				}
			}
		}
	}
}

func TestWeeksFor_PastDaysDisabled(t *testing.T) {
	// Mid-month: the 15th at 13:00.
	now := time.Date(2026, 3, 15, 13, 0, 0, 0, time.UTC)
	weeks := WeeksFor(2026, time.March, model.BlockedDates{}, now, time.UTC)

	for _, w := range weeks {
		for _, d := range w.Days {
			if d.Date.Month() != time.March {
				continue
			}
			switch {
			case d.Date.Day() < 15:
				if !d.Disabled {
					t.Fatalf("past day %d enabled", d.Date.Day())
				}
			default:
				if d.Disabled {
					t.Fatalf("day %d disabled", d.Date.Day())
				}
			}
		}
	}
}

func TestWeeksFor_CurrentDaySelectableAtBoundary(t *testing.T) {
	// now exactly at midnight of the 16th: the 15th just ended and is
	// past; the 16th is the current day and stays selectable.
	now := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	weeks := WeeksFor(2026, time.March, model.BlockedDates{}, now, time.UTC)

	for _, w := range weeks {
		for _, d := range w.Days {
			if d.Date.Month() != time.March {
				continue
			}
			if d.Date.Day() == 15 && !d.Disabled {
				t.Fatal("day 15 should be past at midnight of the 16th")
			}
			if d.Date.Day() == 16 && d.Disabled {
				t.Fatal("current day should stay selectable")
			}
		}
	}
}

func TestWeeksFor_BlockedWeekdaysAndDates(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	blocked := model.BlockedDates{
		BlockedWeekdays: []int{0, 6},
		BlockedDates:    []int{10, 24},
	}

	weeks := WeeksFor(2026, time.March, blocked, now, time.UTC)
	for _, w := range weeks {
		for _, d := range w.Days {
			if d.Date.Month() != time.March {
				continue
			}
			wd := int(d.Date.Weekday())
			wantDisabled := wd == 0 || wd == 6 || d.Date.Day() == 10 || d.Date.Day() == 24
			if d.Disabled != wantDisabled {
				t.Fatalf("day %d (weekday %d): disabled=%v, want %v", d.Date.Day(), wd, d.Disabled, wantDisabled)
			}
		}
	}
}

func TestWeeksFor_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 13, 0, 0, 0, time.UTC)
	blocked := model.BlockedDates{BlockedWeekdays: []int{0}, BlockedDates: []int{20}}

	a := WeeksFor(2026, time.March, blocked, now, time.UTC)
	b := WeeksFor(2026, time.March, blocked, now, time.UTC)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different grids")
	}
}
