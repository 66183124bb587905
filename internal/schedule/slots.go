package schedule

import (
	"time"

	"github.com/pcamargo/slotbook/internal/model"
)

// SlotsFor returns the ordered bookable slots of one calendar day.
// date must be midnight in the service timezone; bookings must belong
// to the same host and day. A slot is unavailable when its start
// instant is not strictly after now, or when it overlaps an existing
// booking. The result is empty when the weekday has no enabled
// interval.
func SlotsFor(date time.Time, set WeekdayIntervalSet, bookings []model.Booking, now time.Time, slotDuration int) []model.TimeSlot {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}

	iv, ok := set.Get(int(date.Weekday()))
	if !ok || !iv.Enabled {
		return nil
	}

	var slots []model.TimeSlot
	for start := iv.StartMinute; start+slotDuration <= iv.EndMinute; start += slotDuration {
		startAt := time.Date(date.Year(), date.Month(), date.Day(), 0, start, 0, 0, date.Location())
		available := startAt.After(now) && !overlapsAny(start, start+slotDuration, bookings)
		slots = append(slots, model.TimeSlot{StartMinute: start, Available: available})
	}
	return slots
}

// AnyAvailable reports whether at least one slot can still be booked.
func AnyAvailable(slots []model.TimeSlot) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}

// ValidateBookingInterval checks that [startMinute, endMinute) is
// exactly one slot on the weekday's configured grid. It does not look
// at existing bookings; conflicts are the storage layer's concern.
func ValidateBookingInterval(date time.Time, set WeekdayIntervalSet, startMinute, endMinute, slotDuration int) error {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}

	iv, ok := set.Get(int(date.Weekday()))
	if !ok || !iv.Enabled {
		return validationErrorf("host is not available on %s", date.Weekday())
	}
	if endMinute-startMinute != slotDuration {
		return validationErrorf("booking must cover exactly one %d minute slot", slotDuration)
	}
	if startMinute < iv.StartMinute || endMinute > iv.EndMinute {
		return validationErrorf("slot %d-%d lies outside the %d-%d availability window",
			startMinute, endMinute, iv.StartMinute, iv.EndMinute)
	}
	if (startMinute-iv.StartMinute)%slotDuration != 0 {
		return validationErrorf("slot start %d is not aligned to the slot grid", startMinute)
	}
	return nil
}

// Half-open overlap: [start,end) intersects [b.Start,b.End) iff
// start < b.End && end > b.Start.
func overlapsAny(startMinute, endMinute int, bookings []model.Booking) bool {
	for _, b := range bookings {
		if startMinute < b.EndMinute && endMinute > b.StartMinute {
			return true
		}
	}
	return false
}
