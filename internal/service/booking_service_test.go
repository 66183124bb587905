package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/schedule"
	"go.uber.org/zap"
)

const hostID = int64(1)

// 2026-03-02 is a Monday.
var bookingDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func weekdayConfig() []model.WeekdayInterval {
	week := make([]model.WeekdayInterval, 0, 7)
	for wd := 0; wd < 7; wd++ {
		week = append(week, model.WeekdayInterval{
			Weekday:     wd,
			Enabled:     wd >= 1 && wd <= 5,
			StartMinute: 8 * 60,
			EndMinute:   18 * 60,
		})
	}
	return week
}

func newBookingService(t *testing.T, store *memStore, now time.Time) *BookingService {
	t.Helper()
	if err := store.Replace(context.Background(), hostID, weekdayConfig()); err != nil {
		t.Fatalf("seed intervals: %v", err)
	}
	return NewBookingService(store, store, blockStore{store}, nil, zap.NewNop(), fixedClock(now), time.UTC, 60)
}

func guest() GuestInfo {
	return GuestInfo{Name: "Ana Souza", Email: "ana@example.com"}
}

func TestBook_Succeeds(t *testing.T) {
	store := newMemStore()
	svc := newBookingService(t, store, bookingDay.AddDate(0, 0, -1))

	booking, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, guest())
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.ID == 0 {
		t.Fatal("booking not persisted")
	}
	if booking.EndMinute != 11*60 {
		t.Fatalf("end minute %d, want %d", booking.EndMinute, 11*60)
	}
	if booking.PublicID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("public id not assigned")
	}
}

func TestBook_ConflictOnTakenSlot(t *testing.T) {
	store := newMemStore()
	svc := newBookingService(t, store, bookingDay.AddDate(0, 0, -1))

	if _, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, guest()); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, guest())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestBook_PastTimeBoundaryExclusive(t *testing.T) {
	store := newMemStore()
	// now exactly at the requested slot start.
	svc := newBookingService(t, store, bookingDay.Add(10*time.Hour))

	_, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, guest())
	if !errors.Is(err, ErrPastTime) {
		t.Fatalf("expected ErrPastTime, got %v", err)
	}

	// One minute later is bookable.
	if _, err := svc.Book(context.Background(), hostID, bookingDay, 11*60, guest()); err != nil {
		t.Fatalf("future slot rejected: %v", err)
	}
}

func TestBook_OutsideWindowIsValidationError(t *testing.T) {
	store := newMemStore()
	svc := newBookingService(t, store, bookingDay.AddDate(0, 0, -1))

	_, err := svc.Book(context.Background(), hostID, bookingDay, 6*60, guest())
	var verr *schedule.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Sunday has no enabled interval.
	sunday := bookingDay.AddDate(0, 0, -1)
	_, err = svc.Book(context.Background(), hostID, sunday, 10*60, guest())
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for disabled weekday, got %v", err)
	}
}

func TestBook_MissingGuestInfo(t *testing.T) {
	store := newMemStore()
	svc := newBookingService(t, store, bookingDay.AddDate(0, 0, -1))

	var verr *schedule.ValidationError
	if _, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, GuestInfo{Email: "x@example.com"}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing name, got %v", err)
	}
	if _, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, GuestInfo{Name: "Ana"}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing email, got %v", err)
	}
}

func TestBook_BlockedDateConflicts(t *testing.T) {
	store := newMemStore()
	svc := newBookingService(t, store, bookingDay.AddDate(0, 0, -1))

	if err := store.Create(context.Background(), &model.DateBlock{UserID: hostID, Date: bookingDay}); err != nil {
		t.Fatalf("seed block: %v", err)
	}

	_, err := svc.Book(context.Background(), hostID, bookingDay, 10*60, guest())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for blocked date, got %v", err)
	}
}

func TestBook_ConcurrentSameSlotExactlyOneWins(t *testing.T) {
	store := newMemStore()
	svc := newBookingService(t, store, bookingDay.AddDate(0, 0, -1))

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(context.Background(), hostID, bookingDay, 14*60, guest())
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != attempts-1 {
		t.Fatalf("expected exactly one winner, got %d wins and %d conflicts", wins, conflicts)
	}
}
