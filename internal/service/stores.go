package service

import (
	"context"
	"time"

	"github.com/pcamargo/slotbook/internal/model"
)

// Clock supplies the current time; injectable so every past/future
// decision is testable.
type Clock func() time.Time

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// IntervalStore persists weekly availability, one row per
// (user, weekday).
type IntervalStore interface {
	Replace(ctx context.Context, userID int64, intervals []model.WeekdayInterval) error
	GetByUserID(ctx context.Context, userID int64) ([]model.WeekdayInterval, error)
}

// BookingStore persists bookings. CreateIfFree must be atomic: of two
// concurrent calls for overlapping slots exactly one inserts, the
// other gets repository.ErrSlotTaken.
type BookingStore interface {
	CreateIfFree(ctx context.Context, booking *model.Booking) error
	ListForDate(ctx context.Context, userID int64, date time.Time) ([]model.Booking, error)
	ListForRange(ctx context.Context, userID int64, from, to time.Time) ([]model.Booking, error)
}

// BlockStore persists manual per-date blocks.
type BlockStore interface {
	Create(ctx context.Context, block *model.DateBlock) error
	Exists(ctx context.Context, userID int64, date time.Time) (bool, error)
	ListForRange(ctx context.Context, userID int64, from, to time.Time) ([]time.Time, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// BlockedDatesCache caches the per-month blocked-dates summary. A nil
// cache is valid and disables caching.
type BlockedDatesCache interface {
	Get(ctx context.Context, userID int64, year int, month time.Month) (model.BlockedDates, bool)
	Set(ctx context.Context, userID int64, year int, month time.Month, blocked model.BlockedDates)
	Invalidate(ctx context.Context, userID int64, year int, month time.Month)
}
