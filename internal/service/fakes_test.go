package service

import (
	"context"
	"sync"
	"time"

	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/repository"
)

// memStore is an in-memory implementation of the store interfaces.
// CreateIfFree mirrors the database guarantee: overlap check and
// insert under one lock, so concurrent bookings serialize exactly as
// they do against Postgres.
type memStore struct {
	mu        sync.Mutex
	intervals map[int64][]model.WeekdayInterval
	bookings  []model.Booking
	blocks    map[int64]map[string]bool
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		intervals: make(map[int64][]model.WeekdayInterval),
		blocks:    make(map[int64]map[string]bool),
	}
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func (m *memStore) Replace(_ context.Context, userID int64, intervals []model.WeekdayInterval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intervals[userID] = append([]model.WeekdayInterval(nil), intervals...)
	return nil
}

func (m *memStore) GetByUserID(_ context.Context, userID int64) ([]model.WeekdayInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WeekdayInterval(nil), m.intervals[userID]...), nil
}

func (m *memStore) CreateIfFree(_ context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bookings {
		if b.UserID != booking.UserID || dayKey(b.Date) != dayKey(booking.Date) {
			continue
		}
		if booking.StartMinute < b.EndMinute && booking.EndMinute > b.StartMinute {
			return repository.ErrSlotTaken
		}
	}

	m.nextID++
	booking.ID = m.nextID
	booking.CreatedAt = time.Now()
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *memStore) ListForDate(_ context.Context, userID int64, date time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Booking
	for _, b := range m.bookings {
		if b.UserID == userID && dayKey(b.Date) == dayKey(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) ListForRange(_ context.Context, userID int64, from, to time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Booking
	for _, b := range m.bookings {
		if b.UserID == userID && !b.Date.Before(from) && b.Date.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, block *model.DateBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blocks[block.UserID] == nil {
		m.blocks[block.UserID] = make(map[string]bool)
	}
	m.blocks[block.UserID][dayKey(block.Date)] = true
	return nil
}

func (m *memStore) Exists(_ context.Context, userID int64, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blocks[userID][dayKey(date)], nil
}

func (m *memStore) ListForRange2(_ context.Context, userID int64, from, to time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []time.Time
	for key := range m.blocks[userID] {
		date, err := time.ParseInLocation("2006-01-02", key, from.Location())
		if err != nil {
			continue
		}
		if !date.Before(from) && date.Before(to) {
			out = append(out, date)
		}
	}
	return out, nil
}

func (m *memStore) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pruned int64
	for _, dates := range m.blocks {
		for key := range dates {
			date, err := time.ParseInLocation("2006-01-02", key, before.Location())
			if err != nil {
				continue
			}
			if date.Before(before) {
				delete(dates, key)
				pruned++
			}
		}
	}
	return pruned, nil
}

// blockStore adapts memStore to the BlockStore interface; its
// ListForRange returns dates, not bookings.
type blockStore struct{ *memStore }

func (s blockStore) ListForRange(ctx context.Context, userID int64, from, to time.Time) ([]time.Time, error) {
	return s.memStore.ListForRange2(ctx, userID, from, to)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
