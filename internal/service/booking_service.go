package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/repository"
	"github.com/pcamargo/slotbook/internal/schedule"
	"go.uber.org/zap"
)

// GuestInfo identifies the party booking a slot.
type GuestInfo struct {
	Name  string
	Email string
	Notes string
}

// BookingService is the write side of the calendar. Book re-validates
// the requested slot against the host's configuration and the current
// time immediately before the atomic check-and-insert, so a stale
// availability view can never produce a double booking.
type BookingService struct {
	intervals    IntervalStore
	bookings     BookingStore
	blocks       BlockStore
	cache        BlockedDatesCache
	logger       *zap.Logger
	now          Clock
	loc          *time.Location
	slotDuration int
}

func NewBookingService(
	intervals IntervalStore,
	bookings BookingStore,
	blocks BlockStore,
	cache BlockedDatesCache,
	logger *zap.Logger,
	now Clock,
	loc *time.Location,
	slotDuration int,
) *BookingService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if slotDuration <= 0 {
		slotDuration = schedule.DefaultSlotDuration
	}
	return &BookingService{
		intervals:    intervals,
		bookings:     bookings,
		blocks:       blocks,
		cache:        cache,
		logger:       logger,
		now:          now,
		loc:          loc,
		slotDuration: slotDuration,
	}
}

// Book reserves the slot starting at startMinute on the given date for
// the guest. Returns ErrPastTime when the slot start is not strictly
// after now, a ValidationError when the slot lies outside the
// configured availability window, and ErrConflict when the slot is
// already taken or the date is blocked.
func (s *BookingService) Book(ctx context.Context, userID int64, date time.Time, startMinute int, guest GuestInfo) (*model.Booking, error) {
	guest.Name = strings.TrimSpace(guest.Name)
	guest.Email = strings.TrimSpace(guest.Email)
	if guest.Name == "" {
		return nil, &schedule.ValidationError{Msg: "guest name is required"}
	}
	if guest.Email == "" {
		return nil, &schedule.ValidationError{Msg: "guest email is required"}
	}

	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	endMinute := startMinute + s.slotDuration

	rows, err := s.intervals.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load weekday intervals: %w", err)
	}
	set := schedule.FromStoredIntervals(rows)

	if err := schedule.ValidateBookingInterval(date, set, startMinute, endMinute, s.slotDuration); err != nil {
		return nil, err
	}

	startAt := time.Date(date.Year(), date.Month(), date.Day(), 0, startMinute, 0, 0, s.loc)
	if !startAt.After(s.now()) {
		return nil, ErrPastTime
	}

	blocked, err := s.blocks.Exists(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("check date block: %w", err)
	}
	if blocked {
		return nil, ErrConflict
	}

	booking := &model.Booking{
		PublicID:    uuid.New(),
		UserID:      userID,
		Date:        date,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		GuestName:   guest.Name,
		GuestEmail:  guest.Email,
		GuestNotes:  strings.TrimSpace(guest.Notes),
	}

	if err := s.bookings.CreateIfFree(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID, date.Year(), date.Month())
	}

	s.logger.Info("Slot booked",
		zap.Int64("booking_id", booking.ID),
		zap.String("public_id", booking.PublicID.String()),
		zap.Int64("host_id", userID),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("start_minute", startMinute),
		zap.String("guest_email", guest.Email),
	)

	return booking, nil
}
