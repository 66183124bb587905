package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/schedule"
	"go.uber.org/zap"
)

// AvailabilityService answers the read side of the calendar: the
// per-month blocked summary, the month grid and the per-day slot list.
// Everything is recomputed from storage on demand; the optional cache
// only shortcuts the blocked-dates computation and is invalidated on
// every booking or block write for the affected month.
type AvailabilityService struct {
	intervals    IntervalStore
	bookings     BookingStore
	blocks       BlockStore
	cache        BlockedDatesCache
	logger       *zap.Logger
	now          Clock
	loc          *time.Location
	slotDuration int
}

func NewAvailabilityService(
	intervals IntervalStore,
	bookings BookingStore,
	blocks BlockStore,
	cache BlockedDatesCache,
	logger *zap.Logger,
	now Clock,
	loc *time.Location,
	slotDuration int,
) *AvailabilityService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if slotDuration <= 0 {
		slotDuration = schedule.DefaultSlotDuration
	}
	return &AvailabilityService{
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

// BlockedFor computes the month summary: weekdays with no enabled
// interval, plus day-of-month numbers that are fully unavailable
// (manually blocked, fully booked or entirely past). A day with some
// free slots left is not blocked.
func (s *AvailabilityService) BlockedFor(ctx context.Context, userID int64, year int, month time.Month) (model.BlockedDates, error) {
	if s.cache != nil {
		if blocked, ok := s.cache.Get(ctx, userID, year, month); ok {
			return blocked, nil
		}
	}

	rows, err := s.intervals.GetByUserID(ctx, userID)
	if err != nil {
		return model.BlockedDates{}, fmt.Errorf("load weekday intervals: %w", err)
	}
	set := schedule.FromStoredIntervals(rows)

	blocked := model.BlockedDates{
		BlockedWeekdays: set.BlockedWeekdays(),
		BlockedDates:    make([]int, 0),
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	bookings, err := s.bookings.ListForRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return model.BlockedDates{}, fmt.Errorf("load bookings: %w", err)
	}
	byDay := make(map[int][]model.Booking)
	for _, b := range bookings {
		byDay[b.Date.Day()] = append(byDay[b.Date.Day()], b)
	}

	blockDates, err := s.blocks.ListForRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return model.BlockedDates{}, fmt.Errorf("load date blocks: %w", err)
	}
	manuallyBlocked := make(map[int]bool, len(blockDates))
	for _, d := range blockDates {
		manuallyBlocked[d.Day()] = true
	}

	now := s.now()
	for day := 1; day <= monthStart.AddDate(0, 1, -1).Day(); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, s.loc)
		iv, ok := set.Get(int(date.Weekday()))
		if !ok || !iv.Enabled {
			// Already covered by BlockedWeekdays.
			continue
		}
		if manuallyBlocked[day] {
			blocked.BlockedDates = append(blocked.BlockedDates, day)
			continue
		}
		slots := schedule.SlotsFor(date, set, byDay[day], now, s.slotDuration)
		if !schedule.AnyAvailable(slots) {
			blocked.BlockedDates = append(blocked.BlockedDates, day)
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, year, month, blocked)
	}

	return blocked, nil
}

// MonthWeeks returns the pre-built month grid for the host.
func (s *AvailabilityService) MonthWeeks(ctx context.Context, userID int64, year int, month time.Month) ([]model.CalendarWeek, error) {
	blocked, err := s.BlockedFor(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}
	return schedule.WeeksFor(year, month, blocked, s.now(), s.loc), nil
}

// DaySlots returns the ordered slot list for one day. Hosts without
// availability on that weekday get an empty list, never an error.
func (s *AvailabilityService) DaySlots(ctx context.Context, userID int64, date time.Time) ([]model.TimeSlot, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)

	rows, err := s.intervals.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load weekday intervals: %w", err)
	}
	set := schedule.FromStoredIntervals(rows)

	iv, ok := set.Get(int(date.Weekday()))
	if !ok || !iv.Enabled {
		return []model.TimeSlot{}, nil
	}

	blocked, err := s.blocks.Exists(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("check date block: %w", err)
	}

	bookings, err := s.bookings.ListForDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	slots := schedule.SlotsFor(date, set, bookings, s.now(), s.slotDuration)
	if blocked {
		for i := range slots {
			slots[i].Available = false
		}
	}
	if slots == nil {
		slots = []model.TimeSlot{}
	}
	return slots, nil
}

// BlockDate manually blocks a whole day on the host's calendar.
func (s *AvailabilityService) BlockDate(ctx context.Context, userID int64, date time.Time) (*model.DateBlock, error) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)

	block := &model.DateBlock{UserID: userID, Date: date}
	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("block date: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID, date.Year(), date.Month())
	}

	s.logger.Info("Date blocked",
		zap.Int64("user_id", userID),
		zap.String("date", date.Format("2006-01-02")),
	)

	return block, nil
}

// PruneOldBlocks removes manual blocks for days before today. Blocks
// on past days have no effect anymore, so this is pure housekeeping.
func (s *AvailabilityService) PruneOldBlocks(ctx context.Context) (int64, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	pruned, err := s.blocks.DeleteBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("prune old date blocks: %w", err)
	}
	return pruned, nil
}

// BlockedDatesFor lists the manually blocked dates of one month.
func (s *AvailabilityService) BlockedDatesFor(ctx context.Context, userID int64, year int, month time.Month) ([]time.Time, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	dates, err := s.blocks.ListForRange(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("list date blocks: %w", err)
	}
	return dates, nil
}
