package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/repository"
	"github.com/pcamargo/slotbook/internal/schedule"
	"go.uber.org/zap"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{2,29}$`)

type UserService struct {
	users     UserStore
	intervals IntervalStore
	logger    *zap.Logger
}

func NewUserService(users UserStore, intervals IntervalStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		intervals: intervals,
		logger:    logger,
	}
}

// Register claims a username. Returns ErrConflict when the username is
// already taken.
func (s *UserService) Register(ctx context.Context, username, name string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	name = strings.TrimSpace(name)

	if !usernamePattern.MatchString(username) {
		return nil, &schedule.ValidationError{
			Msg: "username must be 3-30 characters of lowercase letters, digits and hyphens",
		}
	}
	if name == "" {
		return nil, &schedule.ValidationError{Msg: "name is required"}
	}

	user := &model.User{Username: username, Name: name}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil
}

// Resolve maps a username to its user. Returns ErrNotFound for unknown
// usernames.
func (s *UserService) Resolve(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// SetTimeIntervals validates and stores the user's full weekly
// availability configuration.
func (s *UserService) SetTimeIntervals(ctx context.Context, userID int64, intervals []model.WeekdayInterval) error {
	set, err := schedule.NewWeekdayIntervalSet(intervals)
	if err != nil {
		return err
	}

	if err := s.intervals.Replace(ctx, userID, set.Intervals()); err != nil {
		return fmt.Errorf("store weekday intervals: %w", err)
	}

	s.logger.Info("Weekly availability updated",
		zap.Int64("user_id", userID),
		zap.Ints("blocked_weekdays", set.BlockedWeekdays()),
	)

	return nil
}
