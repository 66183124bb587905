package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pcamargo/slotbook/internal/model"
	"github.com/pcamargo/slotbook/internal/schedule"
	"go.uber.org/zap"
)

// memUsers reproduces the unique-violation behavior of the users table.
type memUsers struct {
	mu     sync.Mutex
	byName map[string]model.User
	nextID int64
}

func newMemUsers() *memUsers {
	return &memUsers{byName: make(map[string]model.User)}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byName[user.Username]; ok {
		return fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})
	}
	m.nextID++
	user.ID = m.nextID
	m.byName[user.Username] = *user
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byName[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func TestRegister_And_Resolve(t *testing.T) {
	users := newMemUsers()
	svc := NewUserService(users, newMemStore(), zap.NewNop())

	created, err := svc.Register(context.Background(), "Ana-Souza", "Ana Souza")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Username != "ana-souza" {
		t.Fatalf("username not normalized: %q", created.Username)
	}

	resolved, err := svc.Resolve(context.Background(), "ana-souza")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != created.ID {
		t.Fatalf("resolved id %d, want %d", resolved.ID, created.ID)
	}
}

func TestRegister_TakenUsernameConflicts(t *testing.T) {
	users := newMemUsers()
	svc := NewUserService(users, newMemStore(), zap.NewNop())

	if _, err := svc.Register(context.Background(), "ana", "Ana"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(context.Background(), "ana", "Another Ana")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRegister_InvalidUsername(t *testing.T) {
	svc := NewUserService(newMemUsers(), newMemStore(), zap.NewNop())

	var verr *schedule.ValidationError
	for _, username := range []string{"", "ab", "has space", "UPPER CASE!", "-leading"} {
		if _, err := svc.Register(context.Background(), username, "Ana"); !errors.As(err, &verr) {
			t.Fatalf("username %q: expected ValidationError, got %v", username, err)
		}
	}
}

func TestResolve_UnknownUser(t *testing.T) {
	svc := NewUserService(newMemUsers(), newMemStore(), zap.NewNop())

	_, err := svc.Resolve(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetTimeIntervals_ValidatesBeforeWrite(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(newMemUsers(), store, zap.NewNop())

	week := weekdayConfig()
	if err := svc.SetTimeIntervals(context.Background(), hostID, week); err != nil {
		t.Fatalf("set intervals: %v", err)
	}

	stored, err := store.GetByUserID(context.Background(), hostID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(stored) != 7 {
		t.Fatalf("expected 7 stored intervals, got %d", len(stored))
	}

	var verr *schedule.ValidationError
	if err := svc.SetTimeIntervals(context.Background(), hostID, week[:5]); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for short config, got %v", err)
	}
}
