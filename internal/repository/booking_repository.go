package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pcamargo/slotbook/internal/model"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// CreateIfFree inserts the booking only if no existing booking for the
// same host and date overlaps it, as one atomic unit. The day's rows
// are locked for the overlap check; when the day has no rows yet, the
// (user_id, date, start_minute) unique index settles concurrent
// inserts. Either way the loser gets ErrSlotTaken and no row.
func (r *BookingRepository) CreateIfFree(ctx context.Context, booking *model.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT start_minute, end_minute
		FROM bookings
		WHERE user_id = $1 AND date = $2
		FOR UPDATE
	`, booking.UserID, booking.Date)
	if err != nil {
		return fmt.Errorf("lock bookings for date: %w", err)
	}

	for rows.Next() {
		var start, end int
		if err := rows.Scan(&start, &end); err != nil {
			rows.Close()
			return fmt.Errorf("scan booked interval: %w", err)
		}
		if booking.StartMinute < end && booking.EndMinute > start {
			rows.Close()
			return ErrSlotTaken
		}
	}
	rows.Close()
	if rows.Err() != nil {
		return fmt.Errorf("iterate booked intervals: %w", rows.Err())
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (public_id, user_id, date, start_minute, end_minute, guest_name, guest_email, guest_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		booking.PublicID,
		booking.UserID,
		booking.Date,
		booking.StartMinute,
		booking.EndMinute,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestNotes,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ListForDate returns the host's bookings for one day ordered by start.
func (r *BookingRepository) ListForDate(ctx context.Context, userID int64, date time.Time) ([]model.Booking, error) {
	query := `
		SELECT id, public_id, user_id, date, start_minute, end_minute, guest_name, guest_email, guest_notes, created_at
		FROM bookings
		WHERE user_id = $1 AND date = $2
		ORDER BY start_minute
	`

	rows, err := r.pool.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get bookings for date: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListForRange returns the host's bookings with from <= date < to,
// ordered by date and start minute.
func (r *BookingRepository) ListForRange(ctx context.Context, userID int64, from, to time.Time) ([]model.Booking, error) {
	query := `
		SELECT id, public_id, user_id, date, start_minute, end_minute, guest_name, guest_email, guest_notes, created_at
		FROM bookings
		WHERE user_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date, start_minute
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get bookings for range: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]model.Booking, error) {
	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		err := rows.Scan(
			&b.ID,
			&b.PublicID,
			&b.UserID,
			&b.Date,
			&b.StartMinute,
			&b.EndMinute,
			&b.GuestName,
			&b.GuestEmail,
			&b.GuestNotes,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
