package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pcamargo/slotbook/internal/model"
)

type IntervalRepository struct {
	pool *pgxpool.Pool
}

func NewIntervalRepository(pool *pgxpool.Pool) *IntervalRepository {
	return &IntervalRepository{pool: pool}
}

// Replace swaps the user's whole weekly configuration in one
// transaction. The set is always written as 7 rows keyed
// (user_id, weekday).
func (r *IntervalRepository) Replace(ctx context.Context, userID int64, intervals []model.WeekdayInterval) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM weekday_intervals WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete weekday intervals: %w", err)
	}

	query := `
		INSERT INTO weekday_intervals (user_id, weekday, enabled, start_minute, end_minute)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, iv := range intervals {
		_, err = tx.Exec(ctx, query, userID, iv.Weekday, iv.Enabled, iv.StartMinute, iv.EndMinute)
		if err != nil {
			return fmt.Errorf("insert weekday interval: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByUserID returns the user's stored intervals ordered by weekday.
// Users who never configured availability get an empty slice.
func (r *IntervalRepository) GetByUserID(ctx context.Context, userID int64) ([]model.WeekdayInterval, error) {
	query := `
		SELECT weekday, enabled, start_minute, end_minute
		FROM weekday_intervals
		WHERE user_id = $1
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get weekday intervals: %w", err)
	}
	defer rows.Close()

	var intervals []model.WeekdayInterval
	for rows.Next() {
		var iv model.WeekdayInterval
		err := rows.Scan(&iv.Weekday, &iv.Enabled, &iv.StartMinute, &iv.EndMinute)
		if err != nil {
			return nil, fmt.Errorf("scan weekday interval: %w", err)
		}
		intervals = append(intervals, iv)
	}

	return intervals, rows.Err()
}
