package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pcamargo/slotbook/internal/model"
)

type BlockRepository struct {
	pool *pgxpool.Pool
}

func NewBlockRepository(pool *pgxpool.Pool) *BlockRepository {
	return &BlockRepository{pool: pool}
}

// Create marks a date as manually blocked. Blocking an already blocked
// date is a no-op.
func (r *BlockRepository) Create(ctx context.Context, block *model.DateBlock) error {
	query := `
		INSERT INTO date_blocks (user_id, date)
		VALUES ($1, $2)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, block.UserID, block.Date)
	if err != nil {
		return fmt.Errorf("create date block: %w", err)
	}

	return nil
}

// Exists reports whether the date is manually blocked for the user.
func (r *BlockRepository) Exists(ctx context.Context, userID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM date_blocks
			WHERE user_id = $1 AND date = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check date block exists: %w", err)
	}

	return exists, nil
}

// DeleteBefore removes blocks for dates strictly before the cutoff,
// for all users. Returns the number of rows removed.
func (r *BlockRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM date_blocks WHERE date < $1`

	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete old date blocks: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListForRange returns the blocked dates with from <= date < to.
func (r *BlockRepository) ListForRange(ctx context.Context, userID int64, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT date
		FROM date_blocks
		WHERE user_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get date blocks: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan date block: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}
