package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pcamargo/slotbook/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BlockedDates caches the per-month blocked-dates summary in redis.
// The cache is strictly best-effort: every redis failure is logged and
// treated as a miss, and writes to the affected month invalidate the
// entry so stale availability never survives a booking.
type BlockedDates struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewBlockedDates(client *redis.Client, ttl time.Duration, logger *zap.Logger) *BlockedDates {
	return &BlockedDates{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func key(userID int64, year int, month time.Month) string {
	return fmt.Sprintf("blocked-dates:%d:%04d-%02d", userID, year, int(month))
}

func (c *BlockedDates) Get(ctx context.Context, userID int64, year int, month time.Month) (model.BlockedDates, bool) {
	raw, err := c.client.Get(ctx, key(userID, year, month)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Blocked dates cache read failed", zap.Error(err))
		}
		return model.BlockedDates{}, false
	}

	var blocked model.BlockedDates
	if err := json.Unmarshal(raw, &blocked); err != nil {
		c.logger.Warn("Blocked dates cache entry corrupt", zap.Error(err))
		return model.BlockedDates{}, false
	}
	return blocked, true
}

func (c *BlockedDates) Set(ctx context.Context, userID int64, year int, month time.Month, blocked model.BlockedDates) {
	raw, err := json.Marshal(blocked)
	if err != nil {
		c.logger.Warn("Blocked dates cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key(userID, year, month), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Blocked dates cache write failed", zap.Error(err))
	}
}

func (c *BlockedDates) Invalidate(ctx context.Context, userID int64, year int, month time.Month) {
	if err := c.client.Del(ctx, key(userID, year, month)).Err(); err != nil {
		c.logger.Warn("Blocked dates cache invalidate failed", zap.Error(err))
	}
}
