package app

import (
	"context"
	"time"

	"github.com/pcamargo/slotbook/internal/service"
	"go.uber.org/zap"
)

// Scheduler runs the background housekeeping tasks.
type Scheduler struct {
	availability *service.AvailabilityService
	logger       *zap.Logger
	stopChan     chan struct{}
}

func NewScheduler(availability *service.AvailabilityService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		availability: availability,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runBlockCleanupTask(ctx)
}

// Stop stops the background tasks.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runBlockCleanupTask prunes manual date blocks for days that are
// already in the past. Runs once at startup and then daily.
func (s *Scheduler) runBlockCleanupTask(ctx context.Context) {
	s.cleanupBlocks(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupBlocks(ctx)
		case <-s.stopChan:
			s.logger.Info("Block cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Block cleanup task cancelled")
			return
		}
	}
}

func (s *Scheduler) cleanupBlocks(ctx context.Context) {
	pruned, err := s.availability.PruneOldBlocks(ctx)
	if err != nil {
		s.logger.Error("Failed to prune old date blocks", zap.Error(err))
		return
	}
	if pruned > 0 {
		s.logger.Info("Old date blocks pruned", zap.Int64("count", pruned))
	}
}
