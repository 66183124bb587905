package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/pcamargo/slotbook/internal/app"
	"github.com/pcamargo/slotbook/internal/cache"
	"github.com/pcamargo/slotbook/internal/config"
	"github.com/pcamargo/slotbook/internal/controller/httpapi"
	"github.com/pcamargo/slotbook/internal/repository"
	"github.com/pcamargo/slotbook/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const blockedDatesCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("Invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := app.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Redis is optional; without it every month summary is recomputed
	// from Postgres.
	var blockedCache service.BlockedDatesCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		} else {
			blockedCache = cache.NewBlockedDates(client, blockedDatesCacheTTL, logger)
			logger.Info("Blocked dates cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	userRepo := repository.NewUserRepository(pool)
	intervalRepo := repository.NewIntervalRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	blockRepo := repository.NewBlockRepository(pool)

	userService := service.NewUserService(userRepo, intervalRepo, logger)
	availabilityService := service.NewAvailabilityService(
		intervalRepo, bookingRepo, blockRepo, blockedCache,
		logger, nil, loc, cfg.SlotDurationMinutes,
	)
	bookingService := service.NewBookingService(
		intervalRepo, bookingRepo, blockRepo, blockedCache,
		logger, nil, loc, cfg.SlotDurationMinutes,
	)

	scheduler := app.NewScheduler(availabilityService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	handlers := httpapi.NewHandlers(userService, availabilityService, bookingService, logger)
	router := httpapi.NewRouter(handlers, logger)

	logger.Info("Starting slotbook",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Int("slot_duration_minutes", cfg.SlotDurationMinutes),
	)

	server := app.NewServer(cfg.Port, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
