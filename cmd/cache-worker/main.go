// Package main is the entry point for the report cache invalidation worker.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bookkeeping/backend/config"
	"github.com/bookkeeping/backend/internal/application/usecase/report"
	infracache "github.com/bookkeeping/backend/internal/infra/cache"
	reportcache "github.com/bookkeeping/backend/internal/integration/cache"
	"github.com/bookkeeping/backend/internal/integration/messaging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Report cache worker failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Report cache worker stopped")
}

// run returns instead of exiting so deferred connections are always closed.
func run(cfg *config.Config) error {
	if !cfg.Report.CacheEnabled {
		slog.Info("Report cache disabled, nothing to invalidate")
		return nil
	}

	redisConn, err := infracache.NewRedisConnection(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	defer func() {
		if err := redisConn.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	cache := reportcache.NewReportCache(redisConn.Client(), cfg.Report.CacheKeyPrefix, cfg.Report.ScanCount)
	handler := messaging.NewInvalidationHandler(report.NewClearReportCacheUseCase(cache))

	consumer, err := messaging.NewConsumer(cfg.AMQP)
	if err != nil {
		return fmt.Errorf("failed to initialize AMQP consumer: %w", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting report cache worker",
		"exchange", cfg.AMQP.Exchange,
		"queue", cfg.AMQP.Queue,
		"routing_key", cfg.AMQP.RoutingKey,
	)

	if err := consumer.Run(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("message consumption failed: %w", err)
	}
	return nil
}
