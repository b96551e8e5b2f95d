// Package main is the entry point for the financial reports API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookkeeping/backend/config"
	"github.com/bookkeeping/backend/internal/infra/cache"
	"github.com/bookkeeping/backend/internal/infra/db"
	"github.com/bookkeeping/backend/internal/infra/dependency"
	"github.com/bookkeeping/backend/internal/integration/adapters"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting financial reports API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"report_cache_enabled", cfg.Report.CacheEnabled,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment == "development")
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Initialize Redis connection; reports are served uncached without it
	var redisConn *cache.Redis
	if cfg.Report.CacheEnabled {
		redisConn, err = cache.NewRedisConnection(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, serving reports without cache", "error", err)
			redisConn = nil
		} else {
			defer func() {
				if err := redisConn.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	// Wire dependencies and setup router
	injector := dependency.NewInjector(cfg, database.DB(), redisConn, adapters.NewSystemClock())
	engine := injector.Router.Setup(cfg.Server.Environment)

	stopCleanup := make(chan struct{})
	go injector.CacheClearRateLimiter.RunCleanup(cfg.RateLimit.CacheClearWindow, stopCleanup)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
