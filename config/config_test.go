// Package config provides application configuration management.
package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if !cfg.Report.CacheEnabled {
		t.Error("expected the report cache to be enabled by default")
	}
	if cfg.Report.CacheTTL != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %s", cfg.Report.CacheTTL)
	}
	if cfg.Report.HistoricalCacheTTL != time.Hour {
		t.Errorf("expected 1h historical TTL, got %s", cfg.Report.HistoricalCacheTTL)
	}
	if cfg.Report.CacheKeyPrefix != "report" {
		t.Errorf("expected prefix report, got %s", cfg.Report.CacheKeyPrefix)
	}
	if cfg.Log.Level != slog.LevelInfo {
		t.Errorf("expected info level, got %s", cfg.Log.Level)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REPORT_CACHE_ENABLED", "false")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("REPORT_CACHE_SCAN_COUNT", "500")
	t.Setenv("CACHE_CLEAR_RATE_LIMIT", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg := Load()

	if cfg.Report.CacheEnabled {
		t.Error("expected the report cache to be disabled")
	}
	if cfg.Report.CacheTTL != 90*time.Second {
		t.Errorf("expected 90s, got %s", cfg.Report.CacheTTL)
	}
	if cfg.Report.ScanCount != 500 {
		t.Errorf("expected scan count 500, got %d", cfg.Report.ScanCount)
	}
	if cfg.RateLimit.CacheClearRequests != 3 {
		t.Errorf("expected 3 requests, got %d", cfg.RateLimit.CacheClearRequests)
	}
	if cfg.Log.Level != slog.LevelDebug {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected the default port on a bad value, got %d", cfg.Server.Port)
	}
}
