// Package cache implements the report cache on top of Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookkeeping/backend/internal/application/adapter"
)

// reportCache implements the adapter.ReportCache interface with Redis.
type reportCache struct {
	client    *redis.Client
	prefix    string
	scanCount int64
}

// NewReportCache creates a new Redis report cache. Keys live under prefix.
func NewReportCache(client *redis.Client, prefix string, scanCount int64) adapter.ReportCache {
	if scanCount <= 0 {
		scanCount = 100
	}
	return &reportCache{
		client:    client,
		prefix:    prefix,
		scanCount: scanCount,
	}
}

// Key derives "{prefix}:{companyId}:{reportType}:{sha256(params)}".
// Params are serialized with sorted keys, so insertion order never changes the key.
func (c *reportCache) Key(companyID uuid.UUID, reportType adapter.ReportType, params map[string]string) string {
	if params == nil {
		params = map[string]string{}
	}
	canonical, _ := json.Marshal(params)
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s:%s", c.companyNamespace(companyID), reportType, hex.EncodeToString(sum[:]))
}

// Get decodes the cached payload into dest. Store and decode failures count as a miss.
func (c *reportCache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "Report cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		slog.WarnContext(ctx, "Report cache entry could not be decoded", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores payload under key for ttl. Failures are logged and ignored.
func (c *reportCache) Set(ctx context.Context, key string, payload any, ttl time.Duration) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.WarnContext(ctx, "Report cache entry could not be encoded", "key", key, "error", err)
		return
	}

	if err := c.client.SetEx(ctx, key, data, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Report cache write failed", "key", key, "error", err)
	}
}

// Invalidate deletes every key of the company. Keys are collected with SCAN first and deleted
// afterwards in batches of scanCount, so deletions never shift the cursor being iterated.
func (c *reportCache) Invalidate(ctx context.Context, companyID uuid.UUID) (int64, error) {
	pattern := c.companyNamespace(companyID) + ":*"

	var keys []string
	var cursor uint64
	for {
		page, next, err := c.client.Scan(ctx, cursor, pattern, c.scanCount).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan report cache: %w", err)
		}
		keys = append(keys, page...)

		cursor = next
		if cursor == 0 {
			break
		}
	}

	batch := int(c.scanCount)

	var deleted int64
	for start := 0; start < len(keys); start += batch {
		end := min(start+batch, len(keys))
		n, err := c.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete report cache keys: %w", err)
		}
		deleted += n
	}

	slog.InfoContext(ctx, "Report cache invalidated", "company_id", companyID, "deleted", deleted)
	return deleted, nil
}

func (c *reportCache) companyNamespace(companyID uuid.UUID) string {
	return c.prefix + ":" + companyID.String()
}

// noopReportCache is used when caching is disabled. Every read misses.
type noopReportCache struct{}

// NewNoopReportCache creates a report cache that stores nothing.
func NewNoopReportCache() adapter.ReportCache {
	return noopReportCache{}
}

func (noopReportCache) Key(companyID uuid.UUID, reportType adapter.ReportType, _ map[string]string) string {
	return companyID.String() + ":" + string(reportType)
}

func (noopReportCache) Get(context.Context, string, any) bool {
	return false
}

func (noopReportCache) Set(context.Context, string, any, time.Duration) {}

func (noopReportCache) Invalidate(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}
