// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
)

// dateLayout is the layout of period bounds inside cache keys.
const dateLayout = "2006-01-02"

// CacheTTL holds the lifetimes of cached reports.
type CacheTTL struct {
	// Default applies to every report that may still change.
	Default time.Duration
	// Historical applies to plan-fact reports whose fact side is closed.
	Historical time.Duration
}

// cacheThrough returns the cached report under key or computes and stores it.
// Cache failures never fail the request; compute errors are returned as they are.
func cacheThrough[T any](
	ctx context.Context,
	cache adapter.ReportCache,
	key string,
	ttl time.Duration,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err := compute(ctx)
	if err != nil {
		return result, err
	}

	cache.Set(ctx, key, result, ttl)
	return result, nil
}

// keyParams collects the request parameters that identify a cached report.
type keyParams map[string]string

func (p keyParams) date(name string, t time.Time) keyParams {
	p[name] = t.UTC().Format(dateLayout)
	return p
}

func (p keyParams) id(name string, id *uuid.UUID) keyParams {
	if id != nil {
		p[name] = id.String()
	}
	return p
}

func (p keyParams) text(name, value string) keyParams {
	if value != "" {
		p[name] = value
	}
	return p
}

func (p keyParams) number(name string, value int64) keyParams {
	if value != 0 {
		p[name] = strconv.FormatInt(value, 10)
	}
	return p
}
