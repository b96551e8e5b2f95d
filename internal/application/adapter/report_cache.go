// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportType identifies a report family inside the cache namespace.
type ReportType string

const (
	ReportTypeCashflow ReportType = "cashflow"
	ReportTypeBdds     ReportType = "bdds"
	ReportTypePlanFact ReportType = "planfact"
)

// ReportCache memoizes computed reports per company.
// Get and Set never fail: store errors are logged and degrade to a miss or a no-op.
type ReportCache interface {
	// Key derives a deterministic key from the company, report type and request parameters.
	Key(companyID uuid.UUID, reportType ReportType, params map[string]string) string

	// Get decodes the cached payload into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores payload under key for ttl.
	Set(ctx context.Context, key string, payload any, ttl time.Duration)

	// Invalidate removes every cached report of the company and returns the number of deleted keys.
	Invalidate(ctx context.Context, companyID uuid.UUID) (int64, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
