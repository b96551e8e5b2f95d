// Package report contains the financial report aggregation use cases.
package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	domainerror "github.com/bookkeeping/backend/internal/domain/error"
)

// ClearReportCacheOutput represents the output of a cache invalidation.
type ClearReportCacheOutput struct {
	Cleared int64 `json:"cleared"`
}

// ClearReportCacheUseCase drops every cached report of a company.
type ClearReportCacheUseCase struct {
	cache adapter.ReportCache
}

// NewClearReportCacheUseCase creates a new ClearReportCacheUseCase instance.
func NewClearReportCacheUseCase(cache adapter.ReportCache) *ClearReportCacheUseCase {
	return &ClearReportCacheUseCase{
		cache: cache,
	}
}

// Execute invalidates the company's cached reports.
// Unlike cache reads, a failed invalidation is reported to the caller.
func (uc *ClearReportCacheUseCase) Execute(ctx context.Context, companyID uuid.UUID) (*ClearReportCacheOutput, error) {
	cleared, err := uc.cache.Invalidate(ctx, companyID)
	if err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeCacheInvalidationFailed,
			"failed to clear report cache",
			err,
		)
	}

	return &ClearReportCacheOutput{
		Cleared: cleared,
	}, nil
}
