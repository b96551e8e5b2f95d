// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// PlanItemFilter narrows the plan items selected for a report.
type PlanItemFilter struct {
	CompanyID  uuid.UUID
	PeriodFrom time.Time
	PeriodTo   time.Time
	BudgetID   *uuid.UUID
	ArticleIDs []uuid.UUID // nil means any article
}

// PlanItemRepository defines read access to plan items.
type PlanItemRepository interface {
	// FindActive retrieves active plan items whose [start, end ?? ∞) overlaps the filter period.
	FindActive(ctx context.Context, filter PlanItemFilter) ([]*entity.PlanItem, error)
}
