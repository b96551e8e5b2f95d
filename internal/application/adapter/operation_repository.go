// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// OperationFilter narrows the operations selected for a report.
type OperationFilter struct {
	CompanyID  uuid.UUID
	From       time.Time
	To         time.Time
	ArticleIDs []uuid.UUID // nil means any article
}

// OperationRepository defines read access to ledger operations.
type OperationRepository interface {
	// FindConfirmed retrieves confirmed, non-template income and expense operations
	// dated within [From, To].
	FindConfirmed(ctx context.Context, filter OperationFilter) ([]*entity.Operation, error)
}
