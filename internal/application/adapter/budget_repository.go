// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// BudgetRepository defines read access to budgets.
type BudgetRepository interface {
	// FindByID retrieves a budget of the company. It returns nil when none exists.
	FindByID(ctx context.Context, companyID, budgetID uuid.UUID) (*entity.Budget, error)
}

// CatalogRepository resolves display names of catalog entries owned by other modules.
type CatalogRepository interface {
	// FindDepartmentsByIDs retrieves department names.
	FindDepartmentsByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]entity.CatalogEntry, error)

	// FindDealsByIDs retrieves deal names.
	FindDealsByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]entity.CatalogEntry, error)
}
