// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
)

// operationRepository implements the adapter.OperationRepository interface.
type operationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a new operation repository instance.
func NewOperationRepository(db *gorm.DB) adapter.OperationRepository {
	return &operationRepository{
		db: db,
	}
}

// FindConfirmed retrieves report-visible operations dated within the filter period.
func (r *operationRepository) FindConfirmed(ctx context.Context, filter adapter.OperationFilter) ([]*entity.Operation, error) {
	query := r.db.WithContext(ctx).
		Where("company_id = ?", filter.CompanyID).
		Where("is_confirmed = ? AND is_template = ?", true, false).
		Where("type IN ?", []string{string(entity.OperationTypeIncome), string(entity.OperationTypeExpense)}).
		Where("operation_date >= ? AND operation_date <= ?", filter.From, filter.To)

	if filter.ArticleIDs != nil {
		query = query.Where("article_id IN ?", filter.ArticleIDs)
	}

	var operationModels []model.OperationModel
	result := query.Order("operation_date ASC, id ASC").Find(&operationModels)
	if result.Error != nil {
		return nil, result.Error
	}

	operations := make([]*entity.Operation, len(operationModels))
	for i, om := range operationModels {
		operations[i] = om.ToEntity()
	}
	return operations, nil
}
