// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
)

// planItemRepository implements the adapter.PlanItemRepository interface.
type planItemRepository struct {
	db *gorm.DB
}

// NewPlanItemRepository creates a new plan item repository instance.
func NewPlanItemRepository(db *gorm.DB) adapter.PlanItemRepository {
	return &planItemRepository{
		db: db,
	}
}

// FindActive retrieves active plan items overlapping the filter period.
func (r *planItemRepository) FindActive(ctx context.Context, filter adapter.PlanItemFilter) ([]*entity.PlanItem, error) {
	query := r.db.WithContext(ctx).
		Where("company_id = ?", filter.CompanyID).
		Where("status = ?", string(entity.PlanItemStatusActive)).
		Where("start_date <= ?", filter.PeriodTo).
		Where("(end_date IS NULL OR end_date >= ?)", filter.PeriodFrom)

	if filter.BudgetID != nil {
		query = query.Where("budget_id = ?", *filter.BudgetID)
	}
	if filter.ArticleIDs != nil {
		query = query.Where("article_id IN ?", filter.ArticleIDs)
	}

	var itemModels []model.PlanItemModel
	result := query.Order("start_date ASC, id ASC").Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.PlanItem, len(itemModels))
	for i, im := range itemModels {
		items[i] = im.ToEntity()
	}
	return items, nil
}
