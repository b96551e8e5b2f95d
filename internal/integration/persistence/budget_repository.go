// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// FindByID retrieves a budget of the company. Budgets of other companies are not found.
func (r *budgetRepository) FindByID(ctx context.Context, companyID, budgetID uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", budgetID, companyID).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// catalogRepository implements the adapter.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance.
func NewCatalogRepository(db *gorm.DB) adapter.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// FindDepartmentsByIDs retrieves department names.
func (r *catalogRepository) FindDepartmentsByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]entity.CatalogEntry, error) {
	if len(ids) == 0 {
		return []entity.CatalogEntry{}, nil
	}

	var departmentModels []model.DepartmentModel
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&departmentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]entity.CatalogEntry, len(departmentModels))
	for i, dm := range departmentModels {
		entries[i] = dm.ToEntry()
	}
	return entries, nil
}

// FindDealsByIDs retrieves deal names.
func (r *catalogRepository) FindDealsByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]entity.CatalogEntry, error) {
	if len(ids) == 0 {
		return []entity.CatalogEntry{}, nil
	}

	var dealModels []model.DealModel
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&dealModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]entity.CatalogEntry, len(dealModels))
	for i, dm := range dealModels {
		entries[i] = dm.ToEntry()
	}
	return entries, nil
}
