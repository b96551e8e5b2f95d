// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Status    string         `gorm:"type:varchar(10);not null;default:'draft'"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Status:    entity.BudgetStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:        budget.ID,
		CompanyID: budget.CompanyID,
		Name:      budget.Name,
		Status:    string(budget.Status),
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}
