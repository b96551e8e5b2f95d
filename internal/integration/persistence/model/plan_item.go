// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// PlanItemModel represents the plan_items table in the database.
type PlanItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         string          `gorm:"type:varchar(10);not null"`
	StartDate    time.Time       `gorm:"type:date;not null;index"`
	EndDate      *time.Time      `gorm:"type:date"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Repeat       string          `gorm:"type:varchar(12);not null;default:'none'"`
	Status       string          `gorm:"type:varchar(10);not null;default:'active';index"`
	ArticleID    *uuid.UUID      `gorm:"type:uuid;index"`
	DealID       *uuid.UUID      `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID      `gorm:"type:uuid"`
	BudgetID     *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the PlanItemModel.
func (PlanItemModel) TableName() string {
	return "plan_items"
}

// ToEntity converts a PlanItemModel to a domain PlanItem entity.
func (m *PlanItemModel) ToEntity() *entity.PlanItem {
	return &entity.PlanItem{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		Type:         entity.ArticleType(m.Type),
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Amount:       m.Amount,
		Repeat:       entity.RepeatType(m.Repeat),
		Status:       entity.PlanItemStatus(m.Status),
		ArticleID:    m.ArticleID,
		DealID:       m.DealID,
		DepartmentID: m.DepartmentID,
		BudgetID:     m.BudgetID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// PlanItemFromEntity creates a PlanItemModel from a domain PlanItem entity.
func PlanItemFromEntity(item *entity.PlanItem) *PlanItemModel {
	return &PlanItemModel{
		ID:           item.ID,
		CompanyID:    item.CompanyID,
		Type:         string(item.Type),
		StartDate:    item.StartDate,
		EndDate:      item.EndDate,
		Amount:       item.Amount,
		Repeat:       string(item.Repeat),
		Status:       string(item.Status),
		ArticleID:    item.ArticleID,
		DealID:       item.DealID,
		DepartmentID: item.DepartmentID,
		BudgetID:     item.BudgetID,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
