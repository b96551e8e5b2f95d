// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// OperationModel represents the operations table in the database.
type OperationModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	OperationDate time.Time       `gorm:"type:date;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ArticleID     *uuid.UUID      `gorm:"type:uuid;index"`
	DealID        *uuid.UUID      `gorm:"type:uuid;index"`
	DepartmentID  *uuid.UUID      `gorm:"type:uuid;index"`
	IsConfirmed   bool            `gorm:"default:false"`
	IsTemplate    bool            `gorm:"default:false"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the OperationModel.
func (OperationModel) TableName() string {
	return "operations"
}

// ToEntity converts an OperationModel to a domain Operation entity.
func (m *OperationModel) ToEntity() *entity.Operation {
	return &entity.Operation{
		ID:            m.ID,
		CompanyID:     m.CompanyID,
		Type:          entity.OperationType(m.Type),
		OperationDate: m.OperationDate,
		Amount:        m.Amount,
		ArticleID:     m.ArticleID,
		DealID:        m.DealID,
		DepartmentID:  m.DepartmentID,
		IsConfirmed:   m.IsConfirmed,
		IsTemplate:    m.IsTemplate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// OperationFromEntity creates an OperationModel from a domain Operation entity.
func OperationFromEntity(op *entity.Operation) *OperationModel {
	return &OperationModel{
		ID:            op.ID,
		CompanyID:     op.CompanyID,
		Type:          string(op.Type),
		OperationDate: op.OperationDate,
		Amount:        op.Amount,
		ArticleID:     op.ArticleID,
		DealID:        op.DealID,
		DepartmentID:  op.DepartmentID,
		IsConfirmed:   op.IsConfirmed,
		IsTemplate:    op.IsTemplate,
		CreatedAt:     op.CreatedAt,
		UpdatedAt:     op.UpdatedAt,
	}
}
