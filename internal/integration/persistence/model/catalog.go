// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// DepartmentModel represents the departments table in the database.
// Only the columns read by reports are mapped.
type DepartmentModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the DepartmentModel.
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToEntry converts a DepartmentModel to a catalog entry.
func (m *DepartmentModel) ToEntry() entity.CatalogEntry {
	return entity.CatalogEntry{ID: m.ID, Name: m.Name}
}

// DealModel represents the deals table in the database.
// Only the columns read by reports are mapped.
type DealModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the DealModel.
func (DealModel) TableName() string {
	return "deals"
}

// ToEntry converts a DealModel to a catalog entry.
func (m *DealModel) ToEntry() entity.CatalogEntry {
	return entity.CatalogEntry{ID: m.ID, Name: m.Name}
}
