// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// ArticleModel represents the articles table in the database.
type ArticleModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index"`
	Type      string         `gorm:"type:varchar(10);not null"`
	Activity  string         `gorm:"type:varchar(10);not null"`
	IsActive  bool           `gorm:"default:true"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ArticleModel.
func (ArticleModel) TableName() string {
	return "articles"
}

// ToEntity converts an ArticleModel to a domain Article entity.
func (m *ArticleModel) ToEntity() *entity.Article {
	return &entity.Article{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		ParentID:  m.ParentID,
		Type:      entity.ArticleType(m.Type),
		Activity:  entity.Activity(m.Activity),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ArticleFromEntity creates an ArticleModel from a domain Article entity.
func ArticleFromEntity(article *entity.Article) *ArticleModel {
	return &ArticleModel{
		ID:        article.ID,
		CompanyID: article.CompanyID,
		Name:      article.Name,
		ParentID:  article.ParentID,
		Type:      string(article.Type),
		Activity:  string(article.Activity),
		IsActive:  article.IsActive,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}
