// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
)

// articleRepository implements the adapter.ArticleRepository interface.
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance.
func NewArticleRepository(db *gorm.DB) adapter.ArticleRepository {
	return &articleRepository{
		db: db,
	}
}

// FindByIDs retrieves the company's articles with the given IDs.
func (r *articleRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]*entity.Article, error) {
	if len(ids) == 0 {
		return []*entity.Article{}, nil
	}

	var articleModels []model.ArticleModel
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Order("name ASC").
		Find(&articleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	articles := make([]*entity.Article, len(articleModels))
	for i, am := range articleModels {
		articles[i] = am.ToEntity()
	}
	return articles, nil
}

// FindTreeNodes retrieves the id/parent pairs of every article of the company.
func (r *articleRepository) FindTreeNodes(ctx context.Context, companyID uuid.UUID) ([]entity.ArticleTreeNode, error) {
	var rows []struct {
		ID       uuid.UUID  `gorm:"column:id"`
		ParentID *uuid.UUID `gorm:"column:parent_id"`
	}

	result := r.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Select("id, parent_id").
		Where("company_id = ?", companyID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	nodes := make([]entity.ArticleTreeNode, len(rows))
	for i, row := range rows {
		nodes[i] = entity.ArticleTreeNode{ID: row.ID, ParentID: row.ParentID}
	}
	return nodes, nil
}
