// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

// ArticleRepository defines read access to the article catalog.
// Every method is scoped to one company; ids of other companies are ignored.
type ArticleRepository interface {
	// FindByIDs retrieves the articles with the given IDs.
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]*entity.Article, error)

	// FindTreeNodes retrieves the id/parent pairs of every article of the company.
	FindTreeNodes(ctx context.Context, companyID uuid.UUID) ([]entity.ArticleTreeNode, error)
}
