// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
)

// IDSet is a set of identifiers.
type IDSet map[uuid.UUID]struct{}

// Add inserts ids into the set.
func (s IDSet) Add(ids ...uuid.UUID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the ids in a stable order.
func (s IDSet) Slice() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// ArticleHierarchy resolves ancestor and descendant sets over a company's article forest.
// Unknown ids and ids of other companies resolve to an empty set.
type ArticleHierarchy struct {
	articleRepo adapter.ArticleRepository
}

// NewArticleHierarchy creates a new ArticleHierarchy instance.
func NewArticleHierarchy(articleRepo adapter.ArticleRepository) *ArticleHierarchy {
	return &ArticleHierarchy{
		articleRepo: articleRepo,
	}
}

// AncestorIDs returns every article above articleID, up to its root.
func (h *ArticleHierarchy) AncestorIDs(ctx context.Context, articleID, companyID uuid.UUID) (IDSet, error) {
	index, err := h.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return index.ancestors(articleID), nil
}

// DescendantIDs returns every article below articleID, down to the leaves.
func (h *ArticleHierarchy) DescendantIDs(ctx context.Context, articleID, companyID uuid.UUID) (IDSet, error) {
	index, err := h.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return index.descendants(articleID), nil
}

// Closure returns ids together with all their ancestors and descendants.
// Ids unknown to the company are kept as they are.
func (h *ArticleHierarchy) Closure(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (IDSet, error) {
	index, err := h.load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	closure := IDSet{}
	for _, id := range ids {
		closure.Add(id)
		for ancestor := range index.ancestors(id) {
			closure.Add(ancestor)
		}
		for descendant := range index.descendants(id) {
			closure.Add(descendant)
		}
	}
	return closure, nil
}

func (h *ArticleHierarchy) load(ctx context.Context, companyID uuid.UUID) (*articleIndex, error) {
	nodes, err := h.articleRepo.FindTreeNodes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load article tree: %w", err)
	}
	return newArticleIndex(nodes), nil
}

// articleIndex is an in-memory parent/children index of one company's articles.
type articleIndex struct {
	known    IDSet
	parents  map[uuid.UUID]uuid.UUID
	children map[uuid.UUID][]uuid.UUID
}

func newArticleIndex(nodes []entity.ArticleTreeNode) *articleIndex {
	index := &articleIndex{
		known:    make(IDSet, len(nodes)),
		parents:  make(map[uuid.UUID]uuid.UUID, len(nodes)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, node := range nodes {
		index.known.Add(node.ID)
	}
	for _, node := range nodes {
		if node.ParentID == nil || *node.ParentID == node.ID || !index.known.Has(*node.ParentID) {
			continue
		}
		index.parents[node.ID] = *node.ParentID
		index.children[*node.ParentID] = append(index.children[*node.ParentID], node.ID)
	}
	return index
}

// ancestors walks the parent chain. The walk stops on a revisited id, so a corrupt cycle terminates.
func (x *articleIndex) ancestors(id uuid.UUID) IDSet {
	result := IDSet{}
	if !x.known.Has(id) {
		return result
	}

	current := id
	for {
		parent, ok := x.parents[current]
		if !ok || parent == id || result.Has(parent) {
			return result
		}
		result.Add(parent)
		current = parent
	}
}

func (x *articleIndex) descendants(id uuid.UUID) IDSet {
	result := IDSet{}
	if !x.known.Has(id) {
		return result
	}

	queue := append([]uuid.UUID(nil), x.children[id]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == id || result.Has(current) {
			continue
		}
		result.Add(current)
		queue = append(queue, x.children[current]...)
	}
	return result
}
