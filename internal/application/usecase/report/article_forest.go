// Package report contains the financial report aggregation use cases.
package report

import (
	"sort"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

// forestNode is one article of the rendered tree. Nodes reference their children by id.
type forestNode struct {
	article       *entity.Article
	own           valueobject.MonthBuckets
	hasOperations bool
	childIDs      []uuid.UUID
}

// articleForest is an arena of article nodes indexed by id, built from flat parent links.
type articleForest struct {
	nodes   map[uuid.UUID]*forestNode
	rootIDs []uuid.UUID
}

// newArticleForest links articles into a forest. An article whose parent is not rendered
// becomes a root, and so does an article whose parent link would close a cycle.
func newArticleForest(articles []*entity.Article, direct map[uuid.UUID]valueobject.MonthBuckets) *articleForest {
	forest := &articleForest{
		nodes: make(map[uuid.UUID]*forestNode, len(articles)),
	}

	ids := make([]uuid.UUID, 0, len(articles))
	for _, article := range articles {
		own, hasOperations := direct[article.ID]
		if own == nil {
			own = valueobject.MonthBuckets{}
		}
		forest.nodes[article.ID] = &forestNode{
			article:       article,
			own:           own,
			hasOperations: hasOperations,
		}
		ids = append(ids, article.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	parents := make(map[uuid.UUID]uuid.UUID, len(ids))
	for _, id := range ids {
		parentID := forest.nodes[id].article.ParentID
		if parentID == nil || *parentID == id {
			continue
		}
		if _, ok := forest.nodes[*parentID]; ok {
			parents[id] = *parentID
		}
	}
	for _, id := range ids {
		if forest.closesCycle(parents, id) {
			delete(parents, id)
		}
	}

	for _, id := range ids {
		if parentID, ok := parents[id]; ok {
			parent := forest.nodes[parentID]
			parent.childIDs = append(parent.childIDs, id)
			continue
		}
		forest.rootIDs = append(forest.rootIDs, id)
	}

	return forest
}

// closesCycle reports whether walking up from id leads back to id.
// The walk is bounded by the number of nodes.
func (f *articleForest) closesCycle(parents map[uuid.UUID]uuid.UUID, id uuid.UUID) bool {
	current := id
	for steps := 0; steps <= len(f.nodes); steps++ {
		parent, ok := parents[current]
		if !ok {
			return false
		}
		if parent == id {
			return true
		}
		current = parent
	}
	return true
}

// render rolls every node up bottom-up and returns the sorted root rows.
// A node's buckets become its own amounts plus the rolled-up amounts of all its children.
func (f *articleForest) render(months []string) []*ArticleRow {
	roots := make([]*ArticleRow, 0, len(f.rootIDs))
	for _, id := range f.rootIDs {
		row, _ := f.rollup(id, months)
		roots = append(roots, row)
	}
	sortRows(roots)
	return roots
}

func (f *articleForest) rollup(id uuid.UUID, months []string) (*ArticleRow, valueobject.MonthBuckets) {
	node := f.nodes[id]

	rolled := valueobject.MonthBuckets{}
	for month, amount := range node.own {
		rolled.Add(month, amount)
	}

	children := make([]*ArticleRow, 0, len(node.childIDs))
	for _, childID := range node.childIDs {
		child, childBuckets := f.rollup(childID, months)
		for month, amount := range childBuckets {
			rolled.Add(month, amount)
		}
		children = append(children, child)
	}

	row := &ArticleRow{
		ArticleID:     node.article.ID,
		Name:          node.article.Name,
		ParentID:      node.article.ParentID,
		Type:          node.article.Type,
		Activity:      node.article.Activity,
		Months:        rolled.Series(months),
		Total:         rolled.Total(),
		HasOperations: node.hasOperations,
	}
	if len(children) > 0 {
		row.Children = children
	}
	return row, rolled
}
