// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/domain/entity"
)

func TestArticleHierarchy(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()

	root := uuid.New()
	child := uuid.New()
	grandchild := uuid.New()
	sibling := uuid.New()
	foreign := uuid.New()

	repo := &fakeArticleRepo{articles: []*entity.Article{
		{ID: root, CompanyID: companyID, Name: "Revenue"},
		{ID: child, CompanyID: companyID, Name: "Retail", ParentID: idPtr(root)},
		{ID: grandchild, CompanyID: companyID, Name: "Stores", ParentID: idPtr(child)},
		{ID: sibling, CompanyID: companyID, Name: "Wholesale", ParentID: idPtr(root)},
		{ID: foreign, CompanyID: otherCompanyID, Name: "Foreign", ParentID: idPtr(root)},
	}}
	hierarchy := NewArticleHierarchy(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		resolve  func() (IDSet, error)
		expected []uuid.UUID
	}{
		{
			name:     "ancestors of a leaf",
			resolve:  func() (IDSet, error) { return hierarchy.AncestorIDs(ctx, grandchild, companyID) },
			expected: []uuid.UUID{root, child},
		},
		{
			name:     "ancestors of a root",
			resolve:  func() (IDSet, error) { return hierarchy.AncestorIDs(ctx, root, companyID) },
			expected: nil,
		},
		{
			name:     "descendants of a root",
			resolve:  func() (IDSet, error) { return hierarchy.DescendantIDs(ctx, root, companyID) },
			expected: []uuid.UUID{child, grandchild, sibling},
		},
		{
			name:     "descendants of a leaf",
			resolve:  func() (IDSet, error) { return hierarchy.DescendantIDs(ctx, grandchild, companyID) },
			expected: nil,
		},
		{
			name:     "unknown id",
			resolve:  func() (IDSet, error) { return hierarchy.DescendantIDs(ctx, uuid.New(), companyID) },
			expected: nil,
		},
		{
			name:     "id of another company",
			resolve:  func() (IDSet, error) { return hierarchy.AncestorIDs(ctx, foreign, companyID) },
			expected: nil,
		},
		{
			name:     "closure of a middle node",
			resolve:  func() (IDSet, error) { return hierarchy.Closure(ctx, companyID, []uuid.UUID{child}) },
			expected: []uuid.UUID{root, child, grandchild},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resolve()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d ids, got %d", len(tt.expected), len(got))
			}
			for _, id := range tt.expected {
				if !got.Has(id) {
					t.Errorf("expected %s in the result", id)
				}
			}
		})
	}
}

func TestArticleHierarchy_Cycle(t *testing.T) {
	companyID := uuid.New()
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	repo := &fakeArticleRepo{articles: []*entity.Article{
		{ID: a, CompanyID: companyID, ParentID: idPtr(c)},
		{ID: b, CompanyID: companyID, ParentID: idPtr(a)},
		{ID: c, CompanyID: companyID, ParentID: idPtr(b)},
	}}
	hierarchy := NewArticleHierarchy(repo)

	ancestors, err := hierarchy.AncestorIDs(context.Background(), a, companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ancestors) != 2 || !ancestors.Has(b) || !ancestors.Has(c) {
		t.Errorf("expected ancestors {b, c}, got %v", ancestors.Slice())
	}

	descendants, err := hierarchy.DescendantIDs(context.Background(), a, companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descendants) != 2 || descendants.Has(a) {
		t.Errorf("expected descendants {b, c}, got %v", descendants.Slice())
	}
}

func TestArticleHierarchy_RepositoryError(t *testing.T) {
	hierarchy := NewArticleHierarchy(&fakeArticleRepo{err: errStoreDown})

	_, err := hierarchy.DescendantIDs(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, errStoreDown) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
