// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(value string) *time.Time {
	t := day(value)
	return &t
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func amount(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

type fakeArticleRepo struct {
	articles []*entity.Article
	err      error
}

func (r *fakeArticleRepo) FindByIDs(_ context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]*entity.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	wanted := IDSet{}
	wanted.Add(ids...)

	var result []*entity.Article
	for _, article := range r.articles {
		if article.CompanyID == companyID && wanted.Has(article.ID) {
			result = append(result, article)
		}
	}
	return result, nil
}

func (r *fakeArticleRepo) FindTreeNodes(_ context.Context, companyID uuid.UUID) ([]entity.ArticleTreeNode, error) {
	if r.err != nil {
		return nil, r.err
	}
	var nodes []entity.ArticleTreeNode
	for _, article := range r.articles {
		if article.CompanyID == companyID {
			nodes = append(nodes, entity.ArticleTreeNode{ID: article.ID, ParentID: article.ParentID})
		}
	}
	return nodes, nil
}

type fakePlanItemRepo struct {
	items []*entity.PlanItem
	calls int
}

func (r *fakePlanItemRepo) FindActive(_ context.Context, filter adapter.PlanItemFilter) ([]*entity.PlanItem, error) {
	r.calls++

	scope := IDSet{}
	scope.Add(filter.ArticleIDs...)

	var result []*entity.PlanItem
	for _, item := range r.items {
		if item.CompanyID != filter.CompanyID || !item.IsActive() {
			continue
		}
		if filter.BudgetID != nil && (item.BudgetID == nil || *item.BudgetID != *filter.BudgetID) {
			continue
		}
		if len(filter.ArticleIDs) > 0 && (item.ArticleID == nil || !scope.Has(*item.ArticleID)) {
			continue
		}
		if item.StartDate.After(filter.PeriodTo) {
			continue
		}
		if item.EndDate != nil && item.EndDate.Before(filter.PeriodFrom) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

type fakeOperationRepo struct {
	operations []*entity.Operation
	calls      int
}

func (r *fakeOperationRepo) FindConfirmed(_ context.Context, filter adapter.OperationFilter) ([]*entity.Operation, error) {
	r.calls++

	scope := IDSet{}
	scope.Add(filter.ArticleIDs...)

	var result []*entity.Operation
	for _, op := range r.operations {
		if op.CompanyID != filter.CompanyID || !op.IsReportVisible() {
			continue
		}
		if op.OperationDate.Before(filter.From) || op.OperationDate.After(filter.To) {
			continue
		}
		if len(filter.ArticleIDs) > 0 && (op.ArticleID == nil || !scope.Has(*op.ArticleID)) {
			continue
		}
		result = append(result, op)
	}
	return result, nil
}

type fakeBudgetRepo struct {
	budgets []*entity.Budget
}

func (r *fakeBudgetRepo) FindByID(_ context.Context, companyID, budgetID uuid.UUID) (*entity.Budget, error) {
	for _, budget := range r.budgets {
		if budget.ID == budgetID && budget.CompanyID == companyID {
			return budget, nil
		}
	}
	return nil, nil
}

type fakeCatalogRepo struct {
	departments []entity.CatalogEntry
	deals       []entity.CatalogEntry
}

func (r *fakeCatalogRepo) FindDepartmentsByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]entity.CatalogEntry, error) {
	return pickEntries(r.departments, ids), nil
}

func (r *fakeCatalogRepo) FindDealsByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]entity.CatalogEntry, error) {
	return pickEntries(r.deals, ids), nil
}

func pickEntries(entries []entity.CatalogEntry, ids []uuid.UUID) []entity.CatalogEntry {
	wanted := IDSet{}
	wanted.Add(ids...)

	var result []entity.CatalogEntry
	for _, entry := range entries {
		if wanted.Has(entry.ID) {
			result = append(result, entry)
		}
	}
	return result
}

// memoryCache stores JSON payloads in a map, the way the Redis cache stores them.
type memoryCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	err     error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *memoryCache) Key(companyID uuid.UUID, reportType adapter.ReportType, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{companyID.String(), string(reportType)}
	for _, name := range names {
		parts = append(parts, name+"="+params[name])
	}
	return strings.Join(parts, ":")
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) bool {
	data, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *memoryCache) Set(_ context.Context, key string, payload any, ttl time.Duration) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.entries[key] = data
	c.ttls[key] = ttl
}

func (c *memoryCache) Invalidate(_ context.Context, companyID uuid.UUID) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	var deleted int64
	for key := range c.entries {
		if strings.HasPrefix(key, companyID.String()+":") {
			delete(c.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var errStoreDown = errors.New("store unavailable")
