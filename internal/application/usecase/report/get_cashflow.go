// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

// GetCashflowInput represents the input for the cash-flow statement.
type GetCashflowInput struct {
	CompanyID       uuid.UUID
	PeriodFrom      time.Time
	PeriodTo        time.Time
	Activity        *entity.Activity
	ParentArticleID *uuid.UUID
	Rounding        valueobject.Rounding
}

func (in GetCashflowInput) cacheParams() keyParams {
	params := keyParams{}.
		date("periodFrom", in.PeriodFrom).
		date("periodTo", in.PeriodTo).
		id("parentArticleId", in.ParentArticleID).
		number("rounding", int64(in.Rounding))
	if in.Activity != nil {
		params.text("activity", string(*in.Activity))
	}
	return params
}

// CashflowReport is the cash-flow statement of a company for a period.
type CashflowReport struct {
	PeriodFrom time.Time       `json:"periodFrom"`
	PeriodTo   time.Time       `json:"periodTo"`
	Months     []string        `json:"months"`
	Activities []ActivityGroup `json:"activities"`
}

// GetCashflowUseCase rolls confirmed operations up into an article tree grouped by activity.
type GetCashflowUseCase struct {
	operationRepo adapter.OperationRepository
	articleRepo   adapter.ArticleRepository
	hierarchy     *ArticleHierarchy
	cache         adapter.ReportCache
	ttl           CacheTTL
}

// NewGetCashflowUseCase creates a new GetCashflowUseCase instance.
func NewGetCashflowUseCase(
	operationRepo adapter.OperationRepository,
	articleRepo adapter.ArticleRepository,
	hierarchy *ArticleHierarchy,
	cache adapter.ReportCache,
	ttl CacheTTL,
) *GetCashflowUseCase {
	return &GetCashflowUseCase{
		operationRepo: operationRepo,
		articleRepo:   articleRepo,
		hierarchy:     hierarchy,
		cache:         cache,
		ttl:           ttl,
	}
}

// Execute returns the cash-flow statement, from cache when possible.
func (uc *GetCashflowUseCase) Execute(ctx context.Context, input GetCashflowInput) (*CashflowReport, error) {
	key := uc.cache.Key(input.CompanyID, adapter.ReportTypeCashflow, input.cacheParams())
	return cacheThrough(ctx, uc.cache, key, uc.ttl.Default, func(ctx context.Context) (*CashflowReport, error) {
		return uc.compute(ctx, input)
	})
}

func (uc *GetCashflowUseCase) compute(ctx context.Context, input GetCashflowInput) (*CashflowReport, error) {
	months := valueobject.MonthRange(input.PeriodFrom, input.PeriodTo)
	report := &CashflowReport{
		PeriodFrom: input.PeriodFrom,
		PeriodTo:   input.PeriodTo,
		Months:     months,
		Activities: []ActivityGroup{},
	}

	// 1. Resolve the article scope
	var scope []uuid.UUID
	if input.ParentArticleID != nil {
		descendants, err := uc.hierarchy.DescendantIDs(ctx, *input.ParentArticleID, input.CompanyID)
		if err != nil {
			return nil, err
		}
		scope = append([]uuid.UUID{*input.ParentArticleID}, descendants.Slice()...)
	}

	// 2. Aggregate operations into per-article monthly buckets
	operations, err := uc.operationRepo.FindConfirmed(ctx, adapter.OperationFilter{
		CompanyID:  input.CompanyID,
		From:       input.PeriodFrom,
		To:         input.PeriodTo,
		ArticleIDs: scope,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get operations: %w", err)
	}

	direct := make(map[uuid.UUID]valueobject.MonthBuckets)
	for _, op := range operations {
		if op.ArticleID == nil || !op.IsReportVisible() {
			continue
		}
		if direct[*op.ArticleID] == nil {
			direct[*op.ArticleID] = valueobject.MonthBuckets{}
		}
		direct[*op.ArticleID].Add(valueobject.MonthKey(op.OperationDate), op.Amount)
	}

	if len(direct) == 0 {
		return report, nil
	}

	// 3. Complete the rendered set with ancestors and descendants
	withOperations := make([]uuid.UUID, 0, len(direct))
	for id := range direct {
		withOperations = append(withOperations, id)
	}
	rendered, err := uc.hierarchy.Closure(ctx, input.CompanyID, withOperations)
	if err != nil {
		return nil, err
	}

	articles, err := uc.articleRepo.FindByIDs(ctx, input.CompanyID, rendered.Slice())
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}

	// 4-6. Build the forest, roll it up and sort siblings
	forest := newArticleForest(articles, direct)
	roots := forest.render(months)

	// 7-8. Filter roots by activity and group them
	if input.Activity != nil {
		roots = filterRootsByActivity(roots, *input.Activity)
	}
	report.Activities = groupByActivity(roots)

	// 9. Round
	roundGroups(report.Activities, input.Rounding)

	return report, nil
}

// filterRootsByActivity drops roots of another activity that carry operations of their own.
// Roots kept only for structure stay in place.
func filterRootsByActivity(roots []*ArticleRow, activity entity.Activity) []*ArticleRow {
	filtered := make([]*ArticleRow, 0, len(roots))
	for _, root := range roots {
		if root.Activity != activity && root.HasOperations {
			continue
		}
		filtered = append(filtered, root)
	}
	return filtered
}
