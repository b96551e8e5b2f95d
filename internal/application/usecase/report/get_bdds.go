// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

// GetBddsInput represents the input for the budget-vs-activity statement.
type GetBddsInput struct {
	CompanyID       uuid.UUID
	PeriodFrom      time.Time
	PeriodTo        time.Time
	BudgetID        *uuid.UUID
	ParentArticleID *uuid.UUID
}

func (in GetBddsInput) cacheParams() keyParams {
	return keyParams{}.
		date("periodFrom", in.PeriodFrom).
		date("periodTo", in.PeriodTo).
		id("budgetId", in.BudgetID).
		id("parentArticleId", in.ParentArticleID)
}

// GetBddsUseCase rolls the plan items of one budget up into activity groups.
type GetBddsUseCase struct {
	planItemRepo adapter.PlanItemRepository
	articleRepo  adapter.ArticleRepository
	budgetRepo   adapter.BudgetRepository
	hierarchy    *ArticleHierarchy
	cache        adapter.ReportCache
	ttl          CacheTTL
}

// NewGetBddsUseCase creates a new GetBddsUseCase instance.
func NewGetBddsUseCase(
	planItemRepo adapter.PlanItemRepository,
	articleRepo adapter.ArticleRepository,
	budgetRepo adapter.BudgetRepository,
	hierarchy *ArticleHierarchy,
	cache adapter.ReportCache,
	ttl CacheTTL,
) *GetBddsUseCase {
	return &GetBddsUseCase{
		planItemRepo: planItemRepo,
		articleRepo:  articleRepo,
		budgetRepo:   budgetRepo,
		hierarchy:    hierarchy,
		cache:        cache,
		ttl:          ttl,
	}
}

// Execute returns the budget statement. Without a budget the report is empty.
func (uc *GetBddsUseCase) Execute(ctx context.Context, input GetBddsInput) ([]ActivityGroup, error) {
	if input.BudgetID == nil {
		return []ActivityGroup{}, nil
	}

	key := uc.cache.Key(input.CompanyID, adapter.ReportTypeBdds, input.cacheParams())
	return cacheThrough(ctx, uc.cache, key, uc.ttl.Default, func(ctx context.Context) ([]ActivityGroup, error) {
		return uc.compute(ctx, input)
	})
}

func (uc *GetBddsUseCase) compute(ctx context.Context, input GetBddsInput) ([]ActivityGroup, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.CompanyID, *input.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	if budget == nil {
		return []ActivityGroup{}, nil
	}

	filter := adapter.PlanItemFilter{
		CompanyID:  input.CompanyID,
		PeriodFrom: input.PeriodFrom,
		PeriodTo:   input.PeriodTo,
		BudgetID:   &budget.ID,
	}
	if input.ParentArticleID != nil {
		descendants, err := uc.hierarchy.DescendantIDs(ctx, *input.ParentArticleID, input.CompanyID)
		if err != nil {
			return nil, err
		}
		filter.ArticleIDs = append([]uuid.UUID{*input.ParentArticleID}, descendants.Slice()...)
	}

	items, err := uc.planItemRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan items: %w", err)
	}

	months := valueobject.MonthRange(input.PeriodFrom, input.PeriodTo)
	inPeriod := make(map[string]bool, len(months))
	for _, month := range months {
		inPeriod[month] = true
	}

	// With a parent article every item collapses into the parent's row.
	buckets := make(map[uuid.UUID]valueobject.MonthBuckets)
	for _, item := range items {
		if !item.IsActive() {
			continue
		}

		var key uuid.UUID
		switch {
		case input.ParentArticleID != nil:
			key = *input.ParentArticleID
		case item.ArticleID != nil:
			key = *item.ArticleID
		default:
			continue
		}

		for _, occurrence := range ExpandSchedule(ScheduleOf(item), input.PeriodFrom, input.PeriodTo) {
			if !inPeriod[occurrence.Month] {
				continue
			}
			if buckets[key] == nil {
				buckets[key] = valueobject.MonthBuckets{}
			}
			buckets[key].Add(occurrence.Month, occurrence.Amount)
		}
	}

	if len(buckets) == 0 {
		return []ActivityGroup{}, nil
	}

	ids := make([]uuid.UUID, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	articles, err := uc.articleRepo.FindByIDs(ctx, input.CompanyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}

	rows := make([]*ArticleRow, 0, len(articles))
	for _, article := range articles {
		amounts := buckets[article.ID]
		rows = append(rows, &ArticleRow{
			ArticleID:     article.ID,
			Name:          article.Name,
			ParentID:      article.ParentID,
			Type:          article.Type,
			Activity:      article.Activity,
			Months:        amounts.Series(months),
			Total:         amounts.Total(),
			HasOperations: true,
		})
	}
	sortRows(rows)

	return groupByActivity(rows), nil
}
