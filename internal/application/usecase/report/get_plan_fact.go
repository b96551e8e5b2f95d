// Package report contains the financial report aggregation use cases.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

// ReportLevel selects the grouping key of a plan-fact report.
type ReportLevel string

const (
	ReportLevelArticle    ReportLevel = "article"
	ReportLevelDepartment ReportLevel = "department"
	ReportLevelDeal       ReportLevel = "deal"
)

// IsValid checks if the report level is valid.
func (l ReportLevel) IsValid() bool {
	switch l {
	case ReportLevelArticle, ReportLevelDepartment, ReportLevelDeal:
		return true
	}
	return false
}

// GetPlanFactInput represents the input for the plan-vs-fact report.
type GetPlanFactInput struct {
	CompanyID  uuid.UUID
	PeriodFrom time.Time
	PeriodTo   time.Time
	Level      ReportLevel
}

// PlanFactRow compares planned and actual amounts of one key in one month.
type PlanFactRow struct {
	Month string          `json:"month"`
	Key   uuid.UUID       `json:"key"`
	Name  string          `json:"name"`
	Plan  decimal.Decimal `json:"plan"`
	Fact  decimal.Decimal `json:"fact"`
	Delta decimal.Decimal `json:"delta"`
}

// GetPlanFactUseCase reconciles expanded plan items with confirmed operations.
type GetPlanFactUseCase struct {
	planItemRepo  adapter.PlanItemRepository
	operationRepo adapter.OperationRepository
	articleRepo   adapter.ArticleRepository
	catalogRepo   adapter.CatalogRepository
	cache         adapter.ReportCache
	clock         adapter.Clock
	ttl           CacheTTL
}

// NewGetPlanFactUseCase creates a new GetPlanFactUseCase instance.
func NewGetPlanFactUseCase(
	planItemRepo adapter.PlanItemRepository,
	operationRepo adapter.OperationRepository,
	articleRepo adapter.ArticleRepository,
	catalogRepo adapter.CatalogRepository,
	cache adapter.ReportCache,
	clock adapter.Clock,
	ttl CacheTTL,
) *GetPlanFactUseCase {
	return &GetPlanFactUseCase{
		planItemRepo:  planItemRepo,
		operationRepo: operationRepo,
		articleRepo:   articleRepo,
		catalogRepo:   catalogRepo,
		cache:         cache,
		clock:         clock,
		ttl:           ttl,
	}
}

type planFactKey struct {
	month string
	key   uuid.UUID
}

type planFactCell struct {
	plan decimal.Decimal
	fact decimal.Decimal
}

// Execute returns the plan-fact rows sorted by month and then by name.
// Operations dated after min(periodTo, today) never count as fact.
func (uc *GetPlanFactUseCase) Execute(ctx context.Context, input GetPlanFactInput) ([]PlanFactRow, error) {
	todayStart := dateOf(uc.clock.Now().UTC())
	factCutoff := dateOf(input.PeriodTo)
	if todayStart.Before(factCutoff) {
		factCutoff = todayStart
	}

	// A closed period cannot receive new facts, so it is kept longer.
	ttl := uc.ttl.Default
	if factCutoff.Before(todayStart) {
		ttl = uc.ttl.Historical
	}

	params := keyParams{}.
		date("periodFrom", input.PeriodFrom).
		date("periodTo", input.PeriodTo).
		date("factCutoff", factCutoff).
		text("level", string(input.Level))
	key := uc.cache.Key(input.CompanyID, adapter.ReportTypePlanFact, params)

	return cacheThrough(ctx, uc.cache, key, ttl, func(ctx context.Context) ([]PlanFactRow, error) {
		return uc.compute(ctx, input, factCutoff)
	})
}

func (uc *GetPlanFactUseCase) compute(ctx context.Context, input GetPlanFactInput, factCutoff time.Time) ([]PlanFactRow, error) {
	months := valueobject.MonthRange(input.PeriodFrom, input.PeriodTo)
	inPeriod := make(map[string]bool, len(months))
	for _, month := range months {
		inPeriod[month] = true
	}

	cells := make(map[planFactKey]*planFactCell)
	cell := func(month string, key uuid.UUID) *planFactCell {
		k := planFactKey{month: month, key: key}
		if cells[k] == nil {
			cells[k] = &planFactCell{plan: decimal.Zero, fact: decimal.Zero}
		}
		return cells[k]
	}

	// 1. Plan side
	if input.Level != ReportLevelDepartment {
		items, err := uc.planItemRepo.FindActive(ctx, adapter.PlanItemFilter{
			CompanyID:  input.CompanyID,
			PeriodFrom: input.PeriodFrom,
			PeriodTo:   input.PeriodTo,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get plan items: %w", err)
		}

		for _, item := range items {
			if !item.IsActive() {
				continue
			}
			key := planKey(item, input.Level)
			if key == nil {
				continue
			}
			for _, occurrence := range ExpandSchedule(ScheduleOf(item), input.PeriodFrom, input.PeriodTo) {
				if !inPeriod[occurrence.Month] {
					continue
				}
				c := cell(occurrence.Month, *key)
				c.plan = c.plan.Add(occurrence.Amount)
			}
		}
	}

	// 2. Fact side, up to the cutoff
	if !factCutoff.Before(dateOf(input.PeriodFrom)) {
		operations, err := uc.operationRepo.FindConfirmed(ctx, adapter.OperationFilter{
			CompanyID: input.CompanyID,
			From:      input.PeriodFrom,
			To:        factCutoff,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get operations: %w", err)
		}

		for _, op := range operations {
			if !op.IsReportVisible() || dateOf(op.OperationDate).After(factCutoff) {
				continue
			}
			key := factKey(op, input.Level)
			if key == nil {
				continue
			}
			c := cell(valueobject.MonthKey(op.OperationDate), *key)
			c.fact = c.fact.Add(op.Amount)
		}
	}

	if len(cells) == 0 {
		return []PlanFactRow{}, nil
	}

	// 3. Resolve display names
	names, err := uc.resolveNames(ctx, input.CompanyID, input.Level, cells)
	if err != nil {
		return nil, err
	}

	// 4. Merge and sort
	rows := make([]PlanFactRow, 0, len(cells))
	for k, c := range cells {
		name, ok := names[k.key]
		if !ok {
			name = k.key.String()
		}
		rows = append(rows, PlanFactRow{
			Month: k.month,
			Key:   k.key,
			Name:  name,
			Plan:  c.plan,
			Fact:  c.fact,
			Delta: c.fact.Sub(c.plan),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Key.String() < rows[j].Key.String()
	})

	return rows, nil
}

func (uc *GetPlanFactUseCase) resolveNames(
	ctx context.Context,
	companyID uuid.UUID,
	level ReportLevel,
	cells map[planFactKey]*planFactCell,
) (map[uuid.UUID]string, error) {
	set := IDSet{}
	for k := range cells {
		set.Add(k.key)
	}
	ids := set.Slice()

	names := make(map[uuid.UUID]string, len(ids))
	switch level {
	case ReportLevelArticle:
		articles, err := uc.articleRepo.FindByIDs(ctx, companyID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get articles: %w", err)
		}
		for _, article := range articles {
			names[article.ID] = article.Name
		}
	case ReportLevelDepartment, ReportLevelDeal:
		find := uc.catalogRepo.FindDealsByIDs
		if level == ReportLevelDepartment {
			find = uc.catalogRepo.FindDepartmentsByIDs
		}
		entries, err := find(ctx, companyID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s names: %w", level, err)
		}
		for _, entry := range entries {
			names[entry.ID] = entry.Name
		}
	}
	return names, nil
}

// planKey returns the grouping key of a plan item. Plan items are not split by department.
func planKey(item *entity.PlanItem, level ReportLevel) *uuid.UUID {
	switch level {
	case ReportLevelArticle:
		return item.ArticleID
	case ReportLevelDeal:
		return item.DealID
	}
	return nil
}

func factKey(op *entity.Operation, level ReportLevel) *uuid.UUID {
	switch level {
	case ReportLevelArticle:
		return op.ArticleID
	case ReportLevelDepartment:
		return op.DepartmentID
	case ReportLevelDeal:
		return op.DealID
	}
	return nil
}
