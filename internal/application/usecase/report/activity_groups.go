// Package report contains the financial report aggregation use cases.
package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

// ArticleRow is one article of a report, with its monthly amounts and, for tree reports, its children.
type ArticleRow struct {
	ArticleID     uuid.UUID                   `json:"articleId"`
	Name          string                      `json:"name"`
	ParentID      *uuid.UUID                  `json:"parentId,omitempty"`
	Type          entity.ArticleType          `json:"type"`
	Activity      entity.Activity             `json:"activity"`
	Months        []valueobject.MonthlyAmount `json:"months"`
	Total         decimal.Decimal             `json:"total"`
	HasOperations bool                        `json:"hasOperations"`
	Children      []*ArticleRow               `json:"children,omitempty"`
}

// ActivityGroup gathers the root rows of one activity, split by direction.
type ActivityGroup struct {
	Activity      entity.Activity `json:"activity"`
	IncomeGroups  []*ArticleRow   `json:"incomeGroups"`
	ExpenseGroups []*ArticleRow   `json:"expenseGroups"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpense  decimal.Decimal `json:"totalExpense"`
	NetCashflow   decimal.Decimal `json:"netCashflow"`
}

// groupByActivity groups root rows by activity in report order. Activities without rows are omitted.
func groupByActivity(roots []*ArticleRow) []ActivityGroup {
	groups := make([]ActivityGroup, 0, len(entity.Activities))
	for _, activity := range entity.Activities {
		group := ActivityGroup{
			Activity:      activity,
			IncomeGroups:  []*ArticleRow{},
			ExpenseGroups: []*ArticleRow{},
			TotalIncome:   decimal.Zero,
			TotalExpense:  decimal.Zero,
		}

		found := false
		for _, row := range roots {
			if row.Activity != activity {
				continue
			}
			found = true
			if row.Type == entity.ArticleTypeIncome {
				group.IncomeGroups = append(group.IncomeGroups, row)
				group.TotalIncome = group.TotalIncome.Add(row.Total)
			} else {
				group.ExpenseGroups = append(group.ExpenseGroups, row)
				group.TotalExpense = group.TotalExpense.Add(row.Total)
			}
		}
		if !found {
			continue
		}

		group.NetCashflow = group.TotalIncome.Sub(group.TotalExpense)
		groups = append(groups, group)
	}
	return groups
}

// sortRows orders rows by name, recursively. Ties fall back to the id for a stable output.
func sortRows(rows []*ArticleRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ArticleID.String() < rows[j].ArticleID.String()
	})
	for _, row := range rows {
		sortRows(row.Children)
	}
}

// roundGroups applies the rounding unit to every amount and total of the groups.
func roundGroups(groups []ActivityGroup, rounding valueobject.Rounding) {
	for i := range groups {
		group := &groups[i]
		roundRows(group.IncomeGroups, rounding)
		roundRows(group.ExpenseGroups, rounding)
		group.TotalIncome = rounding.Apply(group.TotalIncome)
		group.TotalExpense = rounding.Apply(group.TotalExpense)
		group.NetCashflow = rounding.Apply(group.NetCashflow)
	}
}

func roundRows(rows []*ArticleRow, rounding valueobject.Rounding) {
	for _, row := range rows {
		for i := range row.Months {
			row.Months[i].Amount = rounding.Apply(row.Months[i].Amount)
		}
		row.Total = rounding.Apply(row.Total)
		roundRows(row.Children, rounding)
	}
}
