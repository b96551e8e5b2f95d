// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/application/usecase/report"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

// MonthlyAmountResponse represents the amount of one month column.
type MonthlyAmountResponse struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// ArticleRowResponse represents one article row of a report tree.
type ArticleRowResponse struct {
	ArticleID     string                  `json:"articleId"`
	Name          string                  `json:"name"`
	ParentID      *string                 `json:"parentId,omitempty"`
	Type          string                  `json:"type"`
	Activity      string                  `json:"activity"`
	Months        []MonthlyAmountResponse `json:"months"`
	Total         float64                 `json:"total"`
	HasOperations bool                    `json:"hasOperations"`
	Children      []ArticleRowResponse    `json:"children,omitempty"`
}

// ActivityGroupResponse represents the income and expense rows of one activity.
type ActivityGroupResponse struct {
	Activity      string               `json:"activity"`
	IncomeGroups  []ArticleRowResponse `json:"incomeGroups"`
	ExpenseGroups []ArticleRowResponse `json:"expenseGroups"`
	TotalIncome   float64              `json:"totalIncome"`
	TotalExpense  float64              `json:"totalExpense"`
	NetCashflow   float64              `json:"netCashflow"`
}

// CashflowResponse represents the response for the cash-flow statement API.
type CashflowResponse struct {
	PeriodFrom string                  `json:"periodFrom"`
	PeriodTo   string                  `json:"periodTo"`
	Months     []string                `json:"months"`
	Activities []ActivityGroupResponse `json:"activities"`
}

// PlanFactRowResponse represents one row of the plan-vs-fact report.
type PlanFactRowResponse struct {
	Month string  `json:"month"`
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Plan  float64 `json:"plan"`
	Fact  float64 `json:"fact"`
	Delta float64 `json:"delta"`
}

// ClearCacheResponse represents the response for the cache clear API.
type ClearCacheResponse struct {
	Cleared int64 `json:"cleared"`
}

// ToCashflowResponse converts a CashflowReport to CashflowResponse DTO.
func ToCashflowResponse(output *report.CashflowReport) CashflowResponse {
	months := output.Months
	if months == nil {
		months = []string{}
	}
	return CashflowResponse{
		PeriodFrom: output.PeriodFrom.Format(dateLayout),
		PeriodTo:   output.PeriodTo.Format(dateLayout),
		Months:     months,
		Activities: ToActivityGroupResponses(output.Activities),
	}
}

// ToActivityGroupResponses converts activity groups to their DTOs.
func ToActivityGroupResponses(groups []report.ActivityGroup) []ActivityGroupResponse {
	response := make([]ActivityGroupResponse, len(groups))
	for i, group := range groups {
		response[i] = ActivityGroupResponse{
			Activity:      string(group.Activity),
			IncomeGroups:  toArticleRowResponses(group.IncomeGroups),
			ExpenseGroups: toArticleRowResponses(group.ExpenseGroups),
			TotalIncome:   toFloat(group.TotalIncome),
			TotalExpense:  toFloat(group.TotalExpense),
			NetCashflow:   toFloat(group.NetCashflow),
		}
	}
	return response
}

// ToPlanFactResponse converts plan-fact rows to their DTOs.
func ToPlanFactResponse(rows []report.PlanFactRow) []PlanFactRowResponse {
	response := make([]PlanFactRowResponse, len(rows))
	for i, row := range rows {
		response[i] = PlanFactRowResponse{
			Month: row.Month,
			Key:   row.Key.String(),
			Name:  row.Name,
			Plan:  toFloat(row.Plan),
			Fact:  toFloat(row.Fact),
			Delta: toFloat(row.Delta),
		}
	}
	return response
}

func toArticleRowResponses(rows []*report.ArticleRow) []ArticleRowResponse {
	response := make([]ArticleRowResponse, 0, len(rows))
	for _, row := range rows {
		item := ArticleRowResponse{
			ArticleID:     row.ArticleID.String(),
			Name:          row.Name,
			Type:          string(row.Type),
			Activity:      string(row.Activity),
			Months:        toMonthlyAmountResponses(row.Months),
			Total:         toFloat(row.Total),
			HasOperations: row.HasOperations,
		}
		if row.ParentID != nil {
			parentID := row.ParentID.String()
			item.ParentID = &parentID
		}
		if len(row.Children) > 0 {
			item.Children = toArticleRowResponses(row.Children)
		}
		response = append(response, item)
	}
	return response
}

func toMonthlyAmountResponses(months []valueobject.MonthlyAmount) []MonthlyAmountResponse {
	response := make([]MonthlyAmountResponse, len(months))
	for i, month := range months {
		response[i] = MonthlyAmountResponse{
			Month:  month.Month,
			Amount: toFloat(month.Amount),
		}
	}
	return response
}

func toFloat(value decimal.Decimal) float64 {
	f, _ := value.Float64()
	return f
}
