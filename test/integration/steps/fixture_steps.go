// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
)

// registerFixtureSteps registers data seeding steps.
func registerFixtureSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the following articles exist:$`, theFollowingArticlesExist)
	ctx.Step(`^the following operations exist:$`, theFollowingOperationsExist)
	ctx.Step(`^the following plan items exist:$`, theFollowingPlanItemsExist)
	ctx.Step(`^a budget "([^"]*)" exists$`, aBudgetExists)
	ctx.Step(`^a budget "([^"]*)" exists for another company$`, aBudgetExistsForAnotherCompany)
	ctx.Step(`^a deal "([^"]*)" exists$`, aDealExists)
	ctx.Step(`^a department "([^"]*)" exists$`, aDepartmentExists)
}

// tableRows maps every data row of a table to its header names.
func tableRows(table *godog.Table) []map[string]string {
	if len(table.Rows) == 0 {
		return nil
	}

	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// lookup resolves an optional name column against the seeded ids.
func lookup(ids map[string]uuid.UUID, kind, name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	id, ok := ids[name]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", kind, name)
	}
	return &id, nil
}

func theFollowingArticlesExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	// Assign ids first so parents may be listed after their children.
	rows := tableRows(table)
	for _, row := range rows {
		tc.articles[row["name"]] = uuid.New()
	}

	for _, row := range rows {
		parentID, err := lookup(tc.articles, "article", row["parent"])
		if err != nil {
			return err
		}

		article := &entity.Article{
			ID:        tc.articles[row["name"]],
			CompanyID: tc.companyID,
			Name:      row["name"],
			ParentID:  parentID,
			Type:      entity.ArticleType(row["type"]),
			Activity:  entity.Activity(row["activity"]),
			IsActive:  true,
		}
		if err := tc.db.DbConn.Create(model.ArticleFromEntity(article)).Error; err != nil {
			return fmt.Errorf("failed to seed article %s: %w", row["name"], err)
		}
	}
	return nil
}

func theFollowingOperationsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	for _, row := range tableRows(table) {
		articleID, err := lookup(tc.articles, "article", row["article"])
		if err != nil {
			return err
		}
		dealID, err := lookup(tc.deals, "deal", row["deal"])
		if err != nil {
			return err
		}
		departmentID, err := lookup(tc.departments, "department", row["department"])
		if err != nil {
			return err
		}
		date, err := parseDate(row["date"])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}

		confirmed := true
		if value, ok := row["confirmed"]; ok && value != "" {
			if confirmed, err = strconv.ParseBool(value); err != nil {
				return fmt.Errorf("invalid confirmed flag %q: %w", value, err)
			}
		}

		operation := &entity.Operation{
			ID:            uuid.New(),
			CompanyID:     tc.companyID,
			Type:          entity.OperationType(row["type"]),
			OperationDate: date,
			Amount:        amount,
			ArticleID:     articleID,
			DealID:        dealID,
			DepartmentID:  departmentID,
			IsConfirmed:   confirmed,
		}
		if err := tc.db.DbConn.Create(model.OperationFromEntity(operation)).Error; err != nil {
			return fmt.Errorf("failed to seed operation: %w", err)
		}
	}
	return nil
}

func theFollowingPlanItemsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	for _, row := range tableRows(table) {
		articleID, err := lookup(tc.articles, "article", row["article"])
		if err != nil {
			return err
		}
		budgetID, err := lookup(tc.budgets, "budget", row["budget"])
		if err != nil {
			return err
		}
		dealID, err := lookup(tc.deals, "deal", row["deal"])
		if err != nil {
			return err
		}
		start, err := parseDate(row["start"])
		if err != nil {
			return err
		}
		var end *time.Time
		if row["end"] != "" {
			parsed, err := parseDate(row["end"])
			if err != nil {
				return err
			}
			end = &parsed
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}

		status := entity.PlanItemStatusActive
		if row["status"] != "" {
			status = entity.PlanItemStatus(row["status"])
		}

		item := &entity.PlanItem{
			ID:        uuid.New(),
			CompanyID: tc.companyID,
			Type:      entity.ArticleType(row["type"]),
			StartDate: start,
			EndDate:   end,
			Amount:    amount,
			Repeat:    entity.RepeatType(row["repeat"]),
			Status:    status,
			ArticleID: articleID,
			DealID:    dealID,
			BudgetID:  budgetID,
		}
		if err := tc.db.DbConn.Create(model.PlanItemFromEntity(item)).Error; err != nil {
			return fmt.Errorf("failed to seed plan item: %w", err)
		}
	}
	return nil
}

func seedBudget(tc *TestContext, name string, companyID uuid.UUID) error {
	budget := &entity.Budget{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Status:    entity.BudgetStatusActive,
	}
	if err := tc.db.DbConn.Create(model.BudgetFromEntity(budget)).Error; err != nil {
		return fmt.Errorf("failed to seed budget %s: %w", name, err)
	}
	tc.budgets[name] = budget.ID
	return nil
}

func aBudgetExists(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return seedBudget(tc, name, tc.companyID)
}

func aBudgetExistsForAnotherCompany(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return seedBudget(tc, name, uuid.New())
}

func aDealExists(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	deal := &model.DealModel{ID: uuid.New(), CompanyID: tc.companyID, Name: name}
	if err := tc.db.DbConn.Create(deal).Error; err != nil {
		return fmt.Errorf("failed to seed deal %s: %w", name, err)
	}
	tc.deals[name] = deal.ID
	return nil
}

func aDepartmentExists(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	department := &model.DepartmentModel{ID: uuid.New(), CompanyID: tc.companyID, Name: name}
	if err := tc.db.DbConn.Create(department).Error; err != nil {
		return fmt.Errorf("failed to seed department %s: %w", name, err)
	}
	tc.departments[name] = department.ID
	return nil
}
