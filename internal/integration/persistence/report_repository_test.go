// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&model.ArticleModel{},
		&model.PlanItemModel{},
		&model.OperationModel{},
		&model.BudgetModel{},
		&model.DepartmentModel{},
		&model.DealModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}

func TestArticleRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	root := &entity.Article{ID: uuid.New(), CompanyID: companyID, Name: "Revenue", Type: entity.ArticleTypeIncome, Activity: entity.ActivityOperating, IsActive: true}
	child := &entity.Article{ID: uuid.New(), CompanyID: companyID, Name: "Retail", ParentID: ptr(root.ID), Type: entity.ArticleTypeIncome, Activity: entity.ActivityOperating, IsActive: true}
	foreign := &entity.Article{ID: uuid.New(), CompanyID: uuid.New(), Name: "Foreign", Type: entity.ArticleTypeExpense, Activity: entity.ActivityFinancing, IsActive: true}
	for _, article := range []*entity.Article{root, child, foreign} {
		if err := db.Create(model.ArticleFromEntity(article)).Error; err != nil {
			t.Fatalf("failed to seed article: %v", err)
		}
	}

	articles, err := repo.FindByIDs(ctx, companyID, []uuid.UUID{root.ID, child.ID, foreign.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles of the company, got %d", len(articles))
	}
	// Ordered by name: Retail, Revenue.
	if articles[0].ParentID == nil || *articles[0].ParentID != root.ID {
		t.Errorf("expected Retail to keep its parent")
	}
	if articles[1].ParentID != nil {
		t.Errorf("expected Revenue to be a root")
	}
	if articles[0].Activity != entity.ActivityOperating || articles[0].Type != entity.ArticleTypeIncome {
		t.Errorf("unexpected classification: %s/%s", articles[0].Activity, articles[0].Type)
	}

	empty, err := repo.FindByIDs(ctx, companyID, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no articles for no ids, got %d (%v)", len(empty), err)
	}

	nodes, err := repo.FindTreeNodes(ctx, companyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 tree nodes, got %d", len(nodes))
	}
}

func TestPlanItemRepository_FindActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewPlanItemRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	budgetID := uuid.New()
	articleID := uuid.New()

	item := func(start string, end *time.Time, status entity.PlanItemStatus, budget *uuid.UUID) *entity.PlanItem {
		return &entity.PlanItem{
			ID:        uuid.New(),
			CompanyID: companyID,
			Type:      entity.ArticleTypeExpense,
			StartDate: date(start),
			EndDate:   end,
			Amount:    decimal.NewFromInt(100),
			Repeat:    entity.RepeatMonthly,
			Status:    status,
			ArticleID: ptr(articleID),
			BudgetID:  budget,
		}
	}
	inBudget := item("2024-01-01", nil, entity.PlanItemStatusActive, ptr(budgetID))
	ended := item("2023-01-01", ptr(date("2023-06-30")), entity.PlanItemStatusActive, ptr(budgetID))
	paused := item("2024-01-01", nil, entity.PlanItemStatusPaused, ptr(budgetID))
	noBudget := item("2024-02-01", ptr(date("2024-12-31")), entity.PlanItemStatusActive, nil)
	future := item("2025-01-01", nil, entity.PlanItemStatusActive, ptr(budgetID))
	for _, it := range []*entity.PlanItem{inBudget, ended, paused, noBudget, future} {
		if err := db.Create(model.PlanItemFromEntity(it)).Error; err != nil {
			t.Fatalf("failed to seed plan item: %v", err)
		}
	}

	filter := adapter.PlanItemFilter{
		CompanyID:  companyID,
		PeriodFrom: date("2024-01-01"),
		PeriodTo:   date("2024-12-31"),
	}

	items, err := repo.FindActive(ctx, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected the two overlapping active items, got %d", len(items))
	}

	filter.BudgetID = ptr(budgetID)
	items, err = repo.FindActive(ctx, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != inBudget.ID {
		t.Fatalf("expected only the budget item, got %d", len(items))
	}
	if !items[0].Amount.Equal(decimal.NewFromInt(100)) || items[0].Repeat != entity.RepeatMonthly {
		t.Errorf("unexpected item: %s %s", items[0].Amount, items[0].Repeat)
	}

	filter.ArticleIDs = []uuid.UUID{uuid.New()}
	items, err = repo.FindActive(ctx, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items outside the article scope, got %d", len(items))
	}
}

func TestOperationRepository_FindConfirmed(t *testing.T) {
	db := openTestDB(t)
	repo := NewOperationRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	articleID := uuid.New()

	op := func(opType entity.OperationType, on string, confirmed, template bool) *entity.Operation {
		return &entity.Operation{
			ID:            uuid.New(),
			CompanyID:     companyID,
			Type:          opType,
			OperationDate: date(on),
			Amount:        decimal.NewFromInt(50),
			ArticleID:     ptr(articleID),
			IsConfirmed:   confirmed,
			IsTemplate:    template,
		}
	}
	visible := op(entity.OperationTypeIncome, "2024-01-15", true, false)
	lastDay := op(entity.OperationTypeExpense, "2024-01-31", true, false)
	for _, o := range []*entity.Operation{
		visible,
		lastDay,
		op(entity.OperationTypeTransfer, "2024-01-16", true, false),
		op(entity.OperationTypeIncome, "2024-01-17", false, false),
		op(entity.OperationTypeIncome, "2024-01-18", true, true),
		op(entity.OperationTypeIncome, "2024-02-01", true, false),
	} {
		if err := db.Create(model.OperationFromEntity(o)).Error; err != nil {
			t.Fatalf("failed to seed operation: %v", err)
		}
	}

	operations, err := repo.FindConfirmed(ctx, adapter.OperationFilter{
		CompanyID: companyID,
		From:      date("2024-01-01"),
		To:        date("2024-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(operations) != 2 {
		t.Fatalf("expected 2 visible operations, got %d", len(operations))
	}
	if operations[0].ID != visible.ID || operations[1].ID != lastDay.ID {
		t.Errorf("operations not ordered by date")
	}
}

func TestBudgetAndCatalogRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	companyID := uuid.New()
	budget := &entity.Budget{ID: uuid.New(), CompanyID: companyID, Name: "2024", Status: entity.BudgetStatusActive}
	if err := db.Create(model.BudgetFromEntity(budget)).Error; err != nil {
		t.Fatalf("failed to seed budget: %v", err)
	}
	department := model.DepartmentModel{ID: uuid.New(), CompanyID: companyID, Name: "Sales team"}
	deal := model.DealModel{ID: uuid.New(), CompanyID: companyID, Name: "Alpha"}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}
	if err := db.Create(&deal).Error; err != nil {
		t.Fatalf("failed to seed deal: %v", err)
	}

	budgets := NewBudgetRepository(db)
	found, err := budgets.FindByID(ctx, companyID, budget.ID)
	if err != nil || found == nil || found.Name != "2024" {
		t.Fatalf("expected the budget, got %v (%v)", found, err)
	}
	foreign, err := budgets.FindByID(ctx, uuid.New(), budget.ID)
	if err != nil || foreign != nil {
		t.Errorf("expected no budget for another company, got %v (%v)", foreign, err)
	}

	catalog := NewCatalogRepository(db)
	departments, err := catalog.FindDepartmentsByIDs(ctx, companyID, []uuid.UUID{department.ID})
	if err != nil || len(departments) != 1 || departments[0].Name != "Sales team" {
		t.Errorf("unexpected departments: %v (%v)", departments, err)
	}
	deals, err := catalog.FindDealsByIDs(ctx, companyID, []uuid.UUID{deal.ID, uuid.New()})
	if err != nil || len(deals) != 1 || deals[0].Name != "Alpha" {
		t.Errorf("unexpected deals: %v (%v)", deals, err)
	}
}
