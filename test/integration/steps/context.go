// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookkeeping/backend/config"
	infracache "github.com/bookkeeping/backend/internal/infra/cache"
	"github.com/bookkeeping/backend/internal/infra/dependency"
	"github.com/bookkeeping/backend/internal/integration/persistence/model"
	"github.com/bookkeeping/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	companyID   uuid.UUID

	// Infrastructure
	cfg   *config.Config
	db    *mock.Db
	redis *redis.Client
	clock *mock.Time

	// Seeded records, by name
	articles    map[string]uuid.UUID
	budgets     map[string]uuid.UUID
	deals       map[string]uuid.UUID
	departments map[string]uuid.UUID
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func reportModels() map[string]any {
	return map[string]any{
		"articles":    &model.ArticleModel{},
		"plan_items":  &model.PlanItemModel{},
		"operations":  &model.OperationModel{},
		"budgets":     &model.BudgetModel{},
		"departments": &model.DepartmentModel{},
		"deals":       &model.DealModel{},
	}
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		// Set Gin to test mode
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret
		cfg.Report.CacheEnabled = true
		cfg.Report.CacheKeyPrefix = "report"
		cfg.RateLimit.CacheClearRequests = 3

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            cfg,
			db:             mock.NewDb(reportModels()),
			redis:          mock.NewRedis(),
			clock:          mock.NewTime(),
			articles:       make(map[string]uuid.UUID),
			budgets:        make(map[string]uuid.UUID),
			deals:          make(map[string]uuid.UUID),
			departments:    make(map[string]uuid.UUID),
		}

		if err := tc.db.ClearDB(); err != nil {
			return ctx, fmt.Errorf("failed to clear database: %w", err)
		}
		if err := mock.ClearRedis(tc.redis); err != nil {
			return ctx, fmt.Errorf("failed to clear redis: %w", err)
		}

		injector := dependency.NewInjector(cfg, tc.db.DbConn, infracache.NewRedis(tc.redis), tc.clock)
		tc.server = httptest.NewServer(injector.Router.Setup("test"))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	// Register step definitions
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerFixtureSteps(ctx)
	registerCacheSteps(ctx)
}
