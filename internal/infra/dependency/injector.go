// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/bookkeeping/backend/config"
	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/application/usecase/report"
	infracache "github.com/bookkeeping/backend/internal/infra/cache"
	infradb "github.com/bookkeeping/backend/internal/infra/db"
	"github.com/bookkeeping/backend/internal/infra/server/router"
	"github.com/bookkeeping/backend/internal/integration/adapters"
	reportcache "github.com/bookkeeping/backend/internal/integration/cache"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/controller"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/middleware"
	"github.com/bookkeeping/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config                *config.Config
	DB                    *gorm.DB
	Cache                 adapter.ReportCache
	Router                *router.Router
	CacheClearRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redis connection, or a disabled report cache, leaves reports uncached.
func NewInjector(cfg *config.Config, db *gorm.DB, redisConn *infracache.Redis, clock adapter.Clock) *Injector {
	// Create repositories
	articleRepo := persistence.NewArticleRepository(db)
	planItemRepo := persistence.NewPlanItemRepository(db)
	operationRepo := persistence.NewOperationRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	catalogRepo := persistence.NewCatalogRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	cache := reportcache.NewNoopReportCache()
	var cacheHealthChecker func() bool
	if cfg.Report.CacheEnabled && redisConn != nil {
		cache = reportcache.NewReportCache(redisConn.Client(), cfg.Report.CacheKeyPrefix, cfg.Report.ScanCount)
		cacheHealthChecker = redisConn.HealthCheck
	}

	// Create report use cases
	ttl := report.CacheTTL{
		Default:    cfg.Report.CacheTTL,
		Historical: cfg.Report.HistoricalCacheTTL,
	}
	hierarchy := report.NewArticleHierarchy(articleRepo)
	getCashflowUseCase := report.NewGetCashflowUseCase(operationRepo, articleRepo, hierarchy, cache, ttl)
	getBddsUseCase := report.NewGetBddsUseCase(planItemRepo, articleRepo, budgetRepo, hierarchy, cache, ttl)
	getPlanFactUseCase := report.NewGetPlanFactUseCase(planItemRepo, operationRepo, articleRepo, catalogRepo, cache, clock, ttl)
	clearReportCacheUseCase := report.NewClearReportCacheUseCase(cache)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		return infradb.Ping(db)
	}, cacheHealthChecker)

	reportController := controller.NewReportController(
		getCashflowUseCase,
		getBddsUseCase,
		getPlanFactUseCase,
		clearReportCacheUseCase,
		clock,
	)

	// Create middleware
	cacheClearRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.RateLimit.CacheClearRequests,
		cfg.RateLimit.CacheClearWindow,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, reportController, cacheClearRateLimiter, authMiddleware)

	return &Injector{
		Config:                cfg,
		DB:                    db,
		Cache:                 cache,
		Router:                r,
		CacheClearRateLimiter: cacheClearRateLimiter,
	}
}
