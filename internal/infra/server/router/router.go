// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bookkeeping/backend/internal/integration/entrypoint/controller"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	reportController      *controller.ReportController
	cacheClearRateLimiter *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	reportController *controller.ReportController,
	cacheClearRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		reportController:      reportController,
		cacheClearRateLimiter: cacheClearRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Report routes (require authentication)
		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/cashflow", r.reportController.GetCashflow)
				reports.GET("/bdds", r.reportController.GetBdds)
				reports.GET("/planfact", r.reportController.GetPlanFact)

				clearHandlers := []gin.HandlerFunc{r.reportController.ClearCache}
				if r.cacheClearRateLimiter != nil {
					clearHandlers = append([]gin.HandlerFunc{r.cacheClearRateLimiter.Middleware()}, clearHandlers...)
				}
				reports.POST("/cache/clear", clearHandlers...)
			}
		}
	}
}
