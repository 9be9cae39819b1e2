// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	expenseController   *controller.ExpenseController
	categoryController  *controller.CategoryController
	budgetController    *controller.BudgetController
	analyticsController *controller.AnalyticsController
	writeRateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	expenseController *controller.ExpenseController,
	categoryController *controller.CategoryController,
	budgetController *controller.BudgetController,
	analyticsController *controller.AnalyticsController,
	writeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:    healthController,
		expenseController:   expenseController,
		categoryController:  categoryController,
		budgetController:    budgetController,
		analyticsController: analyticsController,
		writeRateLimiter:    writeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		r.engine = gin.New()
		r.engine.Use(gin.Recovery())
	case "test":
		gin.SetMode(gin.TestMode)
		r.engine = gin.New()
		r.engine.Use(gin.Recovery())
	default:
		r.engine = gin.Default()
	}

	r.engine.Use(middleware.RequestID())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// writeGuard returns the handlers placed before mutating endpoints.
func (r *Router) writeGuard() []gin.HandlerFunc {
	if r.writeRateLimiter == nil {
		return nil
	}
	return []gin.HandlerFunc{r.writeRateLimiter.Middleware()}
}

func (r *Router) guarded(handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(r.writeGuard(), handler)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.expenseController != nil {
		expenses := v1.Group("/expenses")
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.guarded(r.expenseController.Create)...)
			expenses.GET("/recent", r.expenseController.Recent)
			expenses.GET("/search", r.expenseController.Search)
			expenses.GET("/export", r.expenseController.Export)
			expenses.POST("/import", r.guarded(r.expenseController.Import)...)
			expenses.GET("/:id", r.expenseController.Get)
			expenses.PATCH("/:id", r.guarded(r.expenseController.Update)...)
			expenses.DELETE("/:id", r.guarded(r.expenseController.Delete)...)
		}
	}

	if r.categoryController != nil {
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.guarded(r.categoryController.Create)...)
		}
	}

	if r.budgetController != nil {
		budgets := v1.Group("/budgets")
		{
			budgets.GET("", r.budgetController.List)
			budgets.GET("/status", r.budgetController.Status)
			budgets.PUT("/:category", r.guarded(r.budgetController.Set)...)
			budgets.DELETE("/:category", r.guarded(r.budgetController.Delete)...)
		}
	}

	if r.analyticsController != nil {
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", r.analyticsController.Summary)
			analytics.GET("/breakdown", r.analyticsController.Breakdown)
			analytics.GET("/trends", r.analyticsController.Trends)
			analytics.GET("/prediction", r.analyticsController.Prediction)
			analytics.GET("/insights", r.analyticsController.Insights)
			analytics.GET("/compare", r.analyticsController.Compare)
		}
	}
}
