// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/export"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// UseCases groups every application use case so both the HTTP API and the
// CLI drive the same wiring.
type UseCases struct {
	AddExpense     *expense.AddExpenseUseCase
	UpdateExpense  *expense.UpdateExpenseUseCase
	DeleteExpense  *expense.DeleteExpenseUseCase
	GetExpense     *expense.GetExpenseUseCase
	ListExpenses   *expense.ListExpensesUseCase
	RecentExpenses *expense.GetRecentExpensesUseCase
	SearchExpenses *expense.SearchExpensesUseCase
	ExportExpenses *expense.ExportExpensesUseCase
	ImportExpenses *expense.ImportExpensesUseCase
	SeedSampleData *expense.SeedSampleDataUseCase

	SetBudget    *budget.SetBudgetUseCase
	ListBudgets  *budget.ListBudgetsUseCase
	DeleteBudget *budget.DeleteBudgetUseCase

	ListCategories        *category.ListCategoriesUseCase
	AddCategory           *category.AddCategoryUseCase
	SeedDefaultCategories *category.SeedDefaultCategoriesUseCase

	SpendingSummary   *analytics.GetSpendingSummaryUseCase
	CategoryBreakdown *analytics.GetCategoryBreakdownUseCase
	TrendAnalysis     *analytics.GetTrendAnalysisUseCase
	PredictSpending   *analytics.PredictMonthlySpendingUseCase
	GenerateInsights  *analytics.GenerateInsightsUseCase
	ComparePeriods    *analytics.ComparePeriodsUseCase
	BudgetStatus      *analytics.GetBudgetStatusUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	UseCases *UseCases
	Router   *router.Router
}

// Option customizes the injector.
type Option func(*options)

type options struct {
	clock controller.Clock
}

// WithClock overrides the clock used to default reference dates.
func WithClock(clock controller.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rate limiting stays in memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) *Injector {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	useCases := newUseCases(cfg, db)

	// Create controllers
	var redisHealthChecker func() bool
	if redisClient != nil {
		redisHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}

	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealthChecker)

	expenseController := controller.NewExpenseController(
		useCases.AddExpense,
		useCases.UpdateExpense,
		useCases.DeleteExpense,
		useCases.GetExpense,
		useCases.ListExpenses,
		useCases.RecentExpenses,
		useCases.SearchExpenses,
		useCases.ExportExpenses,
		useCases.ImportExpenses,
		o.clock,
	)

	categoryController := controller.NewCategoryController(
		useCases.ListCategories,
		useCases.AddCategory,
	)

	budgetController := controller.NewBudgetController(
		useCases.SetBudget,
		useCases.ListBudgets,
		useCases.DeleteBudget,
		useCases.BudgetStatus,
		o.clock,
	)

	analyticsController := controller.NewAnalyticsController(
		useCases.SpendingSummary,
		useCases.CategoryBreakdown,
		useCases.TrendAnalysis,
		useCases.PredictSpending,
		useCases.GenerateInsights,
		useCases.ComparePeriods,
		cfg.Analytics.TrendMonths,
		o.clock,
	)

	// Create middleware
	writeRateLimiter := middleware.NewRateLimiterWithConfig(
		redisClient,
		cfg.RateLimit.MaxRequests,
		cfg.RateLimit.Window,
	)

	r := router.NewRouter(
		healthController,
		expenseController,
		categoryController,
		budgetController,
		analyticsController,
		writeRateLimiter,
	)

	return &Injector{
		Config:   cfg,
		DB:       db,
		Redis:    redisClient,
		UseCases: useCases,
		Router:   r,
	}
}

// NewUseCases wires repositories and use cases without any HTTP layer.
func NewUseCases(cfg *config.Config, db *gorm.DB) *UseCases {
	return newUseCases(cfg, db)
}

func newUseCases(cfg *config.Config, db *gorm.DB) *UseCases {
	// Create repositories
	expenseRepo := persistence.NewExpenseRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	ledger := persistence.NewLedgerRepository(db)

	// Create adapters
	codec := export.NewCSVCodec(cfg.Export.Delimiter)

	return &UseCases{
		AddExpense:     expense.NewAddExpenseUseCase(expenseRepo, categoryRepo, budgetRepo),
		UpdateExpense:  expense.NewUpdateExpenseUseCase(expenseRepo, categoryRepo),
		DeleteExpense:  expense.NewDeleteExpenseUseCase(expenseRepo),
		GetExpense:     expense.NewGetExpenseUseCase(expenseRepo),
		ListExpenses:   expense.NewListExpensesUseCase(expenseRepo),
		RecentExpenses: expense.NewGetRecentExpensesUseCase(expenseRepo),
		SearchExpenses: expense.NewSearchExpensesUseCase(expenseRepo),
		ExportExpenses: expense.NewExportExpensesUseCase(expenseRepo, codec),
		ImportExpenses: expense.NewImportExpensesUseCase(expenseRepo, categoryRepo, codec),
		SeedSampleData: expense.NewSeedSampleDataUseCase(expenseRepo, categoryRepo),

		SetBudget:    budget.NewSetBudgetUseCase(budgetRepo, categoryRepo),
		ListBudgets:  budget.NewListBudgetsUseCase(budgetRepo),
		DeleteBudget: budget.NewDeleteBudgetUseCase(budgetRepo),

		ListCategories:        category.NewListCategoriesUseCase(categoryRepo),
		AddCategory:           category.NewAddCategoryUseCase(categoryRepo),
		SeedDefaultCategories: category.NewSeedDefaultCategoriesUseCase(categoryRepo),

		SpendingSummary:   analytics.NewGetSpendingSummaryUseCase(ledger),
		CategoryBreakdown: analytics.NewGetCategoryBreakdownUseCase(ledger),
		TrendAnalysis:     analytics.NewGetTrendAnalysisUseCase(ledger),
		PredictSpending:   analytics.NewPredictMonthlySpendingUseCase(ledger),
		GenerateInsights:  analytics.NewGenerateInsightsUseCase(ledger),
		ComparePeriods:    analytics.NewComparePeriodsUseCase(ledger),
		BudgetStatus:      analytics.NewGetBudgetStatusUseCase(ledger),
	}
}
