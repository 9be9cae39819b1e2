package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// ledgerRepository implements the analytics.LedgerReader interface with SQL
// aggregates over the expenses and budgets tables.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) analytics.LedgerReader {
	return &ledgerRepository{
		db: db,
	}
}

type aggregateRow struct {
	Label      string `gorm:"column:label"`
	TotalCents int64  `gorm:"column:total_cents"`
	Count      int    `gorm:"column:count"`
}

// Total sums the amounts of the expenses matching the filter.
func (r *ledgerRepository) Total(ctx context.Context, filter entity.ExpenseFilter) (decimal.Decimal, error) {
	cents, err := sumExpenseCents(ctx, r.db, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return model.FromCents(cents), nil
}

// List returns the matching expenses ordered by date then ID, newest first.
func (r *ledgerRepository) List(ctx context.Context, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error) {
	expenses, err := findExpenses(ctx, r.db, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// CategorySummary aggregates the range per category, largest total first.
func (r *ledgerRepository) CategorySummary(ctx context.Context, start, end *time.Time) ([]entity.CategorySummary, error) {
	var rows []aggregateRow
	err := expenseQuery(ctx, r.db, entity.ExpenseFilter{Start: start, End: end}).
		Select("category AS label, SUM(amount_cents) AS total_cents, COUNT(*) AS count").
		Group("category").
		Order("total_cents DESC, label ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize categories: %w", err)
	}

	summaries := make([]entity.CategorySummary, len(rows))
	for i, row := range rows {
		summaries[i] = entity.CategorySummary{
			Category: row.Label,
			Total:    model.FromCents(row.TotalCents),
			Count:    row.Count,
		}
	}
	return summaries, nil
}

// MonthlySummary aggregates per YYYY-MM month the expenses dated on or before
// end, most recent first, capped at analytics.MonthlyHistoryCap entries.
func (r *ledgerRepository) MonthlySummary(ctx context.Context, end *time.Time) ([]entity.MonthlySummary, error) {
	var rows []aggregateRow
	err := expenseQuery(ctx, r.db, entity.ExpenseFilter{End: end}).
		Select("SUBSTR(date, 1, 7) AS label, SUM(amount_cents) AS total_cents, COUNT(*) AS count").
		Group("SUBSTR(date, 1, 7)").
		Order("label DESC").
		Limit(analytics.MonthlyHistoryCap).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize months: %w", err)
	}

	summaries := make([]entity.MonthlySummary, len(rows))
	for i, row := range rows {
		summaries[i] = entity.MonthlySummary{
			Month: row.Label,
			Total: model.FromCents(row.TotalCents),
			Count: row.Count,
		}
	}
	return summaries, nil
}

// Budgets returns every configured budget.
func (r *ledgerRepository) Budgets(ctx context.Context) ([]*entity.Budget, error) {
	budgets, err := findBudgets(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}
