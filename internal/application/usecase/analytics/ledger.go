// Package analytics contains the spending analytics use cases: period
// summaries, category breakdowns, trend detection, projections, period
// comparison, budget status and rule-based insights.
//
// Every use case is a pure computation over ledger query results. None of
// them write, cache or keep state between calls, so a single instance can be
// shared by concurrent readers.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MonthlyHistoryCap is the maximum number of months returned by
// LedgerReader.MonthlySummary.
const MonthlyHistoryCap = 12

// LedgerReader is the read-only data-access contract the analytics use cases
// depend on. All date bounds are inclusive calendar dates and a nil bound is
// unbounded on that side.
type LedgerReader interface {
	// Total sums the amounts of the matching expenses. It returns zero when
	// nothing matches.
	Total(ctx context.Context, filter entity.ExpenseFilter) (decimal.Decimal, error)

	// List returns matching expenses ordered by date desc then id desc.
	// A limit of zero or less returns every match.
	List(ctx context.Context, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error)

	// CategorySummary aggregates expenses per category, sorted by total desc.
	CategorySummary(ctx context.Context, start, end *time.Time) ([]entity.CategorySummary, error)

	// MonthlySummary aggregates expenses dated on or before end per calendar
	// month, most recent first, capped at MonthlyHistoryCap entries. The cap
	// applies after the end bound.
	MonthlySummary(ctx context.Context, end *time.Time) ([]entity.MonthlySummary, error)

	// Budgets returns every configured budget.
	Budgets(ctx context.Context) ([]*entity.Budget, error)
}
