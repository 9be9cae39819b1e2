package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TopCategoryLimit is the number of categories reported by a spending summary.
const TopCategoryLimit = 5

// GetSpendingSummaryInput represents the input for a period summary.
type GetSpendingSummaryInput struct {
	Period        Period
	ReferenceDate time.Time
}

// CategoryShare is one category's part of a period total.
type CategoryShare struct {
	Category   string
	Amount     decimal.Decimal
	Count      int
	Percentage decimal.Decimal
}

// GetSpendingSummaryOutput represents the summary of one period.
type GetSpendingSummaryOutput struct {
	Period            Period
	PeriodName        string
	StartDate         *time.Time // nil for PeriodAll
	EndDate           time.Time
	Days              int
	TotalSpent        decimal.Decimal
	TransactionCount  int
	AvgPerTransaction decimal.Decimal
	AvgPerDay         decimal.Decimal
	TopCategories     []CategoryShare
}

// GetSpendingSummaryUseCase summarizes spending over a week, month, year or
// the whole ledger.
type GetSpendingSummaryUseCase struct {
	ledger LedgerReader
}

// NewGetSpendingSummaryUseCase creates a new GetSpendingSummaryUseCase instance.
func NewGetSpendingSummaryUseCase(ledger LedgerReader) *GetSpendingSummaryUseCase {
	return &GetSpendingSummaryUseCase{
		ledger: ledger,
	}
}

// Execute computes the summary for the requested period as of the reference date.
func (uc *GetSpendingSummaryUseCase) Execute(
	ctx context.Context,
	input GetSpendingSummaryInput,
) (*GetSpendingSummaryOutput, error) {
	if err := validateReferenceDate(input.ReferenceDate); err != nil {
		return nil, err
	}
	period, err := ParsePeriod(string(input.Period))
	if err != nil {
		return nil, err
	}

	start, end := period.Bounds(input.ReferenceDate)
	filter := entity.ExpenseFilter{Start: start, End: &end}

	total, err := uc.ledger.Total(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get period total: %w", err)
	}

	expenses, err := uc.ledger.List(ctx, filter, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list period expenses: %w", err)
	}

	summaries, err := uc.ledger.CategorySummary(ctx, start, &end)
	if err != nil {
		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}

	count := len(expenses)
	days := uc.countDays(start, end, expenses)

	topCount := min(len(summaries), TopCategoryLimit)
	top := make([]CategoryShare, 0, topCount)
	for _, s := range summaries[:topCount] {
		top = append(top, CategoryShare{
			Category:   s.Category,
			Amount:     s.Total,
			Count:      s.Count,
			Percentage: percentageOf(s.Total, total),
		})
	}

	return &GetSpendingSummaryOutput{
		Period:            period,
		PeriodName:        period.Label(),
		StartDate:         start,
		EndDate:           end,
		Days:              days,
		TotalSpent:        total,
		TransactionCount:  count,
		AvgPerTransaction: safeDiv(total, decimal.NewFromInt(int64(count))),
		AvgPerDay:         safeDiv(total, decimal.NewFromInt(int64(days))),
		TopCategories:     top,
	}, nil
}

// countDays returns the daily-average denominator. Unbounded periods start
// at the earliest expense, which is last in the date-desc listing.
func (uc *GetSpendingSummaryUseCase) countDays(start *time.Time, end time.Time, expenses []*entity.Expense) int {
	if start != nil {
		return dateutil.DaysBetweenInclusive(*start, end)
	}
	if len(expenses) == 0 {
		return 1
	}
	earliest := expenses[len(expenses)-1].Date
	return max(dateutil.DaysBetweenInclusive(earliest, end), 1)
}
