package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// PredictMonthlySpendingInput represents the input for a month-end projection.
type PredictMonthlySpendingInput struct {
	ReferenceDate time.Time
}

// PredictMonthlySpendingOutput represents a linear projection of the
// reference month's spending.
type PredictMonthlySpendingOutput struct {
	MonthStart            time.Time
	CurrentSpending       decimal.Decimal
	ProjectedMonthlyTotal decimal.Decimal
	DaysPassed            int
	DaysRemaining         int
	TotalDays             int
	DailyAverage          decimal.Decimal
	LastMonthStart        time.Time
	LastMonthEnd          time.Time
	LastMonthTotal        decimal.Decimal

	// ComparisonWithLastMonth is projected minus last month, reported as
	// zero when last month has no spending.
	ComparisonWithLastMonth decimal.Decimal
	// ComparisonWithLastMonthRaw is projected minus last month without
	// the zero-baseline suppression.
	ComparisonWithLastMonthRaw decimal.Decimal
}

// PredictMonthlySpendingUseCase extrapolates month-to-date spending to the
// end of the month.
type PredictMonthlySpendingUseCase struct {
	ledger LedgerReader
}

// NewPredictMonthlySpendingUseCase creates a new PredictMonthlySpendingUseCase instance.
func NewPredictMonthlySpendingUseCase(ledger LedgerReader) *PredictMonthlySpendingUseCase {
	return &PredictMonthlySpendingUseCase{
		ledger: ledger,
	}
}

// Execute projects the reference month's total from its daily average so far.
func (uc *PredictMonthlySpendingUseCase) Execute(
	ctx context.Context,
	input PredictMonthlySpendingInput,
) (*PredictMonthlySpendingOutput, error) {
	if err := validateReferenceDate(input.ReferenceDate); err != nil {
		return nil, err
	}

	today := dateutil.Truncate(input.ReferenceDate)
	monthStart := dateutil.FirstOfMonth(today)

	spent, err := uc.ledger.Total(ctx, entity.ExpenseFilter{Start: &monthStart, End: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to get month-to-date total: %w", err)
	}

	lastStart, lastEnd := dateutil.PreviousMonthRange(today)
	lastMonthTotal, err := uc.ledger.Total(ctx, entity.ExpenseFilter{Start: &lastStart, End: &lastEnd})
	if err != nil {
		return nil, fmt.Errorf("failed to get last month total: %w", err)
	}

	daysPassed := today.Day()
	totalDays := dateutil.DaysInMonth(today.Year(), today.Month())

	dailyAverage := decimal.Zero
	projected := decimal.Zero
	if daysPassed > 0 {
		dailyAverage = spent.Div(decimal.NewFromInt(int64(daysPassed)))
		// Multiply before dividing so whole-cent projections stay exact.
		projected = spent.Mul(decimal.NewFromInt(int64(totalDays))).Div(decimal.NewFromInt(int64(daysPassed)))
	}

	raw := projected.Sub(lastMonthTotal)
	comparison := decimal.Zero
	if lastMonthTotal.IsPositive() {
		comparison = raw
	}

	return &PredictMonthlySpendingOutput{
		MonthStart:                 monthStart,
		CurrentSpending:            spent,
		ProjectedMonthlyTotal:      projected,
		DaysPassed:                 daysPassed,
		DaysRemaining:              totalDays - daysPassed,
		TotalDays:                  totalDays,
		DailyAverage:               dailyAverage,
		LastMonthStart:             lastStart,
		LastMonthEnd:               lastEnd,
		LastMonthTotal:             lastMonthTotal,
		ComparisonWithLastMonth:    comparison,
		ComparisonWithLastMonthRaw: raw,
	}, nil
}
