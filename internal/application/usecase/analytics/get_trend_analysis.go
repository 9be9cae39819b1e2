package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultTrendMonths is the trend window used when none is requested.
const DefaultTrendMonths = 6

// recentWindow is the number of most recent months compared against the rest.
const recentWindow = 3

// TrendDirection classifies the movement of monthly spending.
type TrendDirection string

const (
	TrendIncreasing       TrendDirection = "INCREASING"
	TrendDecreasing       TrendDirection = "DECREASING"
	TrendStable           TrendDirection = "STABLE"
	TrendInsufficientData TrendDirection = "INSUFFICIENT_DATA"
)

// Consistency classifies how much monthly totals vary around their mean.
type Consistency string

const (
	ConsistencyHigh     Consistency = "HIGH"
	ConsistencyModerate Consistency = "MODERATE"
	ConsistencyLow      Consistency = "LOW"
)

var (
	increasingFactor = decimal.RequireFromString("1.10")
	decreasingFactor = decimal.RequireFromString("0.90")
)

// InsufficientDataMessage explains a TrendInsufficientData result.
const InsufficientDataMessage = "Not enough data for trend analysis"

// GetTrendAnalysisInput represents the input for a trend analysis. Expenses
// dated after the reference date are ignored.
type GetTrendAnalysisInput struct {
	Months        int
	ReferenceDate time.Time
}

// GetTrendAnalysisOutput represents the trend over the analyzed window.
// Only Trend, Message and MonthlyData are set for TrendInsufficientData.
type GetTrendAnalysisOutput struct {
	Trend                TrendDirection
	Message              string
	AvgMonthlySpending   decimal.Decimal
	CurrentMonthSpending decimal.Decimal
	MonthOverMonthChange decimal.Decimal
	Consistency          Consistency
	StdDev               float64
	MonthlyData          []entity.MonthlySummary
}

// GetTrendAnalysisUseCase classifies recent monthly spending.
type GetTrendAnalysisUseCase struct {
	ledger LedgerReader
}

// NewGetTrendAnalysisUseCase creates a new GetTrendAnalysisUseCase instance.
func NewGetTrendAnalysisUseCase(ledger LedgerReader) *GetTrendAnalysisUseCase {
	return &GetTrendAnalysisUseCase{
		ledger: ledger,
	}
}

// Execute analyzes the most recent months of history. Fewer than two months
// of history is reported as TrendInsufficientData, not as an error.
func (uc *GetTrendAnalysisUseCase) Execute(
	ctx context.Context,
	input GetTrendAnalysisInput,
) (*GetTrendAnalysisOutput, error) {
	if err := validateReferenceDate(input.ReferenceDate); err != nil {
		return nil, err
	}

	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 0 {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidMonthWindow,
			"months must be a positive number",
			domainerror.ErrInvalidMonthWindow,
		)
	}

	end := dateutil.Truncate(input.ReferenceDate)
	history, err := uc.ledger.MonthlySummary(ctx, &end)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	if len(history) < 2 {
		return &GetTrendAnalysisOutput{
			Trend:       TrendInsufficientData,
			Message:     InsufficientDataMessage,
			MonthlyData: history,
		}, nil
	}

	window := history[:min(months, len(history))]
	amounts := make([]decimal.Decimal, len(window))
	for i, m := range window {
		amounts[i] = m.Total
	}

	avg := mean(amounts)
	stdDev := populationStdDev(amounts)

	output := &GetTrendAnalysisOutput{
		Trend:                classifyTrend(amounts),
		AvgMonthlySpending:   avg,
		CurrentMonthSpending: amounts[0],
		Consistency:          classifyConsistency(stdDev, avg),
		StdDev:               stdDev,
		MonthlyData:          window,
	}
	if len(amounts) >= 2 {
		output.MonthOverMonthChange = percentChange(amounts[0], amounts[1])
	}

	return output, nil
}

// classifyTrend compares the mean of the most recent months with the mean
// of the rest. Windows shorter than four months compare the recent months
// with themselves and are therefore STABLE.
func classifyTrend(amounts []decimal.Decimal) TrendDirection {
	recent := amounts[:min(recentWindow, len(amounts))]
	older := recent
	if len(amounts) > recentWindow {
		older = amounts[recentWindow:]
	}

	recentMean, olderMean := mean(recent), mean(older)
	switch {
	case recentMean.GreaterThan(olderMean.Mul(increasingFactor)):
		return TrendIncreasing
	case recentMean.LessThan(olderMean.Mul(decreasingFactor)):
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func classifyConsistency(stdDev float64, avg decimal.Decimal) Consistency {
	m, _ := avg.Float64()
	switch {
	case stdDev == 0, stdDev < 0.2*m:
		return ConsistencyHigh
	case stdDev < 0.4*m:
		return ConsistencyModerate
	default:
		return ConsistencyLow
	}
}

// percentChange returns (current-previous)/previous*100, or zero when
// previous is zero.
func percentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Mul(hundred).Div(previous)
}
