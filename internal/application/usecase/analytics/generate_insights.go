package analytics

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Severity tags an insight for presentation.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeveritySuccess Severity = "SUCCESS"
	SeverityWarning Severity = "WARNING"
)

// Insight is a single natural-language observation about spending.
type Insight struct {
	Severity Severity
	Message  string
}

// FallbackInsight is emitted when no other rule fires.
var FallbackInsight = Insight{
	Severity: SeverityInfo,
	Message:  "Keep tracking your expenses to get personalized insights!",
}

// Thresholds used by the insight rules.
var (
	dominantShareThreshold = decimal.NewFromInt(40)
	weekendShareThreshold  = decimal.NewFromInt(40)
	projectionHighFactor   = decimal.RequireFromString("1.2")
	projectionLowFactor    = decimal.RequireFromString("0.8")
)

const (
	minDaysForProjection   = 5
	densityTransactionsCap = 5.0
)

// GenerateInsightsInput represents the input for insight generation.
type GenerateInsightsInput struct {
	ReferenceDate time.Time
}

// insightRule evaluates one rule, reporting whether it produced an insight.
type insightRule func(ctx context.Context, ref time.Time) (Insight, bool, error)

// GenerateInsightsUseCase produces heuristic insights about the reference
// month. Rules are evaluated lazily, in order, while the sequence is consumed.
type GenerateInsightsUseCase struct {
	ledger    LedgerReader
	breakdown *GetCategoryBreakdownUseCase
	trend     *GetTrendAnalysisUseCase
	predict   *PredictMonthlySpendingUseCase
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
func NewGenerateInsightsUseCase(ledger LedgerReader) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{
		ledger:    ledger,
		breakdown: NewGetCategoryBreakdownUseCase(ledger),
		trend:     NewGetTrendAnalysisUseCase(ledger),
		predict:   NewPredictMonthlySpendingUseCase(ledger),
	}
}

// Execute validates the input and returns a single-use insight sequence.
// No ledger query runs until the sequence is ranged over. A ledger failure
// is yielded once as the error half of the pair and ends the sequence.
// Ranging over the sequence a second time yields nothing.
func (uc *GenerateInsightsUseCase) Execute(
	ctx context.Context,
	input GenerateInsightsInput,
) (iter.Seq2[Insight, error], error) {
	if err := validateReferenceDate(input.ReferenceDate); err != nil {
		return nil, err
	}

	ref := dateutil.Truncate(input.ReferenceDate)
	rules := []insightRule{
		uc.dominantCategory,
		uc.trendDirection,
		uc.projectionVsLastMonth,
		uc.weekendConcentration,
		uc.transactionDensity,
	}

	var consumed atomic.Bool
	return func(yield func(Insight, error) bool) {
		if consumed.Swap(true) {
			return
		}

		fired := false
		for _, rule := range rules {
			insight, ok, err := rule(ctx, ref)
			if err != nil {
				yield(Insight{}, err)
				return
			}
			if !ok {
				continue
			}
			fired = true
			if !yield(insight, nil) {
				return
			}
		}

		if !fired {
			yield(FallbackInsight, nil)
		}
	}, nil
}

// CollectInsights drains an insight sequence into a slice.
func CollectInsights(seq iter.Seq2[Insight, error]) ([]Insight, error) {
	insights := make([]Insight, 0)
	for insight, err := range seq {
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, nil
}

func (uc *GenerateInsightsUseCase) dominantCategory(ctx context.Context, ref time.Time) (Insight, bool, error) {
	breakdown, err := uc.breakdown.Execute(ctx, GetCategoryBreakdownInput{ReferenceDate: ref})
	if err != nil {
		return Insight{}, false, err
	}
	if len(breakdown.Categories) == 0 {
		return Insight{}, false, nil
	}

	top := breakdown.Categories[0]
	if !top.Percentage.GreaterThan(dominantShareThreshold) {
		return Insight{}, false, nil
	}

	return Insight{
		Severity: SeverityWarning,
		Message: fmt.Sprintf(
			"%s accounts for %s%% of your spending this month. Consider if this aligns with your priorities.",
			top.Category, top.Percentage.StringFixed(1),
		),
	}, true, nil
}

func (uc *GenerateInsightsUseCase) trendDirection(ctx context.Context, ref time.Time) (Insight, bool, error) {
	trend, err := uc.trend.Execute(ctx, GetTrendAnalysisInput{ReferenceDate: ref})
	if err != nil {
		return Insight{}, false, err
	}

	switch trend.Trend {
	case TrendIncreasing:
		return Insight{
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Your spending has been increasing recently. Average monthly spending: $%s",
				trend.AvgMonthlySpending.StringFixed(2),
			),
		}, true, nil
	case TrendDecreasing:
		return Insight{
			Severity: SeveritySuccess,
			Message:  "Great job! Your spending has been decreasing. Keep up the good work!",
		}, true, nil
	default:
		return Insight{}, false, nil
	}
}

func (uc *GenerateInsightsUseCase) projectionVsLastMonth(ctx context.Context, ref time.Time) (Insight, bool, error) {
	prediction, err := uc.predict.Execute(ctx, PredictMonthlySpendingInput{ReferenceDate: ref})
	if err != nil {
		return Insight{}, false, err
	}
	if prediction.DaysPassed < minDaysForProjection {
		return Insight{}, false, nil
	}

	projected := prediction.ProjectedMonthlyTotal
	last := prediction.LastMonthTotal
	switch {
	case projected.GreaterThan(last.Mul(projectionHighFactor)):
		return Insight{
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"At the current rate, you're projected to spend $%s this month, which is significantly higher than last month ($%s).",
				projected.StringFixed(2), last.StringFixed(2),
			),
		}, true, nil
	case projected.LessThan(last.Mul(projectionLowFactor)):
		return Insight{
			Severity: SeveritySuccess,
			Message: fmt.Sprintf(
				"You're on track to spend less this month! Projected: $%s vs Last month: $%s",
				projected.StringFixed(2), last.StringFixed(2),
			),
		}, true, nil
	default:
		return Insight{}, false, nil
	}
}

func (uc *GenerateInsightsUseCase) monthToDate(ctx context.Context, ref time.Time) ([]*entity.Expense, error) {
	start := dateutil.FirstOfMonth(ref)
	expenses, err := uc.ledger.List(ctx, entity.ExpenseFilter{Start: &start, End: &ref}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list month-to-date expenses: %w", err)
	}
	return expenses, nil
}

func (uc *GenerateInsightsUseCase) weekendConcentration(ctx context.Context, ref time.Time) (Insight, bool, error) {
	expenses, err := uc.monthToDate(ctx, ref)
	if err != nil {
		return Insight{}, false, err
	}

	weekend, weekday := decimal.Zero, decimal.Zero
	for _, e := range expenses {
		if dateutil.IsWeekend(e.Date) {
			weekend = weekend.Add(e.Amount)
		} else {
			weekday = weekday.Add(e.Amount)
		}
	}

	total := weekend.Add(weekday)
	if !total.IsPositive() {
		return Insight{}, false, nil
	}

	share := percentageOf(weekend, total)
	if !share.GreaterThan(weekendShareThreshold) {
		return Insight{}, false, nil
	}

	return Insight{
		Severity: SeverityInfo,
		Message: fmt.Sprintf(
			"%s%% of your spending happens on weekends. This might be a good area to monitor.",
			share.StringFixed(1),
		),
	}, true, nil
}

func (uc *GenerateInsightsUseCase) transactionDensity(ctx context.Context, ref time.Time) (Insight, bool, error) {
	expenses, err := uc.monthToDate(ctx, ref)
	if err != nil {
		return Insight{}, false, err
	}
	if len(expenses) == 0 {
		return Insight{}, false, nil
	}

	activeDays := make(map[string]struct{})
	for _, e := range expenses {
		activeDays[dateutil.FormatDate(e.Date)] = struct{}{}
	}

	perDay := float64(len(expenses)) / float64(len(activeDays))
	if perDay <= densityTransactionsCap {
		return Insight{}, false, nil
	}

	return Insight{
		Severity: SeverityInfo,
		Message: fmt.Sprintf(
			"You're averaging %.1f transactions per day. Consider consolidating purchases to reduce impulse spending.",
			perDay,
		),
	}, true, nil
}
