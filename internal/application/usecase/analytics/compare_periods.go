package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ChangeDirection is the sign of the difference between two periods.
type ChangeDirection string

const (
	DirectionIncreased ChangeDirection = "INCREASED"
	DirectionDecreased ChangeDirection = "DECREASED"
	DirectionUnchanged ChangeDirection = "UNCHANGED"
)

// ComparePeriodsInput represents two independently chosen ranges.
type ComparePeriodsInput struct {
	Period1 DateRange
	Period2 DateRange
}

// PeriodTotals is the total and count of one compared range.
type PeriodTotals struct {
	Range DateRange
	Total decimal.Decimal
	Count int
}

// ComparePeriodsOutput represents the difference from Period1 to Period2.
type ComparePeriodsOutput struct {
	Period1          PeriodTotals
	Period2          PeriodTotals
	ChangeAmount     decimal.Decimal
	ChangePercentage decimal.Decimal
	Direction        ChangeDirection
}

// ComparePeriodsUseCase compares spending between two date ranges.
type ComparePeriodsUseCase struct {
	ledger LedgerReader
}

// NewComparePeriodsUseCase creates a new ComparePeriodsUseCase instance.
func NewComparePeriodsUseCase(ledger LedgerReader) *ComparePeriodsUseCase {
	return &ComparePeriodsUseCase{
		ledger: ledger,
	}
}

// Execute computes each range's totals and the change between them.
func (uc *ComparePeriodsUseCase) Execute(
	ctx context.Context,
	input ComparePeriodsInput,
) (*ComparePeriodsOutput, error) {
	if err := input.Period1.Validate(); err != nil {
		return nil, err
	}
	if err := input.Period2.Validate(); err != nil {
		return nil, err
	}

	p1, err := uc.totals(ctx, input.Period1)
	if err != nil {
		return nil, err
	}
	p2, err := uc.totals(ctx, input.Period2)
	if err != nil {
		return nil, err
	}

	change := p2.Total.Sub(p1.Total)
	direction := DirectionUnchanged
	switch change.Sign() {
	case 1:
		direction = DirectionIncreased
	case -1:
		direction = DirectionDecreased
	}

	return &ComparePeriodsOutput{
		Period1:          p1,
		Period2:          p2,
		ChangeAmount:     change,
		ChangePercentage: percentChange(p2.Total, p1.Total),
		Direction:        direction,
	}, nil
}

func (uc *ComparePeriodsUseCase) totals(ctx context.Context, r DateRange) (PeriodTotals, error) {
	filter := entity.ExpenseFilter{Start: &r.Start, End: &r.End}

	total, err := uc.ledger.Total(ctx, filter)
	if err != nil {
		return PeriodTotals{}, fmt.Errorf("failed to get period total: %w", err)
	}

	expenses, err := uc.ledger.List(ctx, filter, 0)
	if err != nil {
		return PeriodTotals{}, fmt.Errorf("failed to list period expenses: %w", err)
	}

	return PeriodTotals{Range: r, Total: total, Count: len(expenses)}, nil
}
