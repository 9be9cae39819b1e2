package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetCategoryBreakdownInput represents the input for a category breakdown.
// Nil dates default to the first of the reference month and the reference
// date respectively.
type GetCategoryBreakdownInput struct {
	StartDate     *time.Time
	EndDate       *time.Time
	ReferenceDate time.Time
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	Category          string
	Total             decimal.Decimal
	Count             int
	Percentage        decimal.Decimal
	AvgPerTransaction decimal.Decimal
}

// GetCategoryBreakdownOutput represents the output of a category breakdown.
type GetCategoryBreakdownOutput struct {
	StartDate  time.Time
	EndDate    time.Time
	Total      decimal.Decimal
	Categories []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	ledger LedgerReader
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(ledger LedgerReader) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		ledger: ledger,
	}
}

// Execute retrieves spending breakdown by category for the given range.
// Categories without activity in the range are omitted.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*GetCategoryBreakdownOutput, error) {
	dateRange, err := uc.resolveRange(input)
	if err != nil {
		return nil, err
	}

	summaries, err := uc.ledger.CategorySummary(ctx, &dateRange.Start, &dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}

	total, err := uc.ledger.Total(ctx, entity.ExpenseFilter{Start: &dateRange.Start, End: &dateRange.End})
	if err != nil {
		return nil, fmt.Errorf("failed to get range total: %w", err)
	}

	categories := make([]CategoryBreakdownItem, 0, len(summaries))
	for _, s := range summaries {
		if s.Count == 0 {
			continue
		}
		categories = append(categories, CategoryBreakdownItem{
			Category:          s.Category,
			Total:             s.Total,
			Count:             s.Count,
			Percentage:        percentageOf(s.Total, total),
			AvgPerTransaction: safeDiv(s.Total, decimal.NewFromInt(int64(s.Count))),
		})
	}

	return &GetCategoryBreakdownOutput{
		StartDate:  dateRange.Start,
		EndDate:    dateRange.End,
		Total:      total,
		Categories: categories,
	}, nil
}

func (uc *GetCategoryBreakdownUseCase) resolveRange(input GetCategoryBreakdownInput) (DateRange, error) {
	if input.StartDate == nil || input.EndDate == nil {
		if err := validateReferenceDate(input.ReferenceDate); err != nil {
			return DateRange{}, err
		}
	}

	r := DateRange{}
	if input.StartDate != nil {
		r.Start = dateutil.Truncate(*input.StartDate)
	} else {
		r.Start = dateutil.FirstOfMonth(input.ReferenceDate)
	}
	if input.EndDate != nil {
		r.End = dateutil.Truncate(*input.EndDate)
	} else {
		r.End = dateutil.Truncate(input.ReferenceDate)
	}

	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}
