package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetBudgetStatusInput represents the input for budget evaluation. A
// non-empty Category restricts the result to that category's budget.
type GetBudgetStatusInput struct {
	ReferenceDate time.Time
	Category      string
}

// BudgetStatus is one budget evaluated against its category's spending in
// the full calendar month of the reference date.
type BudgetStatus struct {
	Category   string
	Limit      decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal // Negative once exceeded
	Percentage decimal.Decimal
	Status     entity.BudgetStatusType
}

// GetBudgetStatusOutput represents every budget's status for one month.
type GetBudgetStatusOutput struct {
	MonthStart time.Time
	MonthEnd   time.Time
	Budgets    []BudgetStatus
}

// GetBudgetStatusUseCase evaluates every budget against the current month.
type GetBudgetStatusUseCase struct {
	ledger LedgerReader
}

// NewGetBudgetStatusUseCase creates a new GetBudgetStatusUseCase instance.
func NewGetBudgetStatusUseCase(ledger LedgerReader) *GetBudgetStatusUseCase {
	return &GetBudgetStatusUseCase{
		ledger: ledger,
	}
}

// Execute evaluates budgets over the whole calendar month of the reference date.
func (uc *GetBudgetStatusUseCase) Execute(
	ctx context.Context,
	input GetBudgetStatusInput,
) (*GetBudgetStatusOutput, error) {
	if err := validateReferenceDate(input.ReferenceDate); err != nil {
		return nil, err
	}

	monthStart := dateutil.FirstOfMonth(input.ReferenceDate)
	monthEnd := dateutil.LastOfMonth(input.ReferenceDate)

	budgets, err := uc.ledger.Budgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if input.Category != "" && b.Category != input.Category {
			continue
		}

		spent, err := uc.ledger.Total(ctx, entity.ExpenseFilter{
			Start:    &monthStart,
			End:      &monthEnd,
			Category: b.Category,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get spending for budget %s: %w", b.Category, err)
		}

		status, percentage := entity.ClassifyBudgetUsage(spent, b.MonthlyLimit)
		statuses = append(statuses, BudgetStatus{
			Category:   b.Category,
			Limit:      b.MonthlyLimit,
			Spent:      spent,
			Remaining:  b.MonthlyLimit.Sub(spent),
			Percentage: percentage,
			Status:     status,
		})
	}

	return &GetBudgetStatusOutput{
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
		Budgets:    statuses,
	}, nil
}
