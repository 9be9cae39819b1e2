package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// AddExpenseInput represents the input for recording an expense.
type AddExpenseInput struct {
	Date          time.Time // Optional, defaults to ReferenceDate
	Category      string
	Amount        decimal.Decimal
	Description   string
	PaymentMethod string // Optional, defaults to DefaultPaymentMethod
	ReferenceDate time.Time
}

// AddExpenseOutput represents the output of recording an expense.
type AddExpenseOutput struct {
	Expense       *entity.Expense
	BudgetWarning *BudgetWarning // Nil when the category budget is fine or unset
}

// AddExpenseUseCase handles expense creation logic.
type AddExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	budgets      budgetChecker
}

// NewAddExpenseUseCase creates a new AddExpenseUseCase instance.
func NewAddExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	budgetRepo adapter.BudgetRepository,
) *AddExpenseUseCase {
	return &AddExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		budgets:      budgetChecker{expenseRepo: expenseRepo, budgetRepo: budgetRepo},
	}
}

// Execute validates and records the expense, then reports the category's
// budget position for the expense's month.
func (uc *AddExpenseUseCase) Execute(ctx context.Context, input AddExpenseInput) (*AddExpenseOutput, error) {
	amount, err := normalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.Category)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = input.ReferenceDate
	}
	if date.IsZero() {
		return nil, invalidDate("expense date is required")
	}

	expense := entity.NewExpense(
		dateutil.Truncate(date),
		category,
		amount,
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.PaymentMethod),
	)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	warning, err := uc.budgets.check(ctx, expense.Category, expense.Date)
	if err != nil {
		// The expense is already stored; a failed budget lookup only loses the hint.
		slog.Warn("Failed to evaluate budget after adding expense",
			"expense_id", expense.ID,
			"category", expense.Category,
			"error", err,
		)
	}

	return &AddExpenseOutput{
		Expense:       expense,
		BudgetWarning: warning,
	}, nil
}
