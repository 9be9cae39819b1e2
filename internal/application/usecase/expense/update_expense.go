package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents a partial update. Nil fields are left as is.
type UpdateExpenseInput struct {
	ID            int64
	Date          *time.Time
	Category      *string
	Amount        *decimal.Decimal
	Description   *string
	PaymentMethod *string
}

func (i UpdateExpenseInput) empty() bool {
	return i.Date == nil && i.Category == nil && i.Amount == nil &&
		i.Description == nil && i.PaymentMethod == nil
}

// UpdateExpenseOutput represents the output of an expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute applies the provided fields with the same validation as creation.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	if input.empty() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNoFieldsToUpdate,
			"at least one field must be provided",
			domainerror.ErrNoFieldsToUpdate,
		)
	}

	expense, err := uc.expenseRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, notFound(input.ID)
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if input.Amount != nil {
		amount, err := normalizeAmount(*input.Amount)
		if err != nil {
			return nil, err
		}
		expense.Amount = amount
	}
	if input.Category != nil {
		category, err := resolveCategory(ctx, uc.categoryRepo, *input.Category)
		if err != nil {
			return nil, err
		}
		expense.Category = category
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, invalidDate("expense date is required")
		}
		expense.Date = dateutil.Truncate(*input.Date)
	}
	if input.Description != nil {
		expense.Description = strings.TrimSpace(*input.Description)
	}
	if input.PaymentMethod != nil {
		expense.PaymentMethod = strings.TrimSpace(*input.PaymentMethod)
		if expense.PaymentMethod == "" {
			expense.PaymentMethod = entity.DefaultPaymentMethod
		}
	}

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{
		Expense: expense,
	}, nil
}
