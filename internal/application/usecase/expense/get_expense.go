package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetExpenseInput represents the input for fetching one expense.
type GetExpenseInput struct {
	ID int64
}

// GetExpenseUseCase fetches a single expense.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute returns the expense with the given ID.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*entity.Expense, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, notFound(input.ID)
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}
