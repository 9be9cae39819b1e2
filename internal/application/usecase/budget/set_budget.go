// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// SetBudgetInput represents the input for setting a category budget.
type SetBudgetInput struct {
	Category     string
	MonthlyLimit decimal.Decimal
}

// SetBudgetOutput represents the output of setting a category budget.
type SetBudgetOutput struct {
	Budget *entity.Budget
}

// SetBudgetUseCase creates a category budget or replaces its limit.
type SetBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewSetBudgetUseCase creates a new SetBudgetUseCase instance.
func NewSetBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
) *SetBudgetUseCase {
	return &SetBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute validates and upserts the budget.
func (uc *SetBudgetUseCase) Execute(ctx context.Context, input SetBudgetInput) (*SetBudgetOutput, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetCategory,
			"category is required",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}

	limit := input.MonthlyLimit.Round(2)
	if !limit.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"budget limit must be greater than 0",
			domainerror.ErrInvalidBudgetLimit,
		)
	}

	exists, err := uc.categoryRepo.ExistsByName(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			fmt.Sprintf("category '%s' does not exist", category),
			domainerror.ErrBudgetCategoryNotFound,
		)
	}

	budget := entity.NewBudget(category, limit)
	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	return &SetBudgetOutput{
		Budget: budget,
	}, nil
}
