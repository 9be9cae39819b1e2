// Package expense contains expense-related use cases.
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

// BudgetWarning is raised when recording an expense leaves its category at
// or above the caution threshold of the monthly budget.
type BudgetWarning struct {
	Category   string
	Status     entity.BudgetStatusType
	Spent      decimal.Decimal
	Limit      decimal.Decimal
	Percentage decimal.Decimal
	Message    string
}

// normalizeAmount rounds to cents and rejects non-positive amounts.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(2)
	if !rounded.IsPositive() {
		return decimal.Zero, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidAmount,
		)
	}
	return rounded, nil
}

// resolveCategory trims the category name and checks that it is registered.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeMissingCategory,
			"category is required",
			domainerror.ErrMissingCategory,
		)
	}

	exists, err := repo.ExistsByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeUnknownCategory,
			fmt.Sprintf("category '%s' does not exist", name),
			domainerror.ErrUnknownCategory,
		)
	}
	return name, nil
}

func invalidDate(message string) error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeInvalidExpenseDate,
		message,
		domainerror.ErrInvalidExpenseDate,
	)
}

func notFound(id int64) error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		fmt.Sprintf("expense %d not found", id),
		domainerror.ErrExpenseNotFound,
	)
}

// budgetChecker evaluates a category's budget over the calendar month of a
// given date.
type budgetChecker struct {
	expenseRepo adapter.ExpenseRepository
	budgetRepo  adapter.BudgetRepository
}

func (c budgetChecker) check(ctx context.Context, category string, date time.Time) (*BudgetWarning, error) {
	budget, err := c.budgetRepo.FindByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	start, end := dateutil.FirstOfMonth(date), dateutil.LastOfMonth(date)
	spent, err := c.expenseRepo.Total(ctx, entity.ExpenseFilter{Start: &start, End: &end, Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to get month total: %w", err)
	}

	limit := budget.MonthlyLimit
	status, percentage := entity.ClassifyBudgetUsage(spent, limit)

	var message string
	switch status {
	case entity.BudgetStatusExceeded:
		message = fmt.Sprintf("Budget exceeded! Spent $%s of $%s (%s%%)",
			spent.StringFixed(2), limit.StringFixed(2), percentage.StringFixed(1))
	case entity.BudgetStatusWarning:
		message = fmt.Sprintf("Warning: %s%% of budget used ($%s of $%s)",
			percentage.StringFixed(1), spent.StringFixed(2), limit.StringFixed(2))
	case entity.BudgetStatusCaution:
		message = fmt.Sprintf("Note: %s%% of budget used", percentage.StringFixed(1))
	default:
		return nil, nil
	}

	return &BudgetWarning{
		Category:   category,
		Status:     status,
		Spent:      spent,
		Limit:      limit,
		Percentage: percentage,
		Message:    message,
	}, nil
}
