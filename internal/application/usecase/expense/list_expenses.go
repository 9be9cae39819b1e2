package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DefaultRecentDays is the window used by GetRecentExpenses when none is given.
const DefaultRecentDays = 7

// ListExpensesInput represents the filters for listing expenses.
type ListExpensesInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Limit     int // Zero or less returns every match
}

// ListExpensesOutput represents a list of expenses, newest first.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Total    int
}

// ListExpensesUseCase handles listing expenses logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute lists the expenses matching the filters.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, invalidDate("start date must not be after end date")
	}

	return list(ctx, uc.expenseRepo, entity.ExpenseFilter{
		Start:    input.StartDate,
		End:      input.EndDate,
		Category: strings.TrimSpace(input.Category),
	}, input.Limit)
}

// GetRecentExpensesInput represents the input for listing recent expenses.
type GetRecentExpensesInput struct {
	Days          int // Defaults to DefaultRecentDays
	ReferenceDate time.Time
}

// GetRecentExpensesUseCase lists the expenses of the last days up to the
// reference date, inclusive.
type GetRecentExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetRecentExpensesUseCase creates a new GetRecentExpensesUseCase instance.
func NewGetRecentExpensesUseCase(expenseRepo adapter.ExpenseRepository) *GetRecentExpensesUseCase {
	return &GetRecentExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute lists expenses dated from ReferenceDate-Days through ReferenceDate.
func (uc *GetRecentExpensesUseCase) Execute(ctx context.Context, input GetRecentExpensesInput) (*ListExpensesOutput, error) {
	days := input.Days
	if days == 0 {
		days = DefaultRecentDays
	}
	if days < 0 {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseRequest,
			"days must be a positive number",
			domainerror.ErrInvalidDayWindow,
		)
	}
	if input.ReferenceDate.IsZero() {
		return nil, invalidDate("reference date is required")
	}

	end := dateutil.Truncate(input.ReferenceDate)
	start := end.AddDate(0, 0, -days)
	return list(ctx, uc.expenseRepo, entity.ExpenseFilter{Start: &start, End: &end}, 0)
}

// SearchExpensesInput represents the input for a keyword search.
type SearchExpensesInput struct {
	Keyword string
}

// SearchExpensesUseCase finds expenses whose description or category
// contains a keyword, ignoring case.
type SearchExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewSearchExpensesUseCase creates a new SearchExpensesUseCase instance.
func NewSearchExpensesUseCase(expenseRepo adapter.ExpenseRepository) *SearchExpensesUseCase {
	return &SearchExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute runs the search.
func (uc *SearchExpensesUseCase) Execute(ctx context.Context, input SearchExpensesInput) (*ListExpensesOutput, error) {
	keyword := strings.TrimSpace(input.Keyword)
	if keyword == "" {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeEmptySearchKeyword,
			"search keyword is required",
			domainerror.ErrEmptySearchKeyword,
		)
	}

	return list(ctx, uc.expenseRepo, entity.ExpenseFilter{Keyword: keyword}, 0)
}

func list(ctx context.Context, repo adapter.ExpenseRepository, filter entity.ExpenseFilter, limit int) (*ListExpensesOutput, error) {
	expenses, err := repo.FindByFilter(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Total:    len(expenses),
	}, nil
}
