// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create stores a new expense and assigns its ID.
	Create(ctx context.Context, expense *entity.Expense) error

	// CreateBatch stores several expenses in a single transaction.
	CreateBatch(ctx context.Context, expenses []*entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Expense, error)

	// FindByFilter retrieves expenses matching the filter, newest first.
	// A limit of zero or less returns every match.
	FindByFilter(ctx context.Context, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error)

	// Update persists changes to an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense by its ID.
	Delete(ctx context.Context, id int64) error

	// Total sums the amounts of the expenses matching the filter.
	Total(ctx context.Context, filter entity.ExpenseFilter) (decimal.Decimal, error)
}
