// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Upsert creates the category's budget or replaces its monthly limit.
	Upsert(ctx context.Context, budget *entity.Budget) error

	// FindAll retrieves every budget ordered by category.
	FindAll(ctx context.Context) ([]*entity.Budget, error)

	// FindByCategory retrieves the budget of a category.
	FindByCategory(ctx context.Context, category string) (*entity.Budget, error)

	// Delete removes the budget of a category.
	Delete(ctx context.Context, category string) error
}
