package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Upsert creates the category's budget or replaces its monthly limit. The
// entity receives the stored ID and creation time.
func (r *budgetRepository) Upsert(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.BudgetModel
		err := tx.Where("category = ?", budget.Category).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			budgetModel := model.BudgetFromEntity(budget)
			if err := tx.Create(budgetModel).Error; err != nil {
				return err
			}
			budget.ID = budgetModel.ID
			return nil
		case err != nil:
			return err
		}

		existing.MonthlyLimitCents = model.ToCents(budget.MonthlyLimit)
		existing.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		budget.ID = existing.ID
		budget.CreatedAt = existing.CreatedAt
		budget.UpdatedAt = existing.UpdatedAt
		return nil
	})
}

// FindAll retrieves every budget ordered by category.
func (r *budgetRepository) FindAll(ctx context.Context) ([]*entity.Budget, error) {
	return findBudgets(ctx, r.db)
}

// FindByCategory retrieves the budget of a category.
func (r *budgetRepository) FindByCategory(ctx context.Context, category string) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("category = ?", category).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// Delete removes the budget of a category.
func (r *budgetRepository) Delete(ctx context.Context, category string) error {
	result := r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "category = ?", category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

func findBudgets(ctx context.Context, db *gorm.DB) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := db.WithContext(ctx).Order("category ASC").Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}
