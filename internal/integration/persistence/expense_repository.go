package persistence

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

const batchSize = 100

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create stores a new expense and assigns its ID.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Create(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	expense.ID = expenseModel.ID
	return nil
}

// CreateBatch stores several expenses in a single transaction.
func (r *expenseRepository) CreateBatch(ctx context.Context, expenses []*entity.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	models := make([]*model.ExpenseModel, len(expenses))
	for i, e := range expenses {
		models[i] = model.ExpenseFromEntity(e)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, batchSize).Error
	})
	if err != nil {
		return err
	}

	for i, m := range models {
		expenses[i].ID = m.ID
	}
	return nil
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id int64) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByFilter retrieves expenses matching the filter, newest first.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error) {
	return findExpenses(ctx, r.db, filter, limit)
}

// Update persists changes to an existing expense.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"date":           expenseModel.Date,
			"category":       expenseModel.Category,
			"amount_cents":   expenseModel.AmountCents,
			"description":    expenseModel.Description,
			"payment_method": expenseModel.PaymentMethod,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense by its ID.
func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Total sums the amounts of the expenses matching the filter.
func (r *expenseRepository) Total(ctx context.Context, filter entity.ExpenseFilter) (decimal.Decimal, error) {
	cents, err := sumExpenseCents(ctx, r.db, filter)
	if err != nil {
		return decimal.Zero, err
	}
	return model.FromCents(cents), nil
}
