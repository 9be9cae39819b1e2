package expense

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeExpenseRepository struct {
	expenses map[int64]*entity.Expense
	nextID   int64
	err      error
}

func newFakeExpenseRepository() *fakeExpenseRepository {
	return &fakeExpenseRepository{expenses: map[int64]*entity.Expense{}}
}

func (f *fakeExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	expense.ID = f.nextID
	stored := *expense
	f.expenses[expense.ID] = &stored
	return nil
}

func (f *fakeExpenseRepository) CreateBatch(ctx context.Context, expenses []*entity.Expense) error {
	for _, e := range expenses {
		if err := f.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeExpenseRepository) FindByID(_ context.Context, id int64) (*entity.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.expenses[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	found := *e
	return &found, nil
}

func (f *fakeExpenseRepository) FindByFilter(_ context.Context, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*entity.Expense, 0)
	for _, e := range f.expenses {
		if matches(e, filter) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeExpenseRepository) Update(_ context.Context, expense *entity.Expense) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.expenses[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	stored := *expense
	f.expenses[expense.ID] = &stored
	return nil
}

func (f *fakeExpenseRepository) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.expenses[id]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseRepository) Total(_ context.Context, filter entity.ExpenseFilter) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	total := decimal.Zero
	for _, e := range f.expenses {
		if matches(e, filter) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func matches(e *entity.Expense, filter entity.ExpenseFilter) bool {
	if filter.Start != nil && e.Date.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && e.Date.After(*filter.End) {
		return false
	}
	if filter.Category != "" && e.Category != filter.Category {
		return false
	}
	if filter.Keyword != "" {
		kw := strings.ToLower(filter.Keyword)
		return strings.Contains(strings.ToLower(e.Description), kw) ||
			strings.Contains(strings.ToLower(e.Category), kw)
	}
	return true
}

type fakeCategoryRepository struct {
	names map[string]bool
}

func newFakeCategoryRepository(names ...string) *fakeCategoryRepository {
	f := &fakeCategoryRepository{names: map[string]bool{}}
	for _, n := range names {
		f.names[n] = true
	}
	return f
}

func (f *fakeCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	f.names[category.Name] = true
	return nil
}

func (f *fakeCategoryRepository) FindAll(_ context.Context) ([]*entity.Category, error) {
	result := make([]*entity.Category, 0, len(f.names))
	for n := range f.names {
		result = append(result, entity.NewCategory(n, ""))
	}
	return result, nil
}

func (f *fakeCategoryRepository) FindByName(_ context.Context, name string) (*entity.Category, error) {
	if !f.names[name] {
		return nil, domainerror.ErrCategoryNotFound
	}
	return entity.NewCategory(name, ""), nil
}

func (f *fakeCategoryRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	return f.names[name], nil
}

type fakeBudgetRepository struct {
	budgets map[string]*entity.Budget
}

func newFakeBudgetRepository() *fakeBudgetRepository {
	return &fakeBudgetRepository{budgets: map[string]*entity.Budget{}}
}

func (f *fakeBudgetRepository) Upsert(_ context.Context, budget *entity.Budget) error {
	f.budgets[budget.Category] = budget
	return nil
}

func (f *fakeBudgetRepository) FindAll(_ context.Context) ([]*entity.Budget, error) {
	result := make([]*entity.Budget, 0, len(f.budgets))
	for _, b := range f.budgets {
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBudgetRepository) FindByCategory(_ context.Context, category string) (*entity.Budget, error) {
	b, ok := f.budgets[category]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return b, nil
}

func (f *fakeBudgetRepository) Delete(_ context.Context, category string) error {
	if _, ok := f.budgets[category]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	delete(f.budgets, category)
	return nil
}
