package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(newTestDB(t))

	for _, c := range entity.DefaultCategories() {
		require.NoError(t, repo.Create(ctx, c))
		assert.NotZero(t, c.ID)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 13)
	assert.Equal(t, "Bills & Utilities", all[0].Name)

	rent, err := repo.FindByName(ctx, "Rent")
	require.NoError(t, err)
	assert.Equal(t, "🏠", rent.Icon)

	_, err = repo.FindByName(ctx, "Yachts")
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	exists, err := repo.ExistsByName(ctx, "Groceries")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, repo.Create(ctx, entity.NewCategory("Rent", "")), "names are unique")
}

func TestExpenseRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(newTestDB(t))

	expense := entity.NewExpense(day("2025-10-01"), "Rent", dec("900.10"), "October", "")
	require.NoError(t, repo.Create(ctx, expense))
	require.NotZero(t, expense.ID)

	found, err := repo.FindByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, day("2025-10-01"), found.Date)
	assert.Equal(t, "900.1", found.Amount.String())
	assert.Equal(t, entity.DefaultPaymentMethod, found.PaymentMethod)

	found.Amount = dec("950")
	found.Description = "Adjusted"
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("950")))
	assert.Equal(t, "Adjusted", updated.Description)

	require.NoError(t, repo.Delete(ctx, expense.ID))
	assert.ErrorIs(t, repo.Delete(ctx, expense.ID), domainerror.ErrExpenseNotFound)
	_, err = repo.FindByID(ctx, expense.ID)
	assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)

	missing := entity.NewExpense(day("2025-10-01"), "Rent", dec("1"), "", "")
	missing.ID = 4242
	assert.ErrorIs(t, repo.Update(ctx, missing), domainerror.ErrExpenseNotFound)
}

func seedExpenses(t *testing.T, repo interface {
	CreateBatch(context.Context, []*entity.Expense) error
}) {
	t.Helper()
	expenses := []*entity.Expense{
		entity.NewExpense(day("2025-08-15"), "Rent", dec("900"), "August rent", "Bank Transfer"),
		entity.NewExpense(day("2025-09-30"), "Food & Dining", dec("0.10"), "Gum", "Cash"),
		entity.NewExpense(day("2025-09-30"), "Food & Dining", dec("0.20"), "Mint", "Cash"),
		entity.NewExpense(day("2025-10-01"), "Food & Dining", dec("12.50"), "Lunch 50%_off", "Cash"),
		entity.NewExpense(day("2025-10-01"), "Transportation", dec("3.40"), "Bus", "Card"),
		entity.NewExpense(day("2025-10-19"), "Orphaned Hobby", dec("40"), "Paint", "Cash"),
	}
	require.NoError(t, repo.CreateBatch(context.Background(), expenses))
	for i, e := range expenses {
		require.Equal(t, int64(i+1), e.ID)
	}
}

func TestExpenseRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(newTestDB(t))
	seedExpenses(t, repo)

	start, end := day("2025-09-30"), day("2025-10-01")
	tests := []struct {
		name    string
		filter  entity.ExpenseFilter
		limit   int
		wantIDs []int64
	}{
		{name: "all newest first", wantIDs: []int64{6, 5, 4, 3, 2, 1}},
		{name: "limit", limit: 2, wantIDs: []int64{6, 5}},
		{name: "inclusive bounds", filter: entity.ExpenseFilter{Start: &start, End: &end}, wantIDs: []int64{5, 4, 3, 2}},
		{name: "open start", filter: entity.ExpenseFilter{End: &start}, wantIDs: []int64{3, 2, 1}},
		{name: "category", filter: entity.ExpenseFilter{Category: "Food & Dining"}, wantIDs: []int64{4, 3, 2}},
		{name: "keyword in description ignores case", filter: entity.ExpenseFilter{Keyword: "LUNCH"}, wantIDs: []int64{4}},
		{name: "keyword in category", filter: entity.ExpenseFilter{Keyword: "transport"}, wantIDs: []int64{5}},
		{name: "keyword wildcards are literal", filter: entity.ExpenseFilter{Keyword: "50%_"}, wantIDs: []int64{4}},
		{name: "percent alone is literal", filter: entity.ExpenseFilter{Keyword: "%"}, wantIDs: []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses, err := repo.FindByFilter(ctx, tt.filter, tt.limit)
			require.NoError(t, err)

			ids := make([]int64, len(expenses))
			for i, e := range expenses {
				ids[i] = e.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestExpenseRepository_TotalIsExact(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(newTestDB(t))
	seedExpenses(t, repo)

	start := day("2025-09-01")
	end := day("2025-09-30")
	total, err := repo.Total(ctx, entity.ExpenseFilter{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, "0.3", total.String())

	empty := day("2030-01-01")
	total, err = repo.Total(ctx, entity.ExpenseFilter{Start: &empty})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(newTestDB(t))

	food := entity.NewBudget("Food & Dining", dec("300"))
	require.NoError(t, repo.Upsert(ctx, food))
	require.NotZero(t, food.ID)

	replacement := entity.NewBudget("Food & Dining", dec("350.50"))
	require.NoError(t, repo.Upsert(ctx, replacement))
	assert.Equal(t, food.ID, replacement.ID)

	require.NoError(t, repo.Upsert(ctx, entity.NewBudget("Bills & Utilities", dec("200"))))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bills & Utilities", all[0].Category)
	assert.Equal(t, "350.5", all[1].MonthlyLimit.String())

	found, err := repo.FindByCategory(ctx, "Food & Dining")
	require.NoError(t, err)
	assert.True(t, found.MonthlyLimit.Equal(dec("350.50")))

	require.NoError(t, repo.Delete(ctx, "Food & Dining"))
	assert.ErrorIs(t, repo.Delete(ctx, "Food & Dining"), domainerror.ErrBudgetNotFound)
	_, err = repo.FindByCategory(ctx, "Food & Dining")
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
}

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedExpenses(t, NewExpenseRepository(db))
	require.NoError(t, NewBudgetRepository(db).Upsert(ctx, entity.NewBudget("Rent", dec("1000"))))

	ledger := NewLedgerRepository(db)

	t.Run("category summary orders by total", func(t *testing.T) {
		start, end := day("2025-09-01"), day("2025-10-31")
		summaries, err := ledger.CategorySummary(ctx, &start, &end)
		require.NoError(t, err)
		require.Len(t, summaries, 3)

		assert.Equal(t, "Orphaned Hobby", summaries[0].Category)
		assert.Equal(t, "Food & Dining", summaries[1].Category)
		assert.Equal(t, "12.8", summaries[1].Total.String())
		assert.Equal(t, 3, summaries[1].Count)
		assert.Equal(t, "Transportation", summaries[2].Category)
	})

	t.Run("category totals reconcile with range total", func(t *testing.T) {
		summaries, err := ledger.CategorySummary(ctx, nil, nil)
		require.NoError(t, err)
		total, err := ledger.Total(ctx, entity.ExpenseFilter{})
		require.NoError(t, err)

		sum := dec("0")
		for _, s := range summaries {
			sum = sum.Add(s.Total)
		}
		assert.True(t, sum.Equal(total), "sum %s != total %s", sum, total)
	})

	t.Run("monthly summary most recent first", func(t *testing.T) {
		months, err := ledger.MonthlySummary(ctx, nil)
		require.NoError(t, err)
		require.Len(t, months, 3)
		assert.Equal(t, "2025-10", months[0].Month)
		assert.Equal(t, "55.9", months[0].Total.String())
		assert.Equal(t, 3, months[0].Count)
		assert.Equal(t, "2025-09", months[1].Month)
		assert.Equal(t, "2025-08", months[2].Month)
	})

	t.Run("list honors limit and order", func(t *testing.T) {
		expenses, err := ledger.List(ctx, entity.ExpenseFilter{}, 1)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, int64(6), expenses[0].ID)
	})

	t.Run("budgets", func(t *testing.T) {
		budgets, err := ledger.Budgets(ctx)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Rent", budgets[0].Category)
	})
}

func TestLedgerRepository_MonthlySummaryCap(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewExpenseRepository(db)

	start := day("2024-01-10")
	expenses := make([]*entity.Expense, 0, 15)
	for i := 0; i < 15; i++ {
		expenses = append(expenses, entity.NewExpense(start.AddDate(0, i, 0), "Rent", dec("10"), "", ""))
	}
	require.NoError(t, repo.CreateBatch(ctx, expenses))

	months, err := NewLedgerRepository(db).MonthlySummary(ctx, nil)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, "2025-03", months[0].Month)
	assert.Equal(t, "2024-04", months[11].Month)
}

func TestLedgerRepository_MonthlySummaryEndBound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewExpenseRepository(db)

	start := day("2023-11-10")
	expenses := make([]*entity.Expense, 0, 25)
	for i := 0; i < 24; i++ {
		expenses = append(expenses, entity.NewExpense(start.AddDate(0, i, 0), "Rent", dec("10"), "", ""))
	}
	expenses = append(expenses, entity.NewExpense(day("2024-06-20"), "Rent", dec("500"), "", ""))
	require.NoError(t, repo.CreateBatch(ctx, expenses))

	end := day("2024-06-15")
	months, err := NewLedgerRepository(db).MonthlySummary(ctx, &end)
	require.NoError(t, err)
	require.Len(t, months, 8)
	assert.Equal(t, "2024-06", months[0].Month)
	assert.Equal(t, "10", months[0].Total.String())
	assert.Equal(t, 1, months[0].Count)
	assert.Equal(t, "2023-11", months[7].Month)
}
