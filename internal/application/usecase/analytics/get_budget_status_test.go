package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestGetBudgetStatus_Exceeded(t *testing.T) {
	ledger := newFakeLedger().
		budget("Food", "100").
		add("2025-09-30", "Food", "500").
		add("2025-10-05", "Food", "70").
		add("2025-10-25", "Food", "50").
		add("2025-10-06", "Rent", "900")

	out, err := NewGetBudgetStatusUseCase(ledger).Execute(context.Background(), GetBudgetStatusInput{
		ReferenceDate: date("2025-10-10"),
	})
	require.NoError(t, err)
	require.Len(t, out.Budgets, 1)

	status := out.Budgets[0]
	assert.Equal(t, "Food", status.Category)
	assert.Equal(t, entity.BudgetStatusExceeded, status.Status)
	assertDecimal(t, "120", status.Spent)
	assertDecimal(t, "-20", status.Remaining)
	assertDecimal(t, "120", status.Percentage)
	assert.Equal(t, date("2025-10-31"), out.MonthEnd)
}

func TestGetBudgetStatus_Thresholds(t *testing.T) {
	tests := []struct {
		spent      string
		wantStatus entity.BudgetStatusType
	}{
		{spent: "0", wantStatus: entity.BudgetStatusOK},
		{spent: "74.99", wantStatus: entity.BudgetStatusOK},
		{spent: "75", wantStatus: entity.BudgetStatusCaution},
		{spent: "89.99", wantStatus: entity.BudgetStatusCaution},
		{spent: "90", wantStatus: entity.BudgetStatusWarning},
		{spent: "100", wantStatus: entity.BudgetStatusWarning},
		{spent: "100.01", wantStatus: entity.BudgetStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			ledger := newFakeLedger().budget("Groceries", "100")
			if !dec(tt.spent).IsZero() {
				ledger.add("2025-10-02", "Groceries", tt.spent)
			}

			out, err := NewGetBudgetStatusUseCase(ledger).Execute(context.Background(), GetBudgetStatusInput{
				ReferenceDate: date("2025-10-19"),
			})
			require.NoError(t, err)
			require.Len(t, out.Budgets, 1)
			assert.Equal(t, tt.wantStatus, out.Budgets[0].Status)
		})
	}
}

func TestGetBudgetStatus_NoBudgets(t *testing.T) {
	out, err := NewGetBudgetStatusUseCase(newFakeLedger()).Execute(context.Background(), GetBudgetStatusInput{
		ReferenceDate: date("2025-10-19"),
	})
	require.NoError(t, err)
	assert.Empty(t, out.Budgets)
}

func TestGetBudgetStatus_SingleCategory(t *testing.T) {
	ledger := newFakeLedger().
		budget("Food", "100").
		budget("Rent", "1000").
		add("2025-10-05", "Food", "80").
		add("2025-10-01", "Rent", "950")

	uc := NewGetBudgetStatusUseCase(ledger)

	out, err := uc.Execute(context.Background(), GetBudgetStatusInput{
		ReferenceDate: date("2025-10-10"),
		Category:      "Rent",
	})
	require.NoError(t, err)
	require.Len(t, out.Budgets, 1)
	assert.Equal(t, "Rent", out.Budgets[0].Category)
	assert.Equal(t, entity.BudgetStatusWarning, out.Budgets[0].Status)

	out, err = uc.Execute(context.Background(), GetBudgetStatusInput{
		ReferenceDate: date("2025-10-10"),
		Category:      "Travel",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Budgets)

	out, err = uc.Execute(context.Background(), GetBudgetStatusInput{
		ReferenceDate: date("2025-10-10"),
	})
	require.NoError(t, err)
	assert.Len(t, out.Budgets, 2)
}
