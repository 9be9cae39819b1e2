package analytics

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestGetCategoryBreakdown_DefaultRange(t *testing.T) {
	ledger := newFakeLedger().
		add("2025-09-30", "Rent", "1000").
		add("2025-10-01", "Groceries", "30").
		add("2025-10-03", "Groceries", "50").
		add("2025-10-04", "Unlisted Hobby", "20").
		add("2025-10-20", "Travel", "400")
	uc := NewGetCategoryBreakdownUseCase(ledger)

	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{ReferenceDate: date("2025-10-19")})
	require.NoError(t, err)

	assert.Equal(t, date("2025-10-01"), out.StartDate)
	assert.Equal(t, date("2025-10-19"), out.EndDate)
	assertDecimal(t, "100", out.Total)
	require.Len(t, out.Categories, 2)

	assert.Equal(t, "Groceries", out.Categories[0].Category)
	assert.Equal(t, 2, out.Categories[0].Count)
	assertDecimal(t, "80", out.Categories[0].Total)
	assertDecimal(t, "80", out.Categories[0].Percentage)
	assertDecimal(t, "40", out.Categories[0].AvgPerTransaction)

	assert.Equal(t, "Unlisted Hobby", out.Categories[1].Category)
	assertDecimal(t, "20", out.Categories[1].Percentage)
}

func TestGetCategoryBreakdown_ExplicitRange(t *testing.T) {
	ledger := newFakeLedger().
		add("2025-08-31", "Rent", "1000").
		add("2025-09-01", "Rent", "900").
		add("2025-09-30", "Food & Dining", "100").
		add("2025-10-01", "Food & Dining", "5")
	uc := NewGetCategoryBreakdownUseCase(ledger)

	start, end := date("2025-09-01"), date("2025-09-30")
	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assertDecimal(t, "1000", out.Total)
	require.Len(t, out.Categories, 2)
	assertDecimal(t, "90", out.Categories[0].Percentage)
	assertDecimal(t, "10", out.Categories[1].Percentage)
}

func TestGetCategoryBreakdown_EmptyRange(t *testing.T) {
	uc := NewGetCategoryBreakdownUseCase(newFakeLedger())

	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{ReferenceDate: date("2025-10-19")})
	require.NoError(t, err)
	assert.Empty(t, out.Categories)
	assert.True(t, out.Total.IsZero())
}

func TestGetCategoryBreakdown_RejectsInvertedRange(t *testing.T) {
	uc := NewGetCategoryBreakdownUseCase(newFakeLedger())

	start, end := date("2025-10-10"), date("2025-10-01")
	_, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{StartDate: &start, EndDate: &end})

	var anlErr *domainerror.AnalyticsError
	require.True(t, errors.As(err, &anlErr))
	assert.Equal(t, domainerror.ErrCodeInvalidDateRange, anlErr.Code)
	assert.ErrorIs(t, err, domainerror.ErrInvalidDateRange)
}

func TestCategoryTotalsReconcileWithRangeTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	categories := []string{"Groceries", "Rent", "Travel", "Shopping", "Orphan"}

	ledger := newFakeLedger()
	day := date("2025-01-01")
	for i := 0; i < 300; i++ {
		d := day.AddDate(0, 0, rng.Intn(290))
		cents := rng.Int63n(50000) + 1
		ledger.add(d.Format("2006-01-02"), categories[rng.Intn(len(categories))], decimal.New(cents, -2).String())
	}

	ranges := []struct {
		start, end time.Time
	}{
		{date("2025-01-01"), date("2025-12-31")},
		{date("2025-03-15"), date("2025-04-15")},
		{date("2025-06-01"), date("2025-06-01")},
	}

	ctx := context.Background()
	uc := NewGetCategoryBreakdownUseCase(ledger)
	for _, r := range ranges {
		start, end := r.start, r.end
		out, err := uc.Execute(ctx, GetCategoryBreakdownInput{StartDate: &start, EndDate: &end})
		require.NoError(t, err)

		sum := decimal.Zero
		for _, c := range out.Categories {
			sum = sum.Add(c.Total)
			assert.True(t, c.Percentage.LessThanOrEqual(decimal.NewFromInt(100)))
			assert.GreaterOrEqual(t, c.Count, 1)
		}

		total, err := ledger.Total(ctx, entity.ExpenseFilter{Start: &start, End: &end})
		require.NoError(t, err)
		assert.True(t, total.Equal(sum), "category totals %s do not reconcile with %s", sum, total)
	}
}
