package analytics

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// fakeLedger is an in-memory LedgerReader honoring the ordering and
// inclusivity rules of the real store.
type fakeLedger struct {
	expenses []*entity.Expense
	budgets  []*entity.Budget
	monthly  []entity.MonthlySummary // overrides the derived history when set
	err      error
	calls    atomic.Int32
	nextID   int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{}
}

func (f *fakeLedger) add(date string, category string, amount string) *fakeLedger {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	f.nextID++
	f.expenses = append(f.expenses, &entity.Expense{
		ID:            f.nextID,
		Date:          d,
		Category:      category,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: entity.DefaultPaymentMethod,
	})
	return f
}

func (f *fakeLedger) budget(category string, limit string) *fakeLedger {
	f.budgets = append(f.budgets, entity.NewBudget(category, decimal.RequireFromString(limit)))
	return f
}

func (f *fakeLedger) match(e *entity.Expense, filter entity.ExpenseFilter) bool {
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
		if !strings.Contains(strings.ToLower(e.Description), kw) && !strings.Contains(strings.ToLower(e.Category), kw) {
			return false
		}
	}
	return true
}

func (f *fakeLedger) Total(_ context.Context, filter entity.ExpenseFilter) (decimal.Decimal, error) {
	f.calls.Add(1)
	if f.err != nil {
		return decimal.Zero, f.err
	}
	total := decimal.Zero
	for _, e := range f.expenses {
		if f.match(e, filter) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (f *fakeLedger) List(_ context.Context, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*entity.Expense, 0)
	for _, e := range f.expenses {
		if f.match(e, filter) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
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

func (f *fakeLedger) CategorySummary(_ context.Context, start, end *time.Time) ([]entity.CategorySummary, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	index := map[string]int{}
	summaries := make([]entity.CategorySummary, 0)
	for _, e := range f.expenses {
		if !f.match(e, entity.ExpenseFilter{Start: start, End: end}) {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(summaries)
			index[e.Category] = i
			summaries = append(summaries, entity.CategorySummary{Category: e.Category, Total: decimal.Zero})
		}
		summaries[i].Total = summaries[i].Total.Add(e.Amount)
		summaries[i].Count++
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total.GreaterThan(summaries[j].Total)
	})
	return summaries, nil
}

func (f *fakeLedger) MonthlySummary(_ context.Context, end *time.Time) ([]entity.MonthlySummary, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if f.monthly != nil {
		return f.monthly, nil
	}
	index := map[string]int{}
	months := make([]entity.MonthlySummary, 0)
	for _, e := range f.expenses {
		if !f.match(e, entity.ExpenseFilter{End: end}) {
			continue
		}
		label := dateutil.MonthLabel(e.Date)
		i, ok := index[label]
		if !ok {
			i = len(months)
			index[label] = i
			months = append(months, entity.MonthlySummary{Month: label, Total: decimal.Zero})
		}
		months[i].Total = months[i].Total.Add(e.Amount)
		months[i].Count++
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month > months[j].Month })
	if len(months) > MonthlyHistoryCap {
		months = months[:MonthlyHistoryCap]
	}
	return months, nil
}

func (f *fakeLedger) Budgets(_ context.Context) ([]*entity.Budget, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.budgets, nil
}

func date(s string) time.Time {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
