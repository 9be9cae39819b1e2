package expense

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// DefaultSampleMonths is the number of months seeded when none is requested.
const DefaultSampleMonths = 6

type sampleTemplate struct {
	category     string
	min, max     float64
	descriptions []string
}

var sampleTemplates = []sampleTemplate{
	{"Food & Dining", 15, 50, []string{"Breakfast", "Lunch", "Dinner", "Coffee", "Restaurant"}},
	{"Transportation", 10, 30, []string{"Gas", "Uber", "Bus fare", "Parking", "Taxi"}},
	{"Shopping", 30, 150, []string{"Clothes", "Electronics", "Shoes", "Accessories", "Books"}},
	{"Groceries", 40, 100, []string{"Weekly groceries", "Fruits & vegetables", "Snacks", "Beverages"}},
	{"Entertainment", 15, 60, []string{"Movie", "Concert", "Streaming", "Games", "Sports event"}},
	{"Bills & Utilities", 50, 200, []string{"Electricity", "Water", "Internet", "Phone", "Insurance"}},
}

var samplePaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "UPI"}

// SeedSampleDataInput represents the input for generating sample expenses.
type SeedSampleDataInput struct {
	Months        int // Defaults to DefaultSampleMonths
	Seed          uint64
	ReferenceDate time.Time
}

// SeedSampleDataOutput reports how many sample expenses were stored.
type SeedSampleDataOutput struct {
	Created int
	Months  int
}

// SeedSampleDataUseCase fills the ledger with 15 to 25 templated expenses per
// month for the months ending at the reference date. The same seed and
// reference date always produce the same expenses.
type SeedSampleDataUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
}

// NewSeedSampleDataUseCase creates a new SeedSampleDataUseCase instance.
func NewSeedSampleDataUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
) *SeedSampleDataUseCase {
	return &SeedSampleDataUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute generates and stores the sample expenses.
func (uc *SeedSampleDataUseCase) Execute(ctx context.Context, input SeedSampleDataInput) (*SeedSampleDataOutput, error) {
	months := input.Months
	if months <= 0 {
		months = DefaultSampleMonths
	}
	if input.ReferenceDate.IsZero() {
		return nil, invalidDate("reference date is required")
	}

	if err := uc.ensureCategories(ctx); err != nil {
		return nil, err
	}

	expenses := GenerateSampleExpenses(input.Seed, months, input.ReferenceDate)
	if err := uc.expenseRepo.CreateBatch(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to store sample expenses: %w", err)
	}

	slog.Info("Seeded sample expenses", "count", len(expenses), "months", months)

	return &SeedSampleDataOutput{
		Created: len(expenses),
		Months:  months,
	}, nil
}

func (uc *SeedSampleDataUseCase) ensureCategories(ctx context.Context) error {
	icons := make(map[string]string)
	for _, c := range entity.DefaultCategories() {
		icons[c.Name] = c.Icon
	}

	for _, tpl := range sampleTemplates {
		exists, err := uc.categoryRepo.ExistsByName(ctx, tpl.category)
		if err != nil {
			return fmt.Errorf("failed to check category %q: %w", tpl.category, err)
		}
		if exists {
			continue
		}
		if err := uc.categoryRepo.Create(ctx, entity.NewCategory(tpl.category, icons[tpl.category])); err != nil {
			return fmt.Errorf("failed to create category %q: %w", tpl.category, err)
		}
	}
	return nil
}

// GenerateSampleExpenses builds the sample expenses without storing them.
// Dates that would fall after ref are moved back to ref.
func GenerateSampleExpenses(seed uint64, months int, ref time.Time) []*entity.Expense {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	ref = dateutil.Truncate(ref)

	expenses := make([]*entity.Expense, 0, months*25)
	for offset := 0; offset < months; offset++ {
		month := dateutil.FirstOfMonth(ref).AddDate(0, -offset, 0)
		count := 15 + rng.IntN(11)

		for i := 0; i < count; i++ {
			tpl := sampleTemplates[rng.IntN(len(sampleTemplates))]
			amount := decimal.NewFromFloat(tpl.min + rng.Float64()*(tpl.max-tpl.min)).Round(2)

			date := dateutil.Date(month.Year(), month.Month(), 1+rng.IntN(28))
			if date.After(ref) {
				date = ref
			}

			expenses = append(expenses, entity.NewExpense(
				date,
				tpl.category,
				amount,
				tpl.descriptions[rng.IntN(len(tpl.descriptions))],
				samplePaymentMethods[rng.IntN(len(samplePaymentMethods))],
			))
		}
	}
	return expenses
}
