package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatusType classifies how much of a monthly limit has been spent.
type BudgetStatusType string

const (
	BudgetStatusOK       BudgetStatusType = "OK"
	BudgetStatusCaution  BudgetStatusType = "CAUTION"
	BudgetStatusWarning  BudgetStatusType = "WARNING"
	BudgetStatusExceeded BudgetStatusType = "EXCEEDED"
)

// Budget thresholds, as a percentage of the monthly limit.
var (
	BudgetCautionThreshold = decimal.NewFromInt(75)
	BudgetWarningThreshold = decimal.NewFromInt(90)
)

// Budget is a recurring calendar-month spending ceiling for one category.
// At most one budget exists per category.
type Budget struct {
	ID           int64
	Category     string
	MonthlyLimit decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(category string, monthlyLimit decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		Category:     category,
		MonthlyLimit: monthlyLimit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ClassifyBudgetUsage maps spent against limit onto a status. The
// percentage is spent/limit*100.
func ClassifyBudgetUsage(spent, limit decimal.Decimal) (BudgetStatusType, decimal.Decimal) {
	if !limit.IsPositive() {
		return BudgetStatusOK, decimal.Zero
	}

	percentage := spent.Mul(decimal.NewFromInt(100)).Div(limit)
	switch {
	case spent.GreaterThan(limit):
		return BudgetStatusExceeded, percentage
	case percentage.GreaterThanOrEqual(BudgetWarningThreshold):
		return BudgetStatusWarning, percentage
	case percentage.GreaterThanOrEqual(BudgetCautionThreshold):
		return BudgetStatusCaution, percentage
	default:
		return BudgetStatusOK, percentage
	}
}
