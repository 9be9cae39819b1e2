// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is applied when an expense is recorded without one.
const DefaultPaymentMethod = "Cash"

// Expense represents a single recorded spending transaction in the ledger.
type Expense struct {
	ID            int64
	Date          time.Time // Calendar date, clock dropped
	Category      string    // Free reference to Category.Name, may be orphaned
	Amount        decimal.Decimal
	Description   string
	PaymentMethod string
	CreatedAt     time.Time
}

// NewExpense creates a new Expense entity. The ID is assigned by the store.
func NewExpense(
	date time.Time,
	category string,
	amount decimal.Decimal,
	description string,
	paymentMethod string,
) *Expense {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	return &Expense{
		Date:          date,
		Category:      category,
		Amount:        amount,
		Description:   description,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().UTC(),
	}
}

// ExpenseFilter scopes ledger queries. Nil bounds are unbounded and both
// bounds are inclusive calendar dates.
type ExpenseFilter struct {
	Start    *time.Time
	End      *time.Time
	Category string
	Keyword  string // Case-insensitive match on description or category
}

// CategorySummary is the aggregate of one category over a date range.
type CategorySummary struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// MonthlySummary is the aggregate of one calendar month.
type MonthlySummary struct {
	Month string // YYYY-MM
	Total decimal.Decimal
	Count int
}
