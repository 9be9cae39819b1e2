package model

import "github.com/shopspring/decimal"

// Amounts are stored as integer cents so SQL sums stay exact on every dialect.

// ToCents converts an amount to whole cents, rounding half away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// FromCents converts whole cents back to an amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
