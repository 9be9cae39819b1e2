package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentageOf returns part/whole*100, or zero when whole is not positive.
func percentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// safeDiv returns a/b, or zero when b is zero.
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

// populationStdDev is the population standard deviation. A window with
// fewer than two values has no spread.
func populationStdDev(values []decimal.Decimal) float64 {
	if len(values) < 2 {
		return 0
	}

	m, _ := mean(values).Float64()
	var sumSquares float64
	for _, v := range values {
		f, _ := v.Float64()
		sumSquares += (f - m) * (f - m)
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
