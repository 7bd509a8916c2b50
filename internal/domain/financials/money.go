// Package financials holds the order and compensation arithmetic shared by the
// API, the analytics export and the operator CLI. Everything here is pure.
package financials

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds a monetary value to cents, half away from zero.
// Callers apply it once per aggregate, after summing.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

func maxZero(x decimal.Decimal) decimal.Decimal {
	if x.IsNegative() {
		return decimal.Zero
	}
	return x
}
