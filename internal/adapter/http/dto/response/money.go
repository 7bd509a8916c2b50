package response

import "github.com/shopspring/decimal"

// money renders a two-decimal amount as a JSON number.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
