package request

import "github.com/shopspring/decimal"

// BonusCalculateRequest is the what-if calculator input.
type BonusCalculateRequest struct {
	LocationID string          `json:"location_id"`
	TotalLabor decimal.Decimal `json:"total_labor"`
}
