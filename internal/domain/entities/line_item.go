package entities

import "github.com/shopspring/decimal"

// LineItemKind tells a billable service apart from a part taken from stock.
type LineItemKind string

const (
	LineItemKindService LineItemKind = "service"
	LineItemKindPart    LineItemKind = "part"
)

// LineItem is a service or part attached to an order.
//
// UnitCost is the internal cost used for profit; it is never charged to the client.
// WarrantyMonths and DurationMinutes only apply to services.
type LineItem struct {
	Kind            LineItemKind    `json:"kind"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Quantity        int             `json:"quantity"`
	WarrantyMonths  int             `json:"warranty_months"`
	DurationMinutes int             `json:"duration_minutes"`
}
