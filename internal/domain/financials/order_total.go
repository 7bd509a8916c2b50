package financials

import (
	"fmt"
	"strings"

	"repairdesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// OrderFinancials is derived from an order's line items and prepayment.
type OrderFinancials struct {
	Subtotal                 decimal.Decimal `json:"subtotal"`
	Prepayment               decimal.Decimal `json:"prepayment"`
	AmountDue                decimal.Decimal `json:"amount_due"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`

	ServicesTotal   decimal.Decimal `json:"services_total"`
	PartsTotal      decimal.Decimal `json:"parts_total"`
	CostTotal       decimal.Decimal `json:"cost_total"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
}

// CalculateOrderTotal sums the line items of an order and applies the prepayment.
//
// Any invalid line rejects the whole order. Monetary outputs are rounded once,
// after summing, so the result does not depend on line order.
func CalculateOrderTotal(lines []entities.LineItem, prepayment decimal.Decimal) (OrderFinancials, error) {
	var (
		services decimal.Decimal
		parts    decimal.Decimal
		cost     decimal.Decimal
		minutes  int
	)

	for i, li := range lines {
		if err := validateLine(i, li); err != nil {
			return OrderFinancials{}, err
		}
		qty := decimal.NewFromInt(int64(li.Quantity))
		amount := li.UnitPrice.Mul(qty)
		cost = cost.Add(li.UnitCost.Mul(qty))

		switch li.Kind {
		case entities.LineItemKindService:
			services = services.Add(amount)
			minutes += li.DurationMinutes * li.Quantity
		case entities.LineItemKindPart:
			parts = parts.Add(amount)
		}
	}

	if prepayment.IsNegative() {
		return OrderFinancials{}, fieldError("prepayment", "must not be negative")
	}

	subtotal := Round2(services.Add(parts))
	paid := Round2(prepayment)
	if paid.GreaterThan(subtotal) {
		return OrderFinancials{}, fieldError("prepayment", "prepayment exceeds order total")
	}

	costTotal := Round2(cost)
	return OrderFinancials{
		Subtotal:                 subtotal,
		Prepayment:               paid,
		AmountDue:                subtotal.Sub(paid),
		EstimatedDurationMinutes: minutes,
		ServicesTotal:            Round2(services),
		PartsTotal:               Round2(parts),
		CostTotal:                costTotal,
		EstimatedProfit:          subtotal.Sub(costTotal),
	}, nil
}

func validateLine(i int, li entities.LineItem) error {
	label := strings.TrimSpace(li.Name)
	if label == "" {
		label = fmt.Sprintf("line %d", i+1)
	}

	switch {
	case li.Kind != entities.LineItemKindService && li.Kind != entities.LineItemKindPart:
		return lineError(label, fmt.Sprintf("unknown kind %q", li.Kind))
	case !li.UnitPrice.IsPositive():
		return lineError(label, "unit price must be greater than zero")
	case li.Quantity < 1:
		return lineError(label, "quantity must be at least 1")
	case li.UnitCost.IsNegative():
		return lineError(label, "unit cost must not be negative")
	case li.WarrantyMonths < 0:
		return lineError(label, "warranty months must not be negative")
	case li.DurationMinutes < 0:
		return lineError(label, "duration minutes must not be negative")
	}
	return nil
}
