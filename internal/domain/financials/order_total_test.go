package financials

import (
	"errors"
	"strings"
	"testing"

	"repairdesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func service(name, price string, qty, minutes int) entities.LineItem {
	return entities.LineItem{Kind: entities.LineItemKindService, Name: name, UnitPrice: d(price), Quantity: qty, DurationMinutes: minutes}
}

func part(name, price, cost string, qty int) entities.LineItem {
	return entities.LineItem{Kind: entities.LineItemKindPart, Name: name, UnitPrice: d(price), UnitCost: d(cost), Quantity: qty}
}

func TestCalculateOrderTotal(t *testing.T) {
	t.Run("services and parts with prepayment", func(t *testing.T) {
		lines := []entities.LineItem{
			service("Diagnostics", "50", 2, 30),
			service("Screen replacement", "30", 1, 45),
			part("Screen", "15", "9.5", 4),
		}
		res, err := CalculateOrderTotal(lines, d("40"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Subtotal.Equal(d("190")) || !res.AmountDue.Equal(d("150")) || !res.Prepayment.Equal(d("40")) {
			t.Fatalf("unexpected totals: %+v", res)
		}
		if res.EstimatedDurationMinutes != 105 {
			t.Fatalf("expected 105 minutes, got %d", res.EstimatedDurationMinutes)
		}
		if !res.ServicesTotal.Equal(d("130")) || !res.PartsTotal.Equal(d("60")) {
			t.Fatalf("unexpected breakdown: %+v", res)
		}
		if !res.CostTotal.Equal(d("38")) || !res.EstimatedProfit.Equal(d("152")) {
			t.Fatalf("unexpected cost/profit: %+v", res)
		}
	})

	t.Run("empty order", func(t *testing.T) {
		res, err := CalculateOrderTotal(nil, decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Subtotal.IsZero() || !res.AmountDue.IsZero() {
			t.Fatalf("expected zero totals, got %+v", res)
		}
	})

	t.Run("line order does not matter", func(t *testing.T) {
		lines := []entities.LineItem{
			part("Cable", "0.1", "0", 3),
			service("Cleaning", "19.99", 1, 10),
			part("Thermal paste", "3.335", "1", 3),
		}
		reversed := []entities.LineItem{lines[2], lines[1], lines[0]}
		a, err := CalculateOrderTotal(lines, decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := CalculateOrderTotal(reversed, decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !a.Subtotal.Equal(b.Subtotal) || !a.Subtotal.Equal(d("30.3")) {
			t.Fatalf("expected 30.30 both ways, got %s and %s", a.Subtotal, b.Subtotal)
		}
	})

	t.Run("rounds once at the end", func(t *testing.T) {
		lines := []entities.LineItem{
			part("Screw", "0.333", "0", 1),
			part("Washer", "0.333", "0", 1),
			part("Nut", "0.333", "0", 1),
		}
		res, err := CalculateOrderTotal(lines, decimal.Zero)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Subtotal.Equal(d("1")) {
			t.Fatalf("expected 1.00, got %s", res.Subtotal)
		}
	})

	t.Run("identical input gives identical output", func(t *testing.T) {
		lines := []entities.LineItem{service("Repair", "120.5", 1, 60)}
		a, _ := CalculateOrderTotal(lines, d("20"))
		b, _ := CalculateOrderTotal(lines, d("20"))
		if !a.Subtotal.Equal(b.Subtotal) || !a.AmountDue.Equal(b.AmountDue) || a.EstimatedDurationMinutes != b.EstimatedDurationMinutes {
			t.Fatalf("results differ: %+v vs %+v", a, b)
		}
	})

	t.Run("prepayment equal to subtotal", func(t *testing.T) {
		res, err := CalculateOrderTotal([]entities.LineItem{service("Repair", "80", 1, 0)}, d("80"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.AmountDue.IsZero() {
			t.Fatalf("expected nothing due, got %s", res.AmountDue)
		}
	})
}

func TestCalculateOrderTotal_Validation(t *testing.T) {
	cases := []struct {
		name       string
		lines      []entities.LineItem
		prepayment string
		contains   string
	}{
		{
			name:       "zero price names the line",
			lines:      []entities.LineItem{service("Repair", "10", 1, 0), part("Free sticker", "0", "0", 1)},
			prepayment: "0",
			contains:   `"Free sticker"`,
		},
		{
			name:       "unnamed line uses its position",
			lines:      []entities.LineItem{service("Repair", "10", 1, 0), part("", "-3", "0", 1)},
			prepayment: "0",
			contains:   `"line 2"`,
		},
		{
			name:       "zero quantity",
			lines:      []entities.LineItem{part("Battery", "40", "20", 0)},
			prepayment: "0",
			contains:   "quantity",
		},
		{
			name:       "negative cost",
			lines:      []entities.LineItem{part("Battery", "40", "-1", 1)},
			prepayment: "0",
			contains:   "unit cost",
		},
		{
			name:       "negative warranty",
			lines:      []entities.LineItem{{Kind: entities.LineItemKindService, Name: "Repair", UnitPrice: d("10"), Quantity: 1, WarrantyMonths: -1}},
			prepayment: "0",
			contains:   "warranty",
		},
		{
			name:       "unknown kind",
			lines:      []entities.LineItem{{Kind: "bundle", Name: "Combo", UnitPrice: d("10"), Quantity: 1}},
			prepayment: "0",
			contains:   "unknown kind",
		},
		{
			name:       "negative prepayment",
			lines:      []entities.LineItem{service("Repair", "10", 1, 0)},
			prepayment: "-1",
			contains:   "prepayment",
		},
		{
			name:       "prepayment above total",
			lines:      []entities.LineItem{service("Repair", "10", 1, 0)},
			prepayment: "10.01",
			contains:   "prepayment exceeds order total",
		},
		{
			name:       "prepayment on empty order",
			lines:      nil,
			prepayment: "5",
			contains:   "prepayment exceeds order total",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateOrderTotal(tc.lines, d(tc.prepayment))
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Fatalf("expected %q in %q", tc.contains, err.Error())
			}
		})
	}
}
