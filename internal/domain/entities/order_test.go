package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrder_AmountDue(t *testing.T) {
	cases := []struct {
		name       string
		finalCost  string
		prepayment string
		want       string
	}{
		{name: "no prepayment", finalCost: "190", prepayment: "0", want: "190"},
		{name: "partial prepayment", finalCost: "190", prepayment: "40", want: "150"},
		{name: "final cost lowered below prepayment", finalCost: "30", prepayment: "40", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := Order{FinalCost: decimal.RequireFromString(tc.finalCost), Prepayment: decimal.RequireFromString(tc.prepayment)}
			if got := o.AmountDue(); !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestOrder_IsFinal(t *testing.T) {
	for status, want := range map[OrderStatus]bool{
		OrderStatusNew:        false,
		OrderStatusInProgress: false,
		OrderStatusReady:      false,
		OrderStatusClosed:     true,
		OrderStatusCanceled:   true,
	} {
		if got := (Order{Status: status}).IsFinal(); got != want {
			t.Fatalf("status %s: expected %v, got %v", status, want, got)
		}
	}
}
