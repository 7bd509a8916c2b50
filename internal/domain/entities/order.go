package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the kanban column an order sits in.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusClosed     OrderStatus = "closed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// Order is a repair job persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (location_id-completed_at-index): location_id, completed_at
//
// Monetary fields are stored as decimal strings. EstimatedCost and FinalCost are
// the order subtotal at creation; FinalCost may be overridden when the order closes.
// ServicePrice and PartsPrice split the subtotal; CostTotal is the internal cost of all lines.
type Order struct {
	ID             string      `json:"id"`
	LocationID     string      `json:"location_id"`
	ClientID       string      `json:"client_id"`
	TechnicianID   string      `json:"technician_id"`
	TechnicianName string      `json:"technician_name"`
	LeadSource     string      `json:"lead_source"`
	Status         OrderStatus `json:"status"`
	Lines          []LineItem  `json:"lines"`

	EstimatedCost            decimal.Decimal `json:"estimated_cost"`
	FinalCost                decimal.Decimal `json:"final_cost"`
	Prepayment               decimal.Decimal `json:"prepayment"`
	ServicePrice             decimal.Decimal `json:"service_price"`
	PartsPrice               decimal.Decimal `json:"parts_price"`
	CostTotal                decimal.Decimal `json:"cost_total"`
	TotalProfit              decimal.Decimal `json:"total_profit"`
	MasterCommission         decimal.Decimal `json:"master_commission"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`

	AcceptedAt  time.Time `json:"accepted_at"`
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AmountDue is what the client still owes once the prepayment is deducted.
func (o Order) AmountDue() decimal.Decimal {
	due := o.FinalCost.Sub(o.Prepayment)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// IsFinal reports whether the order can no longer change.
func (o Order) IsFinal() bool {
	return o.Status == OrderStatusClosed || o.Status == OrderStatusCanceled
}
