package request

import (
	"strings"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/shopspring/decimal"
)

// LineItemRequest accepts money as JSON numbers or decimal strings.
type LineItemRequest struct {
	Kind            string          `json:"kind"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Quantity        int             `json:"quantity"`
	WarrantyMonths  int             `json:"warranty_months"`
	DurationMinutes int             `json:"duration_minutes"`
}

func (r LineItemRequest) ToEntity() entities.LineItem {
	return entities.LineItem{
		Kind:            entities.LineItemKind(strings.ToLower(strings.TrimSpace(r.Kind))),
		Name:            strings.TrimSpace(r.Name),
		UnitPrice:       r.UnitPrice,
		UnitCost:        r.UnitCost,
		Quantity:        r.Quantity,
		WarrantyMonths:  r.WarrantyMonths,
		DurationMinutes: r.DurationMinutes,
	}
}

func toLineItems(lines []LineItemRequest) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ToEntity())
	}
	return out
}

// QuoteRequest is also the body of PUT /orders/{id}/lines.
type QuoteRequest struct {
	Lines      []LineItemRequest `json:"lines" binding:"required"`
	Prepayment decimal.Decimal   `json:"prepayment"`
}

func (r QuoteRequest) LineItems() []entities.LineItem {
	return toLineItems(r.Lines)
}

type CreateOrderRequest struct {
	LocationID     string            `json:"location_id"`
	ClientID       string            `json:"client_id"`
	TechnicianID   string            `json:"technician_id"`
	TechnicianName string            `json:"technician_name"`
	LeadSource     string            `json:"lead_source"`
	Lines          []LineItemRequest `json:"lines" binding:"required"`
	Prepayment     decimal.Decimal   `json:"prepayment"`
}

// ToInput builds the use case input for the location the caller is scoped to.
func (r CreateOrderRequest) ToInput(locationID string) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		LocationID:     locationID,
		ClientID:       r.ClientID,
		TechnicianID:   r.TechnicianID,
		TechnicianName: r.TechnicianName,
		LeadSource:     r.LeadSource,
		Lines:          toLineItems(r.Lines),
		Prepayment:     r.Prepayment,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) OrderStatus() entities.OrderStatus {
	return entities.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

// CloseOrderRequest leaves omitted fields to the order's current figures.
type CloseOrderRequest struct {
	FinalCost        *decimal.Decimal `json:"final_cost"`
	MasterCommission *decimal.Decimal `json:"master_commission"`
	CompletedAt      *time.Time       `json:"completed_at"`
}

func (r CloseOrderRequest) ToInput() usecase.CloseOrderInput {
	in := usecase.CloseOrderInput{
		FinalCost:        r.FinalCost,
		MasterCommission: r.MasterCommission,
	}
	if r.CompletedAt != nil {
		in.CompletedAt = *r.CompletedAt
	}
	return in
}
