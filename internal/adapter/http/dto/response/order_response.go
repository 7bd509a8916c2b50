package response

import (
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/domain/financials"
)

type LineItemResponse struct {
	Kind            string  `json:"kind"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	UnitCost        float64 `json:"unit_cost"`
	Quantity        int     `json:"quantity"`
	WarrantyMonths  int     `json:"warranty_months,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
}

type FinancialsResponse struct {
	Subtotal                 float64 `json:"subtotal"`
	Prepayment               float64 `json:"prepayment"`
	AmountDue                float64 `json:"amount_due"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
	ServicesTotal            float64 `json:"services_total"`
	PartsTotal               float64 `json:"parts_total"`
	CostTotal                float64 `json:"cost_total"`
	EstimatedProfit          float64 `json:"estimated_profit"`
}

func FromOrderFinancials(f financials.OrderFinancials) FinancialsResponse {
	return FinancialsResponse{
		Subtotal:                 money(f.Subtotal),
		Prepayment:               money(f.Prepayment),
		AmountDue:                money(f.AmountDue),
		EstimatedDurationMinutes: f.EstimatedDurationMinutes,
		ServicesTotal:            money(f.ServicesTotal),
		PartsTotal:               money(f.PartsTotal),
		CostTotal:                money(f.CostTotal),
		EstimatedProfit:          money(f.EstimatedProfit),
	}
}

type OrderResponse struct {
	ID             string             `json:"id"`
	LocationID     string             `json:"location_id"`
	ClientID       string             `json:"client_id,omitempty"`
	TechnicianID   string             `json:"technician_id,omitempty"`
	TechnicianName string             `json:"technician_name,omitempty"`
	LeadSource     string             `json:"lead_source,omitempty"`
	Status         string             `json:"status"`
	Lines          []LineItemResponse `json:"lines"`

	EstimatedCost            float64 `json:"estimated_cost"`
	FinalCost                float64 `json:"final_cost"`
	Prepayment               float64 `json:"prepayment"`
	AmountDue                float64 `json:"amount_due"`
	ServicePrice             float64 `json:"service_price"`
	PartsPrice               float64 `json:"parts_price"`
	CostTotal                float64 `json:"cost_total"`
	TotalProfit              float64 `json:"total_profit"`
	MasterCommission         float64 `json:"master_commission"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`

	AcceptedAt  time.Time  `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	lines := make([]LineItemResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, LineItemResponse{
			Kind:            string(l.Kind),
			Name:            l.Name,
			UnitPrice:       money(l.UnitPrice),
			UnitCost:        money(l.UnitCost),
			Quantity:        l.Quantity,
			WarrantyMonths:  l.WarrantyMonths,
			DurationMinutes: l.DurationMinutes,
		})
	}
	res := OrderResponse{
		ID:                       o.ID,
		LocationID:               o.LocationID,
		ClientID:                 o.ClientID,
		TechnicianID:             o.TechnicianID,
		TechnicianName:           o.TechnicianName,
		LeadSource:               o.LeadSource,
		Status:                   string(o.Status),
		Lines:                    lines,
		EstimatedCost:            money(o.EstimatedCost),
		FinalCost:                money(o.FinalCost),
		Prepayment:               money(o.Prepayment),
		AmountDue:                money(o.AmountDue()),
		ServicePrice:             money(o.ServicePrice),
		PartsPrice:               money(o.PartsPrice),
		CostTotal:                money(o.CostTotal),
		TotalProfit:              money(o.TotalProfit),
		MasterCommission:         money(o.MasterCommission),
		EstimatedDurationMinutes: o.EstimatedDurationMinutes,
		AcceptedAt:               o.AcceptedAt,
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
	}
	if !o.CompletedAt.IsZero() {
		completed := o.CompletedAt
		res.CompletedAt = &completed
	}
	return res
}
