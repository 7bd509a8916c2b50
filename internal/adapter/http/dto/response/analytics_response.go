package response

import (
	"time"

	"repairdesk/internal/domain/financials"
	"repairdesk/internal/usecase"
)

type PeriodTotalsResponse struct {
	Orders               int     `json:"orders"`
	Revenue              float64 `json:"revenue"`
	Profit               float64 `json:"profit"`
	MasterCommission     float64 `json:"master_commission"`
	AverageTicket        float64 `json:"average_ticket"`
	AverageRepairMinutes int64   `json:"average_repair_minutes"`
}

type TechnicianLaborResponse struct {
	TechnicianID     string  `json:"technician_id"`
	TechnicianName   string  `json:"technician_name"`
	TotalLabor       float64 `json:"total_labor"`
	MasterCommission float64 `json:"master_commission"`
	Orders           int     `json:"orders"`
}

type LeadSourceResponse struct {
	Source  string  `json:"source"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Orders  int     `json:"orders"`
}

type DailyResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Orders  int     `json:"orders"`
}

type PartUsageResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Orders   int    `json:"orders"`
}

type TechnicianBonusResponse struct {
	TechnicianID         string  `json:"technician_id"`
	TechnicianName       string  `json:"technician_name,omitempty"`
	Orders               int     `json:"orders"`
	TotalLabor           float64 `json:"total_labor"`
	BonusAmount          float64 `json:"bonus_amount"`
	QuotaProgressPercent int64   `json:"quota_progress_percent"`
	Status               string  `json:"status"`
}

type PeriodReportResponse struct {
	LocationID   string                    `json:"location_id"`
	From         time.Time                 `json:"from"`
	To           time.Time                 `json:"to"`
	Totals       PeriodTotalsResponse      `json:"totals"`
	ByTechnician []TechnicianLaborResponse `json:"by_technician"`
	ByLeadSource []LeadSourceResponse      `json:"by_lead_source"`
	ByDay        []DailyResponse           `json:"by_day"`
	TopParts     []PartUsageResponse       `json:"top_parts"`
	Technicians  []TechnicianBonusResponse `json:"technicians"`
}

type BonusPolicyResponse struct {
	QuotaAmount float64 `json:"quota_amount"`
	BonusRate   float64 `json:"bonus_rate"`
}

type BonusReportResponse struct {
	LocationID  string                    `json:"location_id"`
	Month       string                    `json:"month"`
	Policy      BonusPolicyResponse       `json:"policy"`
	Technicians []TechnicianBonusResponse `json:"technicians"`
}

func FromPeriodReport(r usecase.PeriodReport) PeriodReportResponse {
	a := r.Aggregate
	res := PeriodReportResponse{
		LocationID: r.LocationID,
		From:       r.From,
		To:         r.To,
		Totals: PeriodTotalsResponse{
			Orders:               a.Totals.Orders,
			Revenue:              money(a.Totals.Revenue),
			Profit:               money(a.Totals.Profit),
			MasterCommission:     money(a.Totals.MasterCommission),
			AverageTicket:        money(a.Totals.AverageTicket),
			AverageRepairMinutes: a.Totals.AverageRepairMinutes,
		},
		ByTechnician: make([]TechnicianLaborResponse, 0, len(a.ByTechnician)),
		ByLeadSource: make([]LeadSourceResponse, 0, len(a.ByLeadSource)),
		ByDay:        make([]DailyResponse, 0, len(a.ByDay)),
		TopParts:     make([]PartUsageResponse, 0, len(a.TopParts)),
		Technicians:  FromTechnicianSummaries(r.Technicians),
	}
	for _, t := range a.ByTechnician {
		res.ByTechnician = append(res.ByTechnician, TechnicianLaborResponse{
			TechnicianID:     t.TechnicianID,
			TechnicianName:   t.TechnicianName,
			TotalLabor:       money(t.TotalLabor),
			MasterCommission: money(t.MasterCommission),
			Orders:           t.Orders,
		})
	}
	for _, s := range a.ByLeadSource {
		res.ByLeadSource = append(res.ByLeadSource, LeadSourceResponse{Source: s.Source, Revenue: money(s.Revenue), Profit: money(s.Profit), Orders: s.Orders})
	}
	for _, d := range a.ByDay {
		res.ByDay = append(res.ByDay, DailyResponse{Date: d.Date, Revenue: money(d.Revenue), Profit: money(d.Profit), Orders: d.Orders})
	}
	for _, p := range a.TopParts {
		res.TopParts = append(res.TopParts, PartUsageResponse{Name: p.Name, Quantity: p.Quantity, Orders: p.Orders})
	}
	return res
}

func FromBonusReport(r usecase.BonusReport) BonusReportResponse {
	return BonusReportResponse{
		LocationID:  r.LocationID,
		Month:       r.Month,
		Policy:      FromBonusPolicy(r.Policy),
		Technicians: FromTechnicianSummaries(r.Technicians),
	}
}

func FromBonusPolicy(p financials.BonusPolicy) BonusPolicyResponse {
	return BonusPolicyResponse{QuotaAmount: money(p.QuotaAmount), BonusRate: p.BonusRate.InexactFloat64()}
}

func FromTechnicianSummary(s financials.TechnicianPeriodSummary) TechnicianBonusResponse {
	return TechnicianBonusResponse{
		TechnicianID:         s.TechnicianID,
		TechnicianName:       s.TechnicianName,
		Orders:               s.Orders,
		TotalLabor:           money(s.TotalLabor),
		BonusAmount:          money(s.BonusAmount),
		QuotaProgressPercent: s.QuotaProgressPercent,
		Status:               string(s.Status),
	}
}

func FromTechnicianSummaries(in []financials.TechnicianPeriodSummary) []TechnicianBonusResponse {
	out := make([]TechnicianBonusResponse, 0, len(in))
	for _, s := range in {
		out = append(out, FromTechnicianSummary(s))
	}
	return out
}
