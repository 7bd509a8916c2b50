package financials

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultLeadSourceFallback = "Walk-in"
	dayLayout                 = "2006-01-02"
)

// LaborBasis selects which part of an order counts as technician labor.
type LaborBasis string

const (
	LaborBasisFinalCost          LaborBasis = "final_cost"
	LaborBasisServicePrice       LaborBasis = "service_price"
	LaborBasisFinalCostLessParts LaborBasis = "final_cost_less_parts"
)

func ParseLaborBasis(s string) (LaborBasis, error) {
	switch b := LaborBasis(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return LaborBasisFinalCost, nil
	case LaborBasisFinalCost, LaborBasisServicePrice, LaborBasisFinalCostLessParts:
		return b, nil
	default:
		return "", fieldError("labor_basis", fmt.Sprintf("unknown basis %q", s))
	}
}

func (b LaborBasis) laborOf(o OrderRecord) decimal.Decimal {
	switch b {
	case LaborBasisServicePrice:
		return o.ServicePrice
	case LaborBasisFinalCostLessParts:
		return maxZero(o.FinalCost.Sub(o.PartsPrice))
	default:
		return o.FinalCost
	}
}

type PartUsage struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderRecord is the slice of a closed order the aggregator reads.
type OrderRecord struct {
	OrderID          string          `json:"order_id"`
	FinalCost        decimal.Decimal `json:"final_cost"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	MasterCommission decimal.Decimal `json:"master_commission"`
	ServicePrice     decimal.Decimal `json:"service_price"`
	PartsPrice       decimal.Decimal `json:"parts_price"`
	LeadSource       string          `json:"lead_source"`
	CompletedAt      time.Time       `json:"completed_at"`
	AcceptedAt       time.Time       `json:"accepted_at"`
	TechnicianID     string          `json:"technician_id"`
	TechnicianName   string          `json:"technician_name"`
	Parts            []PartUsage     `json:"parts,omitempty"`
}

// Groupings chooses the dimensions to compute and how to key them.
// A nil Location keys days in UTC.
type Groupings struct {
	ByTechnician       bool
	ByLeadSource       bool
	ByDay              bool
	ByPart             bool
	FallbackLeadSource string
	Location           *time.Location
	LaborBasis         LaborBasis
	TopPartsLimit      int
}

func AllGroupings() Groupings {
	return Groupings{
		ByTechnician:       true,
		ByLeadSource:       true,
		ByDay:              true,
		ByPart:             true,
		FallbackLeadSource: DefaultLeadSourceFallback,
		LaborBasis:         LaborBasisFinalCost,
		TopPartsLimit:      10,
	}
}

type TechnicianLabor struct {
	TechnicianID     string          `json:"technician_id"`
	TechnicianName   string          `json:"technician_name"`
	TotalLabor       decimal.Decimal `json:"total_labor"`
	MasterCommission decimal.Decimal `json:"master_commission"`
	Orders           int             `json:"orders"`
}

type LeadSourceSummary struct {
	Source  string          `json:"source"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Orders  int             `json:"orders"`
}

type DailySummary struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Orders  int             `json:"orders"`
}

type PartUsageSummary struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Orders   int    `json:"orders"`
}

type PeriodTotals struct {
	Orders               int             `json:"orders"`
	Revenue              decimal.Decimal `json:"revenue"`
	Profit               decimal.Decimal `json:"profit"`
	MasterCommission     decimal.Decimal `json:"master_commission"`
	AverageTicket        decimal.Decimal `json:"average_ticket"`
	AverageRepairMinutes int64           `json:"average_repair_minutes"`
}

// PeriodAggregate holds one slice per dimension. Dimensions that were not
// requested are empty, never nil.
type PeriodAggregate struct {
	Totals       PeriodTotals        `json:"totals"`
	ByTechnician []TechnicianLabor   `json:"by_technician"`
	ByLeadSource []LeadSourceSummary `json:"by_lead_source"`
	ByDay        []DailySummary      `json:"by_day"`
	TopParts     []PartUsageSummary  `json:"top_parts"`
}

// AggregatePeriod groups closed-order records for analytics and bonus input.
//
// Technicians keep first-appearance order and orders without a technician are
// not attributed. Lead sources are matched exactly and sorted by revenue
// descending with ties in input order; a blank source uses the fallback. Days
// are keyed by the completion date in g.Location and sorted ascending; records
// without a completion time are left out of that dimension.
func AggregatePeriod(orders []OrderRecord, g Groupings) PeriodAggregate {
	out := PeriodAggregate{
		Totals:       periodTotals(orders),
		ByTechnician: []TechnicianLabor{},
		ByLeadSource: []LeadSourceSummary{},
		ByDay:        []DailySummary{},
		TopParts:     []PartUsageSummary{},
	}
	if g.ByTechnician {
		out.ByTechnician = groupByTechnician(orders, g.LaborBasis)
	}
	if g.ByLeadSource {
		fallback := strings.TrimSpace(g.FallbackLeadSource)
		if fallback == "" {
			fallback = DefaultLeadSourceFallback
		}
		out.ByLeadSource = groupByLeadSource(orders, fallback)
	}
	if g.ByDay {
		loc := g.Location
		if loc == nil {
			loc = time.UTC
		}
		out.ByDay = groupByDay(orders, loc)
	}
	if g.ByPart {
		out.TopParts = topParts(orders, g.TopPartsLimit)
	}
	return out
}

func periodTotals(orders []OrderRecord) PeriodTotals {
	var (
		revenue, profit, commission decimal.Decimal
		repairMinutes, timed        int64
	)
	for _, o := range orders {
		revenue = revenue.Add(o.FinalCost)
		profit = profit.Add(o.TotalProfit)
		commission = commission.Add(o.MasterCommission)
		if !o.AcceptedAt.IsZero() && o.CompletedAt.After(o.AcceptedAt) {
			repairMinutes += int64(o.CompletedAt.Sub(o.AcceptedAt) / time.Minute)
			timed++
		}
	}

	t := PeriodTotals{
		Orders:           len(orders),
		Revenue:          Round2(revenue),
		Profit:           Round2(profit),
		MasterCommission: Round2(commission),
		AverageTicket:    decimal.Zero,
	}
	if len(orders) > 0 {
		t.AverageTicket = Round2(revenue.Div(decimal.NewFromInt(int64(len(orders)))))
	}
	if timed > 0 {
		t.AverageRepairMinutes = repairMinutes / timed
	}
	return t
}

func groupByTechnician(orders []OrderRecord, basis LaborBasis) []TechnicianLabor {
	out := []TechnicianLabor{}
	index := map[string]int{}
	for _, o := range orders {
		if o.TechnicianID == "" {
			continue
		}
		i, ok := index[o.TechnicianID]
		if !ok {
			i = len(out)
			index[o.TechnicianID] = i
			out = append(out, TechnicianLabor{TechnicianID: o.TechnicianID})
		}
		row := &out[i]
		if row.TechnicianName == "" {
			row.TechnicianName = o.TechnicianName
		}
		row.TotalLabor = row.TotalLabor.Add(basis.laborOf(o))
		row.MasterCommission = row.MasterCommission.Add(o.MasterCommission)
		row.Orders++
	}
	for i := range out {
		out[i].TotalLabor = Round2(out[i].TotalLabor)
		out[i].MasterCommission = Round2(out[i].MasterCommission)
	}
	return out
}

func groupByLeadSource(orders []OrderRecord, fallback string) []LeadSourceSummary {
	out := []LeadSourceSummary{}
	index := map[string]int{}
	for _, o := range orders {
		source := o.LeadSource
		if strings.TrimSpace(source) == "" {
			source = fallback
		}
		i, ok := index[source]
		if !ok {
			i = len(out)
			index[source] = i
			out = append(out, LeadSourceSummary{Source: source})
		}
		out[i].Revenue = out[i].Revenue.Add(o.FinalCost)
		out[i].Profit = out[i].Profit.Add(o.TotalProfit)
		out[i].Orders++
	}
	for i := range out {
		out[i].Revenue = Round2(out[i].Revenue)
		out[i].Profit = Round2(out[i].Profit)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Revenue.GreaterThan(out[b].Revenue)
	})
	return out
}

func groupByDay(orders []OrderRecord, loc *time.Location) []DailySummary {
	out := []DailySummary{}
	index := map[string]int{}
	for _, o := range orders {
		if o.CompletedAt.IsZero() {
			continue
		}
		day := o.CompletedAt.In(loc).Format(dayLayout)
		i, ok := index[day]
		if !ok {
			i = len(out)
			index[day] = i
			out = append(out, DailySummary{Date: day})
		}
		out[i].Revenue = out[i].Revenue.Add(o.FinalCost)
		out[i].Profit = out[i].Profit.Add(o.TotalProfit)
		out[i].Orders++
	}
	for i := range out {
		out[i].Revenue = Round2(out[i].Revenue)
		out[i].Profit = Round2(out[i].Profit)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date < out[b].Date
	})
	return out
}

func topParts(orders []OrderRecord, limit int) []PartUsageSummary {
	out := []PartUsageSummary{}
	index := map[string]int{}
	for _, o := range orders {
		for _, p := range o.Parts {
			name := strings.TrimSpace(p.Name)
			if name == "" || p.Quantity <= 0 {
				continue
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, PartUsageSummary{Name: name})
			}
			out[i].Quantity += p.Quantity
			out[i].Orders++
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Quantity > out[b].Quantity
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SummarizeTechnicians runs the bonus calculator for every technician row.
// policyFor resolves the policy that applies to a technician.
func SummarizeTechnicians(labor []TechnicianLabor, policyFor func(technicianID string) BonusPolicy) ([]TechnicianPeriodSummary, error) {
	out := make([]TechnicianPeriodSummary, 0, len(labor))
	for _, row := range labor {
		s, err := CalculateTechnicianBonus(row.TotalLabor, policyFor(row.TechnicianID))
		if err != nil {
			return nil, err
		}
		s.TechnicianID = row.TechnicianID
		s.TechnicianName = row.TechnicianName
		s.Orders = row.Orders
		out = append(out, s)
	}
	return out, nil
}
