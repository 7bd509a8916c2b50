package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/domain/financials"
	"repairdesk/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

var (
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrExporterUnavailable = errors.New("period exporter not configured")
)

// PolicyResolver returns the bonus policy in force for a location.
type PolicyResolver interface {
	PolicyFor(locationID string) financials.BonusPolicy
}

// IPeriodExporter renders a period report as a downloadable document.
type IPeriodExporter interface {
	ExportPeriod(r PeriodReport) ([]byte, error)
}

type PeriodReport struct {
	LocationID  string
	From        time.Time
	To          time.Time
	Aggregate   financials.PeriodAggregate
	Technicians []financials.TechnicianPeriodSummary
}

type BonusReport struct {
	LocationID  string
	Month       string
	Policy      financials.BonusPolicy
	Technicians []financials.TechnicianPeriodSummary
}

// IAnalyticsUseCase derives period analytics and technician bonuses from closed orders.
// Nothing it returns is persisted.
type IAnalyticsUseCase interface {
	PeriodReport(ctx context.Context, locationID string, from, to time.Time) (PeriodReport, error)
	TechnicianBonuses(ctx context.Context, locationID, month string) (BonusReport, error)
	CalculateBonus(locationID string, totalLabor decimal.Decimal) (financials.TechnicianPeriodSummary, error)
	ExportPeriod(ctx context.Context, locationID string, from, to time.Time) ([]byte, error)
}

type AnalyticsUseCase struct {
	repo      interfaces.IOrderRepository
	policies  PolicyResolver
	groupings financials.Groupings
	exporter  IPeriodExporter
}

var _ IAnalyticsUseCase = (*AnalyticsUseCase)(nil)

func NewAnalyticsUseCase(repo interfaces.IOrderRepository, policies PolicyResolver, groupings financials.Groupings, exporter IPeriodExporter) *AnalyticsUseCase {
	if groupings.Location == nil {
		groupings.Location = time.UTC
	}
	return &AnalyticsUseCase{repo: repo, policies: policies, groupings: groupings, exporter: exporter}
}

func (u *AnalyticsUseCase) PeriodReport(ctx context.Context, locationID string, from, to time.Time) (PeriodReport, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return PeriodReport{}, ErrInvalidLocationID
	}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return PeriodReport{}, ErrInvalidPeriod
	}

	agg, err := u.aggregate(ctx, locationID, from, to, u.groupings)
	if err != nil {
		return PeriodReport{}, err
	}
	policy := u.policies.PolicyFor(locationID)
	technicians, err := financials.SummarizeTechnicians(agg.ByTechnician, func(string) financials.BonusPolicy { return policy })
	if err != nil {
		return PeriodReport{}, err
	}

	return PeriodReport{
		LocationID:  locationID,
		From:        from,
		To:          to,
		Aggregate:   agg,
		Technicians: technicians,
	}, nil
}

// TechnicianBonuses computes every technician's bonus for a calendar month
// ("2006-01") in the report time zone.
func (u *AnalyticsUseCase) TechnicianBonuses(ctx context.Context, locationID, month string) (BonusReport, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return BonusReport{}, ErrInvalidLocationID
	}
	from, to, err := MonthBounds(month, u.groupings.Location)
	if err != nil {
		return BonusReport{}, err
	}

	g := financials.Groupings{ByTechnician: true, LaborBasis: u.groupings.LaborBasis, Location: u.groupings.Location}
	agg, err := u.aggregate(ctx, locationID, from, to, g)
	if err != nil {
		return BonusReport{}, err
	}

	policy := u.policies.PolicyFor(locationID)
	technicians, err := financials.SummarizeTechnicians(agg.ByTechnician, func(string) financials.BonusPolicy { return policy })
	if err != nil {
		return BonusReport{}, err
	}
	log.Debug().Str("location_id", locationID).Str("month", month).Int("technicians", len(technicians)).Msg("[analytics][usecase] bonuses computed")

	return BonusReport{
		LocationID:  locationID,
		Month:       from.Format(monthLayout),
		Policy:      policy,
		Technicians: technicians,
	}, nil
}

func (u *AnalyticsUseCase) CalculateBonus(locationID string, totalLabor decimal.Decimal) (financials.TechnicianPeriodSummary, error) {
	return financials.CalculateTechnicianBonus(totalLabor, u.policies.PolicyFor(locationID))
}

func (u *AnalyticsUseCase) ExportPeriod(ctx context.Context, locationID string, from, to time.Time) ([]byte, error) {
	if u.exporter == nil {
		return nil, ErrExporterUnavailable
	}
	report, err := u.PeriodReport(ctx, locationID, from, to)
	if err != nil {
		return nil, err
	}
	b, err := u.exporter.ExportPeriod(report)
	if err != nil {
		log.Error().Err(err).Str("location_id", report.LocationID).Msg("[analytics][usecase] export failed")
		return nil, err
	}
	return b, nil
}

func (u *AnalyticsUseCase) aggregate(ctx context.Context, locationID string, from, to time.Time, g financials.Groupings) (financials.PeriodAggregate, error) {
	orders, err := u.repo.ListClosedBetween(ctx, locationID, from, to)
	if err != nil {
		log.Error().Err(err).Str("location_id", locationID).Msg("[analytics][usecase] loading closed orders failed")
		return financials.PeriodAggregate{}, err
	}

	records := make([]financials.OrderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, ToOrderRecord(o))
	}
	return financials.AggregatePeriod(records, g), nil
}

// MonthBounds returns the first and last instant of a "2006-01" month in loc.
func MonthBounds(month string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(monthLayout, strings.TrimSpace(month), loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
}

// ToOrderRecord projects an order onto the fields the period aggregator reads.
func ToOrderRecord(o entities.Order) financials.OrderRecord {
	rec := financials.OrderRecord{
		OrderID:          o.ID,
		FinalCost:        o.FinalCost,
		TotalProfit:      o.TotalProfit,
		MasterCommission: o.MasterCommission,
		ServicePrice:     o.ServicePrice,
		PartsPrice:       o.PartsPrice,
		LeadSource:       o.LeadSource,
		CompletedAt:      o.CompletedAt,
		AcceptedAt:       o.AcceptedAt,
		TechnicianID:     o.TechnicianID,
		TechnicianName:   o.TechnicianName,
	}
	for _, li := range o.Lines {
		if li.Kind == entities.LineItemKindPart {
			rec.Parts = append(rec.Parts, financials.PartUsage{Name: li.Name, Quantity: li.Quantity})
		}
	}
	return rec
}
