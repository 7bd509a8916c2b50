package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"repairdesk/internal/config"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/domain/financials"
	mock_interfaces "repairdesk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type exporterFunc func(r PeriodReport) ([]byte, error)

func (f exporterFunc) ExportPeriod(r PeriodReport) ([]byte, error) { return f(r) }

func testFinancials() config.FinancialsConfig {
	return config.FinancialsConfig{
		DefaultPolicy: financials.DefaultBonusPolicy(),
		LocationPolicies: map[string]financials.BonusPolicy{
			"loc-2": {QuotaAmount: dec("1000"), BonusRate: dec("0.5")},
		},
		LeadSourceFallback: "Walk-in",
		ReportLocation:     time.UTC,
		LaborBasis:         financials.LaborBasisFinalCost,
		TopPartsLimit:      5,
	}
}

func closedOrders() []entities.Order {
	day := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	return []entities.Order{
		{ID: "o1", TechnicianID: "t1", TechnicianName: "Alex", LeadSource: "Google", FinalCost: dec("5000"), TotalProfit: dec("3000"), CompletedAt: day,
			Lines: []entities.LineItem{{Kind: entities.LineItemKindPart, Name: "Battery", Quantity: 2}}},
		{ID: "o2", TechnicianID: "t1", TechnicianName: "Alex", LeadSource: "", FinalCost: dec("3000"), TotalProfit: dec("1000"), CompletedAt: day.AddDate(0, 0, 1)},
		{ID: "o3", TechnicianID: "t2", TechnicianName: "Sam", LeadSource: "Instagram", FinalCost: dec("1500"), TotalProfit: dec("500"), CompletedAt: day},
	}
}

func TestAnalyticsUseCase_PeriodReport(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	t.Run("invalid inputs", func(t *testing.T) {
		fc := testFinancials()
		uc := NewAnalyticsUseCase(nil, fc, fc.Groupings(), nil)
		if _, err := uc.PeriodReport(context.Background(), " ", from, to); !errors.Is(err, ErrInvalidLocationID) {
			t.Fatalf("expected ErrInvalidLocationID, got %v", err)
		}
		if _, err := uc.PeriodReport(context.Background(), "loc-1", to, from); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		fc := testFinancials()
		uc := NewAnalyticsUseCase(repo, fc, fc.Groupings(), nil)
		repo.EXPECT().ListClosedBetween(gomock.Any(), "loc-1", from, to).Return(nil, errors.New("db"))

		_, err := uc.PeriodReport(context.Background(), "loc-1", from, to)
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		fc := testFinancials()
		uc := NewAnalyticsUseCase(repo, fc, fc.Groupings(), nil)
		repo.EXPECT().ListClosedBetween(gomock.Any(), "loc-1", from, to).Return(closedOrders(), nil)

		res, err := uc.PeriodReport(context.Background(), " loc-1 ", from, to)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		agg := res.Aggregate
		if len(agg.ByLeadSource) != 3 || agg.ByLeadSource[0].Source != "Google" || agg.ByLeadSource[1].Source != "Walk-in" {
			t.Fatalf("unexpected lead sources: %+v", agg.ByLeadSource)
		}
		if len(agg.ByDay) != 2 || agg.ByDay[0].Date != "2024-03-04" || !agg.ByDay[0].Revenue.Equal(dec("6500")) {
			t.Fatalf("unexpected days: %+v", agg.ByDay)
		}
		if len(agg.TopParts) != 1 || agg.TopParts[0].Quantity != 2 {
			t.Fatalf("unexpected parts: %+v", agg.TopParts)
		}
		if len(res.Technicians) != 2 || !res.Technicians[0].BonusAmount.Equal(dec("500")) || res.Technicians[1].Status != financials.BonusStatusActive {
			t.Fatalf("unexpected technicians: %+v", res.Technicians)
		}
	})
}

func TestAnalyticsUseCase_TechnicianBonuses(t *testing.T) {
	t.Run("invalid month", func(t *testing.T) {
		fc := testFinancials()
		uc := NewAnalyticsUseCase(nil, fc, fc.Groupings(), nil)
		if _, err := uc.TechnicianBonuses(context.Background(), "loc-1", "03/2024"); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth, got %v", err)
		}
	})

	t.Run("location policy applies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		fc := testFinancials()
		uc := NewAnalyticsUseCase(repo, fc, fc.Groupings(), nil)

		wantFrom := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		wantTo := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		repo.EXPECT().ListClosedBetween(gomock.Any(), "loc-2", wantFrom, wantTo).Return(closedOrders(), nil)

		res, err := uc.TechnicianBonuses(context.Background(), "loc-2", "2024-02")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Month != "2024-02" || !res.Policy.QuotaAmount.Equal(dec("1000")) {
			t.Fatalf("unexpected report: %+v", res)
		}
		if len(res.Technicians) != 2 {
			t.Fatalf("expected 2 technicians, got %+v", res.Technicians)
		}
		alex, sam := res.Technicians[0], res.Technicians[1]
		if alex.TechnicianName != "Alex" || !alex.TotalLabor.Equal(dec("8000")) || !alex.BonusAmount.Equal(dec("3500")) || alex.Orders != 2 {
			t.Fatalf("unexpected alex row: %+v", alex)
		}
		if !sam.BonusAmount.Equal(dec("250")) || sam.Status != financials.BonusStatusQuotaReached {
			t.Fatalf("unexpected sam row: %+v", sam)
		}
	})

	t.Run("no orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		fc := testFinancials()
		uc := NewAnalyticsUseCase(repo, fc, fc.Groupings(), nil)
		repo.EXPECT().ListClosedBetween(gomock.Any(), "loc-1", gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := uc.TechnicianBonuses(context.Background(), "loc-1", "2024-02")
		if err != nil || res.Technicians == nil || len(res.Technicians) != 0 {
			t.Fatalf("expected empty technicians, got %+v %v", res, err)
		}
	})
}

func TestAnalyticsUseCase_CalculateBonus(t *testing.T) {
	fc := testFinancials()
	uc := NewAnalyticsUseCase(nil, fc, fc.Groupings(), nil)

	res, err := uc.CalculateBonus("unknown", dec("8000"))
	if err != nil || !res.BonusAmount.Equal(dec("500")) || res.QuotaProgressPercent != 100 {
		t.Fatalf("unexpected default-policy result: %+v %v", res, err)
	}
	res, err = uc.CalculateBonus("loc-2", dec("1500"))
	if err != nil || !res.BonusAmount.Equal(dec("250")) {
		t.Fatalf("unexpected location-policy result: %+v %v", res, err)
	}
	if _, err := uc.CalculateBonus("loc-1", dec("-1")); !errors.Is(err, financials.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAnalyticsUseCase_ExportPeriod(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	t.Run("exporter missing", func(t *testing.T) {
		fc := testFinancials()
		uc := NewAnalyticsUseCase(nil, fc, fc.Groupings(), nil)
		if _, err := uc.ExportPeriod(context.Background(), "loc-1", from, to); !errors.Is(err, ErrExporterUnavailable) {
			t.Fatalf("expected ErrExporterUnavailable, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		fc := testFinancials()
		var seen PeriodReport
		uc := NewAnalyticsUseCase(repo, fc, fc.Groupings(), exporterFunc(func(r PeriodReport) ([]byte, error) {
			seen = r
			return []byte("xlsx"), nil
		}))
		repo.EXPECT().ListClosedBetween(gomock.Any(), "loc-1", from, to).Return(closedOrders(), nil)

		b, err := uc.ExportPeriod(context.Background(), "loc-1", from, to)
		if err != nil || string(b) != "xlsx" {
			t.Fatalf("unexpected result: %q %v", b, err)
		}
		if seen.LocationID != "loc-1" || seen.Aggregate.Totals.Orders != 3 {
			t.Fatalf("unexpected report passed to exporter: %+v", seen)
		}
	})
}

func TestMonthBounds(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	from, to, err := MonthBounds("2024-02", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.Day() != 1 || from.Month() != time.February || from.Location() != loc {
		t.Fatalf("unexpected start: %s", from)
	}
	if to.Month() != time.February || to.Day() != 29 || to.Hour() != 23 {
		t.Fatalf("unexpected end: %s", to)
	}
}
