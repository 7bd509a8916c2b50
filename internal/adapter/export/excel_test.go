package export

import (
	"bytes"
	"testing"
	"time"

	"repairdesk/internal/domain/financials"
	"repairdesk/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleReport() usecase.PeriodReport {
	return usecase.PeriodReport{
		LocationID: "loc-1",
		From:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Aggregate: financials.PeriodAggregate{
			Totals: financials.PeriodTotals{Orders: 2, Revenue: decimal.RequireFromString("300.5"), Profit: decimal.RequireFromString("120")},
			ByLeadSource: []financials.LeadSourceSummary{
				{Source: "Instagram", Revenue: decimal.RequireFromString("200"), Profit: decimal.RequireFromString("80"), Orders: 1},
				{Source: "Walk-in", Revenue: decimal.RequireFromString("100.5"), Profit: decimal.RequireFromString("40"), Orders: 1},
			},
			ByDay:    []financials.DailySummary{{Date: "2024-03-05", Revenue: decimal.RequireFromString("300.5"), Orders: 2}},
			TopParts: []financials.PartUsageSummary{{Name: "Battery", Quantity: 3, Orders: 2}},
		},
		Technicians: []financials.TechnicianPeriodSummary{
			{TechnicianID: "t-1", TechnicianName: "Ann", Orders: 2, TotalLabor: decimal.RequireFromString("8000"), BonusAmount: decimal.RequireFromString("500"), QuotaProgressPercent: 133, Status: financials.BonusStatusActive},
			{TechnicianID: "t-2", Orders: 1},
		},
	}
}

func TestExcelExporter_ExportPeriod(t *testing.T) {
	out, err := NewExcelExporter().ExportPeriod(sampleReport())
	if err != nil {
		t.Fatalf("ExportPeriod() error = %v", err)
	}
	if len(out) == 0 {
		t.Fatal("ExportPeriod() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	want := []string{summarySheet, leadSourceSheet, dailySheet, technicianSheet, topPartsSheet}
	sheets := f.GetSheetList()
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("expected sheets %v, got %v", want, sheets)
		}
	}

	cases := []struct {
		sheet, cell, want string
	}{
		{summarySheet, "B1", "loc-1"},
		{summarySheet, "B2", "2024-03-01"},
		{summarySheet, "B4", "2"},
		{summarySheet, "B5", "300.5"},
		{leadSourceSheet, "A1", "Source"},
		{leadSourceSheet, "A3", "Walk-in"},
		{leadSourceSheet, "C2", "200"},
		{dailySheet, "A2", "2024-03-05"},
		{technicianSheet, "A2", "Ann"},
		{technicianSheet, "D2", "500"},
		{technicianSheet, "F2", "active"},
		{technicianSheet, "A3", "t-2"},
		{topPartsSheet, "B2", "3"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue(tc.sheet, tc.cell)
		if err != nil {
			t.Fatalf("%s!%s: %v", tc.sheet, tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("%s!%s: expected %q, got %q", tc.sheet, tc.cell, tc.want, got)
		}
	}
}

func TestExcelExporter_EmptyReport(t *testing.T) {
	out, err := NewExcelExporter().ExportPeriod(usecase.PeriodReport{})
	if err != nil {
		t.Fatalf("ExportPeriod() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(leadSourceSheet, "A2"); v != "" {
		t.Fatalf("expected no lead source rows, got %q", v)
	}
	if v, _ := f.GetCellValue(summarySheet, "B4"); v != "0" {
		t.Fatalf("expected zero orders, got %q", v)
	}
}
