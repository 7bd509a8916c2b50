package export

import (
	"fmt"
	"time"

	"repairdesk/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet     = "Summary"
	leadSourceSheet  = "Lead sources"
	dailySheet       = "Daily"
	technicianSheet  = "Technician bonuses"
	topPartsSheet    = "Top parts"
	reportDateLayout = "2006-01-02"
)

// ExcelExporter renders period reports as XLSX workbooks.
type ExcelExporter struct{}

var _ usecase.IPeriodExporter = (*ExcelExporter)(nil)

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) ExportPeriod(r usecase.PeriodReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	writeSummary(file, r)

	for _, sheet := range []string{leadSourceSheet, dailySheet, technicianSheet, topPartsSheet} {
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	writeLeadSources(file, r)
	writeDaily(file, r)
	writeTechnicians(file, r)
	writeTopParts(file, r)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(file *excelize.File, r usecase.PeriodReport) {
	set := setter(file, summarySheet)
	t := r.Aggregate.Totals

	set("A1", "Location")
	set("B1", r.LocationID)
	set("A2", "Period start")
	set("B2", formatDate(r.From))
	set("A3", "Period end")
	set("B3", formatDate(r.To))
	set("A4", "Closed orders")
	set("B4", t.Orders)
	set("A5", "Revenue")
	set("B5", money(t.Revenue))
	set("A6", "Profit")
	set("B6", money(t.Profit))
	set("A7", "Master commission")
	set("B7", money(t.MasterCommission))
	set("A8", "Average ticket")
	set("B8", money(t.AverageTicket))
	set("A9", "Average repair, min")
	set("B9", t.AverageRepairMinutes)

	_ = file.SetColWidth(summarySheet, "A", "A", 24)
	_ = file.SetColWidth(summarySheet, "B", "B", 18)
}

func writeLeadSources(file *excelize.File, r usecase.PeriodReport) {
	set := setter(file, leadSourceSheet)
	writeHeader(file, leadSourceSheet, "Source", "Orders", "Revenue", "Profit")
	for i, s := range r.Aggregate.ByLeadSource {
		row := i + 2
		set(fmt.Sprintf("A%d", row), s.Source)
		set(fmt.Sprintf("B%d", row), s.Orders)
		set(fmt.Sprintf("C%d", row), money(s.Revenue))
		set(fmt.Sprintf("D%d", row), money(s.Profit))
	}
	_ = file.SetColWidth(leadSourceSheet, "A", "A", 28)
	_ = file.SetColWidth(leadSourceSheet, "B", "D", 14)
}

func writeDaily(file *excelize.File, r usecase.PeriodReport) {
	set := setter(file, dailySheet)
	writeHeader(file, dailySheet, "Date", "Orders", "Revenue", "Profit")
	for i, d := range r.Aggregate.ByDay {
		row := i + 2
		set(fmt.Sprintf("A%d", row), d.Date)
		set(fmt.Sprintf("B%d", row), d.Orders)
		set(fmt.Sprintf("C%d", row), money(d.Revenue))
		set(fmt.Sprintf("D%d", row), money(d.Profit))
	}
	_ = file.SetColWidth(dailySheet, "A", "A", 14)
	_ = file.SetColWidth(dailySheet, "B", "D", 14)
}

func writeTechnicians(file *excelize.File, r usecase.PeriodReport) {
	set := setter(file, technicianSheet)
	writeHeader(file, technicianSheet, "Technician", "Orders", "Labor", "Bonus", "Quota progress, %", "Status")
	for i, s := range r.Technicians {
		row := i + 2
		name := s.TechnicianName
		if name == "" {
			name = s.TechnicianID
		}
		set(fmt.Sprintf("A%d", row), name)
		set(fmt.Sprintf("B%d", row), s.Orders)
		set(fmt.Sprintf("C%d", row), money(s.TotalLabor))
		set(fmt.Sprintf("D%d", row), money(s.BonusAmount))
		set(fmt.Sprintf("E%d", row), s.QuotaProgressPercent)
		set(fmt.Sprintf("F%d", row), string(s.Status))
	}
	_ = file.SetColWidth(technicianSheet, "A", "A", 28)
	_ = file.SetColWidth(technicianSheet, "B", "F", 16)
}

func writeTopParts(file *excelize.File, r usecase.PeriodReport) {
	set := setter(file, topPartsSheet)
	writeHeader(file, topPartsSheet, "Part", "Quantity", "Orders")
	for i, p := range r.Aggregate.TopParts {
		row := i + 2
		set(fmt.Sprintf("A%d", row), p.Name)
		set(fmt.Sprintf("B%d", row), p.Quantity)
		set(fmt.Sprintf("C%d", row), p.Orders)
	}
	_ = file.SetColWidth(topPartsSheet, "A", "A", 32)
	_ = file.SetColWidth(topPartsSheet, "B", "C", 12)
}

func writeHeader(file *excelize.File, sheet string, headers ...string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, h)
	}
}

func setter(file *excelize.File, sheet string) func(cell string, value interface{}) {
	return func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}
}

// money writes two-decimal amounts as numbers so spreadsheets can sum them.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(reportDateLayout)
}
