package export

import (
	"fmt"
	"strings"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

const receiptDateTimeLayout = "2006-01-02 15:04"

var (
	mutedColor  = &props.Color{Red: 100, Green: 100, Blue: 100}
	headerColor = &props.Color{Red: 33, Green: 37, Blue: 41}
	whiteColor  = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ReceiptRenderer prints an order as a one-page PDF: a work order while the
// repair is open and a receipt once it is closed.
type ReceiptRenderer struct {
	shopName string
}

var _ usecase.IReceiptRenderer = (*ReceiptRenderer)(nil)

func NewReceiptRenderer(shopName string) *ReceiptRenderer {
	if strings.TrimSpace(shopName) == "" {
		shopName = "Repair Desk"
	}
	return &ReceiptRenderer{shopName: shopName}
}

func (r *ReceiptRenderer) RenderReceipt(o entities.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)
	r.addHeader(m, o)
	addOrderDetails(m, o)
	addLinesTable(m, o.Lines)
	addTotals(m, o)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func receiptTitle(o entities.Order) string {
	if o.Status == entities.OrderStatusClosed {
		return "RECEIPT"
	}
	return "WORK ORDER"
}

func (r *ReceiptRenderer) addHeader(m core.Maroto, o entities.Order) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(text.New(r.shopName, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Left})),
			col.New(6).Add(text.New(receiptTitle(o), props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Color: headerColor})),
		),
		row.New(8).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Location: %s", o.LocationID), props.Text{Size: 8, Align: align.Left, Color: mutedColor})),
			col.New(6).Add(text.New(fmt.Sprintf("Order #: %s", o.ID), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		),
	)
	m.AddRows(row.New(3))
}

func addOrderDetails(m core.Maroto, o entities.Order) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: mutedColor}
	value := props.Text{Size: 8, Align: align.Left}

	details := [][2]string{
		{"Status", string(o.Status)},
		{"Client", o.ClientID},
		{"Technician", firstNonEmpty(o.TechnicianName, o.TechnicianID)},
		{"Accepted", formatDateTime(o.AcceptedAt)},
		{"Completed", formatDateTime(o.CompletedAt)},
	}
	for _, d := range details {
		if d[1] == "" {
			continue
		}
		m.AddRows(row.New(6).Add(
			col.New(3).Add(text.New(d[0], label)),
			col.New(9).Add(text.New(d[1], value)),
		))
	}
	m.AddRows(row.New(3))
}

func addLinesTable(m core.Maroto, lines []entities.LineItem) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: whiteColor}
	headerCell := &props.Cell{BackgroundColor: headerColor}
	m.AddRows(row.New(7).Add(
		col.New(5).Add(text.New("Description", headerText)).WithStyle(headerCell),
		col.New(1).Add(text.New("Qty", headerText)).WithStyle(headerCell),
		col.New(2).Add(text.New("Unit price", headerText)).WithStyle(headerCell),
		col.New(2).Add(text.New("Amount", headerText)).WithStyle(headerCell),
		col.New(2).Add(text.New("Warranty", headerText)).WithStyle(headerCell),
	))

	left := props.Text{Size: 8, Align: align.Left}
	right := props.Text{Size: 8, Align: align.Right}
	for _, li := range lines {
		warranty := ""
		if li.WarrantyMonths > 0 {
			warranty = fmt.Sprintf("%d mo", li.WarrantyMonths)
		}
		amount := li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
		m.AddRows(row.New(6).Add(
			col.New(5).Add(text.New(fmt.Sprintf("%s (%s)", li.Name, li.Kind), left)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", li.Quantity), right)),
			col.New(2).Add(text.New(li.UnitPrice.StringFixed(2), right)),
			col.New(2).Add(text.New(amount.StringFixed(2), right)),
			col.New(2).Add(text.New(warranty, right)),
		))
	}
	m.AddRows(row.New(3))
}

func addTotals(m core.Maroto, o entities.Order) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}

	totals := [][2]string{
		{"Total", o.FinalCost.StringFixed(2)},
		{"Prepayment", o.Prepayment.StringFixed(2)},
		{"Amount due", o.AmountDue().StringFixed(2)},
	}
	for _, t := range totals {
		m.AddRows(row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New(t[0], label)),
			col.New(2).Add(text.New(t[1], value)),
		))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(receiptDateTimeLayout)
}
