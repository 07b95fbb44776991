package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RenderReceipt lays out a receipt as a PDF document. The receipt must
// already carry local date strings; nothing here looks at timezones.
func RenderReceipt(r *entity.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	header := []string{r.Header.Address, r.Header.Phone}
	if r.Header.VATRegNo != "" {
		header = append(header, "VAT Reg. No: "+r.Header.VATRegNo)
	}

	m.AddRow(14,
		text.NewCol(12, r.Header.StoreName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	for _, line := range header {
		if line == "" {
			continue
		}
		m.AddRow(5, text.NewCol(12, line, props.Text{Size: 9, Align: align.Center}))
	}

	meta := col.New(6).Add(
		text.New("Invoice: "+r.InvoiceNo, props.Text{Top: 0, Size: 9}),
		text.New("Date: "+r.Date, props.Text{Top: 5, Size: 9}),
		text.New("Time: "+r.Time, props.Text{Top: 10, Size: 9}),
	)
	order := col.New(6).Add(
		text.New(r.OrderType, props.Text{Top: 0, Size: 9, Align: align.Right}),
	)
	if r.TableNo != "" {
		order.Add(text.New("Table "+r.TableNo, props.Text{Top: 5, Size: 9, Align: align.Right}))
	}
	if r.PaymentType != "" {
		order.Add(text.New("Paid by "+r.PaymentType, props.Text{Top: 10, Size: 9, Align: align.Right}))
	}
	m.AddRow(20, meta, order)

	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, item := range r.Items {
		m.AddRow(7,
			text.NewCol(6, item.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Total), props.Text{Size: 9, Align: align.Right}),
		)
	}

	totals := []struct {
		label  string
		amount decimal.Decimal
		always bool
	}{
		{"Subtotal", r.Amounts.Subtotal, true},
		{"VAT", r.Amounts.VAT, false},
		{"Service charge", r.Amounts.ServiceCharge, false},
		{"Discount", r.Amounts.Discount.Neg(), false},
	}
	for _, t := range totals {
		if !t.always && t.amount.IsZero() {
			continue
		}
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, t.label, props.Text{Size: 9}),
			text.NewCol(2, money(t.amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(9,
		col.New(7),
		text.NewCol(3, "Total "+r.Currency, props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(2, money(r.Amounts.GrandTotal), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)
	if r.Paid.IsPositive() {
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, "Paid", props.Text{Size: 9}),
			text.NewCol(2, money(r.Paid), props.Text{Size: 9, Align: align.Right}),
		)
	}
	if r.Due.IsPositive() {
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, "Due", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(2, money(r.Due), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
	}

	if r.Footer != "" {
		m.AddRow(15, text.NewCol(12, r.Footer, props.Text{Top: 6, Size: 9, Align: align.Center, Style: fontstyle.Italic}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate receipt pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
