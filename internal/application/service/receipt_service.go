package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/infrastructure/pdf"
	"github.com/sangkips/restopos-api/internal/metrics"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/printer"
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/sangkips/restopos-api/pkg/tzdate"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NoDate is printed when a receipt's timestamp cannot be read.
const NoDate = "—"

// ReceiptService composes receipts from orders and sends them to the PDF
// renderer or the thermal printer.
type ReceiptService struct {
	orderRepo  repository.OrderRepository
	timezones  TimezoneResolver
	printer    printer.Printer
	paperWidth int
	restaurant config.RestaurantConfig
	currency   string
	log        *zap.Logger
	metrics    *metrics.POSMetrics
}

func NewReceiptService(
	orderRepo repository.OrderRepository,
	timezones TimezoneResolver,
	p printer.Printer,
	printerCfg config.PrinterConfig,
	restaurant config.RestaurantConfig,
	currency string,
	log *zap.Logger,
	m *metrics.POSMetrics,
) *ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{
		orderRepo:  orderRepo,
		timezones:  timezones,
		printer:    p,
		paperWidth: printerCfg.PaperWidth,
		restaurant: restaurant,
		currency:   currency,
		log:        log,
		metrics:    m,
	}
}

type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	PaperWidth int    `json:"paper_width"`
}

func (s *ReceiptService) GetStatus(ctx context.Context) *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       kind,
		PaperWidth: s.paperWidth,
	}
}

func (s *ReceiptService) header() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: s.restaurant.Name,
		Address:   s.restaurant.Address,
		Phone:     s.restaurant.Phone,
		VATRegNo:  s.restaurant.VATRegNo,
	}
}

func (s *ReceiptService) loadOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// BuildOrderReceipt composes the receipt for an order as seen by viewerID.
// Amounts are recomputed from the order lines so every rendering of the
// same order prints the same figures.
func (s *ReceiptService) BuildOrderReceipt(ctx context.Context, orderID, viewerID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	tz, err := s.timezones.ResolveTimezone(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.receiptFor(order, tz)
}

func (s *ReceiptService) receiptFor(order *entity.Order, tz *tzdate.Converter) (*entity.Receipt, error) {
	amounts, err := order.Recompute()
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:      s.header(),
		InvoiceNo:   order.InvoiceNo,
		Date:        tz.FormatLocal(order.OrderedAt, tzdate.StyleDateOnly),
		Time:        tz.FormatLocal(order.OrderedAt, tzdate.StyleTimeOnly),
		Timezone:    tz.Name(),
		OrderType:   order.OrderType.Label(),
		TableNo:     order.TableNo,
		PaymentType: order.PaymentType,
		Amounts:     amounts,
		Paid:        order.Paid,
		Due:         decimal.Max(amounts.GrandTotal.Sub(order.Paid), decimal.Zero),
		Currency:    s.currency,
		Footer:      s.restaurant.Footer,
	}
	for _, it := range order.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return receipt, nil
}

// PreviewItem is one line of a bill that has not been stored.
type PreviewItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
	VATRate   float64
}

// PreviewInput is a bill from an external source. OrderedAt is an ISO-8601
// string; one without a zone designator is read as UTC.
type PreviewInput struct {
	ViewerID      uuid.UUID
	InvoiceNo     string
	OrderedAt     string
	OrderType     enum.OrderType
	TableNo       string
	Items         []PreviewItem
	VAT           float64
	ServiceCharge float64
	Discount      float64
	Paid          float64
}

// PreviewReceipt renders a receipt for a bill without storing it. An
// unreadable OrderedAt prints NoDate instead of failing the receipt.
func (s *ReceiptService) PreviewReceipt(ctx context.Context, input *PreviewInput) (*entity.Receipt, error) {
	tz, err := s.timezones.ResolveTimezone(ctx, input.ViewerID)
	if err != nil {
		return nil, err
	}

	lines := make([]receiptcalc.LineItem, 0, len(input.Items))
	items := make([]entity.ReceiptItem, 0, len(input.Items))
	for i, in := range input.Items {
		if in.Quantity < 1 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be at least 1"}})
		}
		price, err := receiptcalc.FromFloat(fmt.Sprintf("items[%d].unit_price", i), in.UnitPrice)
		if err != nil {
			return nil, err
		}
		if price.IsNegative() {
			return nil, &receiptcalc.InvalidAmountError{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: "must not be negative"}
		}
		rate, err := receiptcalc.FromFloat(fmt.Sprintf("items[%d].vat_rate", i), in.VATRate)
		if err != nil {
			return nil, err
		}
		total := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		lines = append(lines, receiptcalc.LineItem{Total: total, VATRate: rate})
		items = append(items, entity.ReceiptItem{Name: in.Name, Quantity: in.Quantity, UnitPrice: price, Total: total})
	}

	amounts := make(map[string]decimal.Decimal, 4)
	for _, a := range []struct {
		field string
		value float64
	}{{"vat", input.VAT}, {"service_charge", input.ServiceCharge}, {"discount", input.Discount}, {"paid", input.Paid}} {
		d, err := receiptcalc.FromFloat(a.field, a.value)
		if err != nil {
			return nil, err
		}
		amounts[a.field] = d
	}

	breakdown, err := receiptcalc.ComputeBreakdown(lines, amounts["vat"], amounts["service_charge"], amounts["discount"])
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:    s.header(),
		InvoiceNo: input.InvoiceNo,
		Date:      NoDate,
		Time:      NoDate,
		Timezone:  tz.Name(),
		OrderType: input.OrderType.Label(),
		TableNo:   input.TableNo,
		Items:     items,
		Amounts:   breakdown,
		Paid:      amounts["paid"],
		Due:       decimal.Max(breakdown.GrandTotal.Sub(amounts["paid"]), decimal.Zero),
		Currency:  s.currency,
		Footer:    s.restaurant.Footer,
	}
	if at, err := tzdate.ParseInstant(input.OrderedAt); err == nil {
		receipt.Date = tz.FormatLocal(at, tzdate.StyleDateOnly)
		receipt.Time = tz.FormatLocal(at, tzdate.StyleTimeOnly)
	} else {
		s.log.Debug("preview without a readable date", zap.String("ordered_at", input.OrderedAt), zap.Error(err))
	}

	s.metrics.ReceiptRendered(metrics.FormatJSON)
	return receipt, nil
}

// RenderOrderPDF returns the receipt of an order as a PDF document.
func (s *ReceiptService) RenderOrderPDF(ctx context.Context, orderID, viewerID uuid.UUID) ([]byte, *entity.Receipt, error) {
	receipt, err := s.BuildOrderReceipt(ctx, orderID, viewerID)
	if err != nil {
		return nil, nil, err
	}
	b, err := pdf.RenderReceipt(receipt)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.ReceiptRendered(metrics.FormatPDF)
	return b, receipt, nil
}

// PrintOrderReceipt prints the receipt of an order. When printing fails the
// composed receipt is still returned together with the error.
func (s *ReceiptService) PrintOrderReceipt(ctx context.Context, orderID, viewerID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildOrderReceipt(ctx, orderID, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.paperWidth)); err != nil {
		s.metrics.PrintFailed(metrics.PrintKindReceipt)
		s.log.Warn("receipt print failed",
			zap.String("order_id", orderID.String()),
			zap.String("printer", s.printer.Kind()),
			zap.Error(err),
		)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	s.metrics.ReceiptRendered(metrics.FormatESCPOS)
	return receipt, nil
}

// PrintKOT prints the kitchen ticket for an order. Tickets carry no prices.
func (s *ReceiptService) PrintKOT(ctx context.Context, orderID, viewerID uuid.UUID) (*entity.KitchenTicket, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Order is cancelled")
	}
	tz, err := s.timezones.ResolveTimezone(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	ticket := &entity.KitchenTicket{
		InvoiceNo: order.InvoiceNo,
		Time:      tz.FormatLocal(order.OrderedAt, tzdate.StyleDateAndTime),
		OrderType: order.OrderType.Label(),
		TableNo:   order.TableNo,
		Note:      order.Note,
	}
	for _, it := range order.Items {
		ticket.Items = append(ticket.Items, entity.KitchenTicketItem{Name: it.Name, Quantity: it.Quantity, Note: it.Note})
	}

	if err := s.printer.Print(ctx, FormatKOT(ticket, s.paperWidth)); err != nil {
		s.metrics.PrintFailed(metrics.PrintKindKOT)
		s.log.Warn("kitchen ticket print failed",
			zap.String("order_id", orderID.String()),
			zap.String("printer", s.printer.Kind()),
			zap.Error(err),
		)
		return ticket, fmt.Errorf("failed to print kitchen ticket: %w", err)
	}
	return ticket, nil
}

// TestPrint sends a sample receipt. The sample is returned either way so a
// terminal without a printer can still show it.
func (s *ReceiptService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	tz, err := s.timezones.ResolveTimezone(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}
	items := []receiptcalc.LineItem{
		{Total: decimal.NewFromInt(115), VATRate: decimal.NewFromInt(15)},
		{Total: decimal.NewFromInt(40)},
	}
	amounts, err := receiptcalc.ComputeBreakdown(items, decimal.Zero, decimal.Zero, decimal.Zero)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: "PRINTER TEST", Address: s.restaurant.Name},
		InvoiceNo: "TEST-001",
		Date:      NoDate,
		Time:      NoDate,
		Timezone:  tz.Name(),
		OrderType: enum.OrderTypeDineIn.Label(),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: decimal.NewFromInt(115), Total: decimal.NewFromInt(115)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: decimal.NewFromInt(20), Total: decimal.NewFromInt(40)},
		},
		Amounts:  amounts,
		Paid:     amounts.GrandTotal,
		Due:      decimal.Zero,
		Currency: s.currency,
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.paperWidth)); err != nil {
		s.metrics.PrintFailed(metrics.PrintKindTest)
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a receipt into ESC/POS bytes for the given paper
// width in characters.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.VATRegNo != "" {
		doc.TextF("VAT Reg: %s", r.Header.VATRegNo)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date).
		KeyValue("Time:", r.Time)
	if r.OrderType != "" {
		kind := r.OrderType
		if r.TableNo != "" {
			kind += " / Table " + r.TableNo
		}
		doc.KeyValue("Order:", kind)
	}
	if r.PaymentType != "" {
		doc.KeyValue("Payment:", r.PaymentType)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total.StringFixed(2))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice.StringFixed(2))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", r.Amounts.Subtotal.StringFixed(2))
	if !r.Amounts.VAT.IsZero() {
		doc.KeyValue("VAT:", r.Amounts.VAT.StringFixed(2))
	}
	if !r.Amounts.ServiceCharge.IsZero() {
		doc.KeyValue("Service charge:", r.Amounts.ServiceCharge.StringFixed(2))
	}
	if !r.Amounts.Discount.IsZero() {
		doc.KeyValue("Discount:", "-"+r.Amounts.Discount.StringFixed(2))
	}
	total := "TOTAL:"
	if r.Currency != "" {
		total = "TOTAL " + r.Currency + ":"
	}
	doc.SetBold(true).
		KeyValue(total, r.Amounts.GrandTotal.StringFixed(2)).
		SetBold(false)

	if r.Paid.IsPositive() {
		doc.KeyValue("Paid:", r.Paid.StringFixed(2))
	}
	if r.Due.IsPositive() {
		doc.KeyValue("Due:", r.Due.StringFixed(2))
	}

	doc.Separator('-')

	footer := r.Footer
	if strings.TrimSpace(footer) == "" {
		footer = "Thank you!"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatKOT converts a kitchen ticket into ESC/POS bytes. Item lines are
// printed double height.
func FormatKOT(t *entity.KitchenTicket, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("KITCHEN ORDER").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('=')

	doc.KeyValue("Invoice:", t.InvoiceNo).
		KeyValue("Time:", t.Time)
	kind := t.OrderType
	if t.TableNo != "" {
		kind += " / Table " + t.TableNo
	}
	doc.KeyValue("Order:", kind).
		Separator('-')

	doc.SetFontSize(printer.FontTall)
	for _, item := range t.Items {
		doc.TextF("%dx %s", item.Quantity, item.Name)
		if item.Note != "" {
			doc.SetFontSize(printer.FontNormal).
				TextF("   * %s", item.Note).
				SetFontSize(printer.FontTall)
		}
	}
	doc.SetFontSize(printer.FontNormal)

	if t.Note != "" {
		doc.Separator('-').
			TextF("Note: %s", t.Note)
	}

	doc.Separator('=').
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
