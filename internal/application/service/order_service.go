package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/clock"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/metrics"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/pagination"
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderService struct {
	orderRepo  repository.OrderRepository
	timezones  TimezoneResolver
	clock      clock.Clock
	restaurant config.RestaurantConfig
	log        *zap.Logger
	metrics    *metrics.POSMetrics

	// invoiceSuffix yields the random tail of an invoice number.
	invoiceSuffix func() string
}

const invoiceAttempts = 3

func NewOrderService(
	orderRepo repository.OrderRepository,
	timezones TimezoneResolver,
	clk clock.Clock,
	restaurant config.RestaurantConfig,
	log *zap.Logger,
	m *metrics.POSMetrics,
) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	if restaurant.InvoicePrefix == "" {
		restaurant.InvoicePrefix = "INV"
	}
	return &OrderService{
		orderRepo:     orderRepo,
		timezones:     timezones,
		clock:         clk,
		restaurant:    restaurant,
		log:           log,
		metrics:       m,
		invoiceSuffix: randomInvoiceSuffix,
	}
}

func randomInvoiceSuffix() string {
	return uuid.New().String()[:8]
}

type OrderItemInput struct {
	Name      string
	Quantity  int
	UnitPrice float64 // VAT inclusive
	VATRate   float64 // percent, 0 for exempt items
	Note      string
}

// CreateOrderInput describes a new bill. ServiceChargePercent, when set,
// takes precedence over the flat ServiceCharge. VAT is an authoritative
// amount from an external fiscal device; zero means derive it from the items.
type CreateOrderInput struct {
	UserID               uuid.UUID
	TableNo              string
	OrderType            enum.OrderType
	Items                []OrderItemInput
	VAT                  float64
	ServiceCharge        float64
	ServiceChargePercent *float64
	Discount             float64
	Paid                 float64
	PaymentType          string
	Note                 string
}

// CreateOrder prices the bill with receiptcalc and stores it. The invoice
// number carries the local business date of the user's timezone.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "items", Message: "at least one item is required"}})
	}
	orderType := input.OrderType
	if orderType == "" {
		orderType = enum.OrderTypeDineIn
	}
	if !orderType.Valid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "order_type", Message: "must be dine_in, takeaway or delivery"}})
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	itemsTotal := decimal.Zero
	totalQty := 0
	for i, in := range input.Items {
		if in.Quantity < 1 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be at least 1"}})
		}
		unitPrice, err := receiptcalc.FromFloat(fmt.Sprintf("items[%d].unit_price", i), in.UnitPrice)
		if err != nil {
			return nil, err
		}
		// Prices are stored with two decimals; price the bill on what is stored.
		unitPrice = unitPrice.Round(2)
		if unitPrice.IsNegative() {
			return nil, &receiptcalc.InvalidAmountError{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: "must not be negative"}
		}
		rate, err := receiptcalc.FromFloat(fmt.Sprintf("items[%d].vat_rate", i), in.VATRate)
		if err != nil {
			return nil, err
		}

		total := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		itemsTotal = itemsTotal.Add(total)
		totalQty += in.Quantity
		items = append(items, entity.OrderItem{
			Name:      strings.TrimSpace(in.Name),
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Total:     total,
			VATRate:   rate,
			Note:      in.Note,
		})
	}

	serviceCharge, err := s.serviceCharge(input, orderType, itemsTotal)
	if err != nil {
		return nil, err
	}
	vat, err := receiptcalc.FromFloat("vat", input.VAT)
	if err != nil {
		return nil, err
	}
	discount, err := receiptcalc.FromFloat("discount", input.Discount)
	if err != nil {
		return nil, err
	}
	paid, err := receiptcalc.FromFloat("paid", input.Paid)
	if err != nil {
		return nil, err
	}
	if paid.IsNegative() {
		return nil, &receiptcalc.InvalidAmountError{Field: "paid", Reason: "must not be negative"}
	}

	order := &entity.Order{
		TableNo:     input.TableNo,
		OrderType:   orderType,
		TotalItems:  totalQty,
		Paid:        paid,
		PaymentType: input.PaymentType,
		Note:        input.Note,
		Items:       items,
	}
	breakdown, err := receiptcalc.ComputeBreakdown(order.LineItems(), vat, serviceCharge, discount)
	if err != nil {
		return nil, err
	}
	order.ApplyBreakdown(breakdown)
	if vat.IsPositive() {
		order.ExternalVAT = vat
	}

	tz, err := s.timezones.ResolveTimezone(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	order.OrderedAt = now
	invoiceNo, err := s.nextInvoiceNo(ctx, strings.ReplaceAll(tz.DateOnly(now), "-", ""))
	if err != nil {
		return nil, err
	}
	order.InvoiceNo = invoiceNo
	if input.UserID != uuid.Nil {
		uid := input.UserID
		order.UserID = &uid
	}
	order.OrderStatus = statusFor(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.OrderCreated(string(orderType), order.Total.InexactFloat64())
	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("invoice_no", order.InvoiceNo),
		zap.String("total", order.Total.String()),
		zap.String("timezone", tz.Name()),
	)

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// nextInvoiceNo builds PREFIX-YYYYMMDD-xxxxxxxx, retrying when the number is
// already taken.
func (s *OrderService) nextInvoiceNo(ctx context.Context, localDate string) (string, error) {
	for range invoiceAttempts {
		invoiceNo := fmt.Sprintf("%s-%s-%s", s.restaurant.InvoicePrefix, localDate, s.invoiceSuffix())
		existing, err := s.orderRepo.GetByInvoiceNo(ctx, invoiceNo)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return invoiceNo, nil
		}
		s.log.Warn("invoice number collision", zap.String("invoice_no", invoiceNo))
	}
	return "", apperror.NewConflictError("Could not allocate a unique invoice number")
}

func (s *OrderService) serviceCharge(input *CreateOrderInput, orderType enum.OrderType, itemsTotal decimal.Decimal) (decimal.Decimal, error) {
	if input.ServiceChargePercent != nil {
		percent, err := receiptcalc.FromFloat("service_charge_percent", *input.ServiceChargePercent)
		if err != nil {
			return decimal.Zero, err
		}
		return receiptcalc.ServiceChargeFor(itemsTotal, percent)
	}
	flat, err := receiptcalc.FromFloat("service_charge", input.ServiceCharge)
	if err != nil {
		return decimal.Zero, err
	}
	if !flat.IsZero() {
		return flat, nil
	}
	if orderType == enum.OrderTypeDineIn && s.restaurant.ServiceChargeP > 0 {
		return receiptcalc.ServiceChargeFor(itemsTotal, decimal.NewFromFloat(s.restaurant.ServiceChargeP))
	}
	return decimal.Zero, nil
}

func statusFor(o *entity.Order) enum.OrderStatus {
	if o.Due.IsZero() {
		return enum.OrderStatusPaid
	}
	return enum.OrderStatusOpen
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrdersInput filters the order list. Date is a local "YYYY-MM-DD" in
// the viewer's timezone.
type ListOrdersInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	OrderType  *enum.OrderType
	Search     string
	Date       string
	SortOrder  string
}

func (s *OrderService) ListOrders(ctx context.Context, input *ListOrdersInput) (*pagination.PaginatedResult[entity.Order], error) {
	params := &repository.OrderFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		OrderType:  input.OrderType,
		SortOrder:  input.SortOrder,
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	if input.Date != "" {
		tz, err := s.timezones.ResolveTimezone(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		day, err := tz.BoundaryOfDate(input.Date)
		if err != nil {
			return nil, err
		}
		from, to := day.Start, day.End.Add(time.Millisecond)
		params.OrderedFrom = &from
		params.OrderedTo = &to
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	switch order.OrderStatus {
	case enum.OrderStatusCancelled:
		return nil, apperror.NewBadRequestError("Order is already cancelled")
	case enum.OrderStatusPaid:
		return nil, apperror.NewBadRequestError("Paid orders cannot be cancelled")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
		return nil, err
	}
	s.log.Info("order cancelled", zap.String("order_id", orderID.String()))
	return s.GetOrder(ctx, orderID)
}

// PayDue records a payment against the outstanding amount. Overpayment is
// kept in Paid; Due never goes below zero.
func (s *OrderService) PayDue(ctx context.Context, orderID uuid.UUID, amount float64, paymentType string) (*entity.Order, error) {
	pay, err := receiptcalc.FromFloat("amount", amount)
	if err != nil {
		return nil, err
	}
	if !pay.IsPositive() {
		return nil, &receiptcalc.InvalidAmountError{Field: "amount", Reason: "must be greater than zero"}
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.OrderStatus == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot pay a cancelled order")
	}

	order.Paid = order.Paid.Add(pay)
	order.Due = decimal.Max(order.Total.Sub(order.Paid), decimal.Zero)
	if paymentType != "" {
		order.PaymentType = paymentType
	}
	order.OrderStatus = statusFor(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}
