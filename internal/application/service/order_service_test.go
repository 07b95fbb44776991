package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/pagination"
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/sangkips/restopos-api/pkg/tzdate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertSameBreakdown(t *testing.T, want, got receiptcalc.AmountBreakdown) {
	t.Helper()
	assert.True(t, want.Subtotal.Equal(got.Subtotal), "subtotal %s != %s", want.Subtotal, got.Subtotal)
	assert.True(t, want.VAT.Equal(got.VAT), "vat %s != %s", want.VAT, got.VAT)
	assert.True(t, want.ServiceCharge.Equal(got.ServiceCharge), "service charge %s != %s", want.ServiceCharge, got.ServiceCharge)
	assert.True(t, want.Discount.Equal(got.Discount), "discount %s != %s", want.Discount, got.Discount)
	assert.True(t, want.GrandTotal.Equal(got.GrandTotal), "grand total %s != %s", want.GrandTotal, got.GrandTotal)
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.CreateOrder(ctx, &CreateOrderInput{
		TableNo:   "7",
		OrderType: enum.OrderTypeDineIn,
		Items: []OrderItemInput{
			{Name: "  Kacchi Biryani ", Quantity: 2, UnitPrice: 230, VATRate: 15},
			{Name: "Borhani", Quantity: 1, UnitPrice: 50},
		},
		Discount: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, order.TotalItems)
	assert.True(t, order.Subtotal.Equal(dec("450")), "subtotal %s", order.Subtotal)
	assert.True(t, order.VAT.Equal(dec("60")), "vat %s", order.VAT)
	assert.True(t, order.Discount.Equal(dec("10")))
	assert.True(t, order.Total.Equal(dec("500")), "total %s", order.Total)
	assert.True(t, order.Due.Equal(dec("500")))
	assert.True(t, order.ExternalVAT.IsZero())
	assert.Equal(t, enum.OrderStatusOpen, order.OrderStatus)
	assert.True(t, order.OrderedAt.Equal(f.clock.Now()))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Kacchi Biryani", order.Items[0].Name)

	// 19:00 UTC on the 14th is already the 15th in Dhaka.
	assert.True(t, strings.HasPrefix(order.InvoiceNo, "INV-20240315-"), order.InvoiceNo)

	assert.Equal(t, 1.0, counterValue(t, f.metrics, "restopos_orders_created_total"))
	assert.Equal(t, 500.0, counterValue(t, f.metrics, "restopos_order_grand_total_sum"))
}

func TestOrderService_CreateOrder_InvoiceDateFollowsUserTimezone(t *testing.T) {
	f := newFixture(t)
	user := uuid.New()
	f.setTimezone(t, user, "America/New_York")

	order, err := f.orders.CreateOrder(context.Background(), &CreateOrderInput{
		UserID: user,
		Items:  []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.InvoiceNo, "INV-20240314-"), order.InvoiceNo)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user, *order.UserID)
	assert.Equal(t, enum.OrderTypeDineIn, order.OrderType)
}

func TestOrderService_CreateOrder_AuthoritativeVAT(t *testing.T) {
	f := newFixture(t)

	order, err := f.orders.CreateOrder(context.Background(), &CreateOrderInput{
		OrderType: enum.OrderTypeTakeaway,
		Items:     []OrderItemInput{{Name: "Platter", Quantity: 1, UnitPrice: 1000, VATRate: 15}},
		VAT:       100,
		Paid:      1000,
	})
	require.NoError(t, err)

	assert.True(t, order.ExternalVAT.Equal(dec("100")))
	assert.True(t, order.VAT.Equal(dec("100")))
	assert.True(t, order.Subtotal.Equal(dec("900")))
	assert.True(t, order.Total.Equal(dec("1000")))
	assert.True(t, order.Due.IsZero())
	assert.Equal(t, enum.OrderStatusPaid, order.OrderStatus)

	recomputed, err := order.Recompute()
	require.NoError(t, err)
	assertSameBreakdown(t, order.Breakdown(), recomputed)
}

func TestOrderService_CreateOrder_ServiceCharge(t *testing.T) {
	f := newFixture(t)
	f.orders.restaurant.ServiceChargeP = 10
	ctx := context.Background()
	items := []OrderItemInput{{Name: "Naan", Quantity: 3, UnitPrice: 17}}

	dineIn, err := f.orders.CreateOrder(ctx, &CreateOrderInput{OrderType: enum.OrderTypeDineIn, Items: items})
	require.NoError(t, err)
	// 10% of 51 rounds half up to 5.
	assert.True(t, dineIn.ServiceCharge.Equal(dec("5")), "service charge %s", dineIn.ServiceCharge)
	assert.True(t, dineIn.Total.Equal(dec("56")))

	takeaway, err := f.orders.CreateOrder(ctx, &CreateOrderInput{OrderType: enum.OrderTypeTakeaway, Items: items})
	require.NoError(t, err)
	assert.True(t, takeaway.ServiceCharge.IsZero())

	percent := 20.0
	explicit, err := f.orders.CreateOrder(ctx, &CreateOrderInput{OrderType: enum.OrderTypeTakeaway, Items: items, ServiceCharge: 99, ServiceChargePercent: &percent})
	require.NoError(t, err)
	assert.True(t, explicit.ServiceCharge.Equal(dec("10")), "service charge %s", explicit.ServiceCharge)
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		input  CreateOrderInput
		status int
	}{
		{
			name:   "no items",
			input:  CreateOrderInput{},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "zero quantity",
			input:  CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 0, UnitPrice: 20}}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown order type",
			input:  CreateOrderInput{OrderType: "drive_through", Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "negative price",
			input:  CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: -20}}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "negative discount",
			input:  CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}}, Discount: -1},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "negative vat rate",
			input:  CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20, VATRate: -5}}},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := f.orders.CreateOrder(ctx, &input)
			require.Error(t, err)
			assert.Equal(t, tt.status, apperror.GetAppError(err).Code)
		})
	}

	_, err := f.orders.CreateOrder(ctx, &CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}}, Discount: -1})
	assert.True(t, errors.Is(err, receiptcalc.ErrInvalidAmount))
}

func TestOrderService_ListOrders_ByLocalDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 15 March in Dhaka runs from 14 March 18:00 UTC to 15 March 18:00 UTC.
	before := f.placeOrder(t, time.Date(2024, 3, 14, 17, 59, 59, 0, time.UTC))
	first := f.placeOrder(t, time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC))
	last := f.placeOrder(t, time.Date(2024, 3, 15, 17, 59, 59, 999_000_000, time.UTC))
	after := f.placeOrder(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))

	result, err := f.orders.ListOrders(ctx, &ListOrdersInput{Date: "2024-03-15", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, first.ID, result.Items[0].ID)
	assert.Equal(t, last.ID, result.Items[1].ID)
	assert.Equal(t, int64(2), result.Pagination.Total)

	ids := []uuid.UUID{result.Items[0].ID, result.Items[1].ID}
	assert.NotContains(t, ids, before.ID)
	assert.NotContains(t, ids, after.ID)

	all, err := f.orders.ListOrders(ctx, &ListOrdersInput{Pagination: &pagination.PaginationParams{Page: 1, PerPage: 3}})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, int64(4), all.Pagination.Total)

	_, err = f.orders.ListOrders(ctx, &ListOrdersInput{Date: "15/03/2024"})
	var parseErr *tzdate.DateParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestOrderService_CancelOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, f.clock.Now())

	cancelled, err := f.orders.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.OrderStatus)
	assert.Len(t, cancelled.Items, 1)

	_, err = f.orders.CancelOrder(ctx, order.ID)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = f.orders.CancelOrder(ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	_, err = f.orders.PayDue(ctx, order.ID, 10, "cash")
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestOrderService_PayDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, f.clock.Now())
	require.True(t, order.Total.Equal(dec("115")))

	partial, err := f.orders.PayDue(ctx, order.ID, 100, "cash")
	require.NoError(t, err)
	assert.True(t, partial.Due.Equal(dec("15")))
	assert.Equal(t, enum.OrderStatusOpen, partial.OrderStatus)
	assert.Equal(t, "cash", partial.PaymentType)

	settled, err := f.orders.PayDue(ctx, order.ID, 20, "")
	require.NoError(t, err)
	assert.True(t, settled.Paid.Equal(dec("120")))
	assert.True(t, settled.Due.IsZero())
	assert.Equal(t, enum.OrderStatusPaid, settled.OrderStatus)
	assert.Equal(t, "cash", settled.PaymentType)
	assert.Len(t, settled.Items, 1)

	_, err = f.orders.CancelOrder(ctx, order.ID)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = f.orders.PayDue(ctx, order.ID, 0, "cash")
	assert.True(t, errors.Is(err, receiptcalc.ErrInvalidAmount))
}

func TestOrderService_CreateOrder_UnitPriceKeepsTwoDecimals(t *testing.T) {
	f := newFixture(t)

	order, err := f.orders.CreateOrder(context.Background(), &CreateOrderInput{
		Items: []OrderItemInput{{Name: "Lassi", Quantity: 3, UnitPrice: 33.333, VATRate: 15}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	assert.True(t, order.Items[0].UnitPrice.Equal(dec("33.33")), "unit price %s", order.Items[0].UnitPrice)
	assert.True(t, order.Items[0].Total.Equal(dec("99.99")), "line total %s", order.Items[0].Total)
	assert.True(t, order.VAT.Equal(dec("13")), "vat %s", order.VAT)
	assert.True(t, order.Total.Equal(dec("100")), "total %s", order.Total)

	recomputed, err := order.Recompute()
	require.NoError(t, err)
	assertSameBreakdown(t, order.Breakdown(), recomputed)
}

func TestOrderService_CreateOrder_InvoiceCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.orders.invoiceSuffix = func() string { return "deadbeef" }
	first, err := f.orders.CreateOrder(ctx, &CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}}})
	require.NoError(t, err)
	assert.Equal(t, "INV-20240315-deadbeef", first.InvoiceNo)

	// Every attempt collides.
	_, err = f.orders.CreateOrder(ctx, &CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}}})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Equal(t, invoiceAttempts, f.logs.FilterMessage("invoice number collision").Len())

	// A retry that finds a free number succeeds.
	suffixes := []string{"deadbeef", "cafebabe"}
	f.orders.invoiceSuffix = func() string {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}
	second, err := f.orders.CreateOrder(ctx, &CreateOrderInput{Items: []OrderItemInput{{Name: "Tea", Quantity: 1, UnitPrice: 20}}})
	require.NoError(t, err)
	assert.Equal(t, "INV-20240315-cafebabe", second.InvoiceNo)
}
