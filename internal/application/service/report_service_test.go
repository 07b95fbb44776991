package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/tzdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedReportDay places three orders on 15 March in Dhaka (one paid, one
// open, one cancelled) and one just after midnight on the 16th.
func seedReportDay(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	f.placeOrder(t, time.Date(2024, 3, 14, 18, 30, 0, 0, time.UTC))

	paid := f.placeOrder(t, time.Date(2024, 3, 15, 5, 0, 0, 0, time.UTC), biryani())
	_, err := f.orders.PayDue(ctx, paid.ID, 460, "card")
	require.NoError(t, err)

	cancelled := f.placeOrder(t, time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	_, err = f.orders.CancelOrder(ctx, cancelled.ID)
	require.NoError(t, err)

	f.placeOrder(t, time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC))
}

func TestReportService_DailyReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedReportDay(t, f)

	report, err := f.reports.DailyReport(ctx, uuid.Nil, "2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, "Asia/Dhaka", report.Timezone)
	assert.True(t, report.Boundary.Start.Equal(time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, report.OrderCount)
	assert.Equal(t, map[string]int{"Open": 1, "Paid": 1, "Cancelled": 1}, report.ByStatus)

	assert.True(t, report.Totals.GrandTotal.Equal(dec("575")), "grand total %s", report.Totals.GrandTotal)
	assert.True(t, report.Totals.VAT.Equal(dec("75")))
	assert.True(t, report.Totals.Subtotal.Equal(dec("500")))
	assert.True(t, report.Paid.Equal(dec("460")))
	assert.True(t, report.Due.Equal(dec("115")))
	assert.True(t, report.ByOrderType["takeaway"].Equal(dec("575")))

	require.Len(t, report.Hourly, 2)
	assert.Equal(t, 0, report.Hourly[0].Hour)
	assert.Equal(t, 11, report.Hourly[1].Hour)
	assert.True(t, report.Hourly[1].Revenue.Equal(dec("460")))

	// Without a date the report covers the viewer's current local day.
	f.clock.Set(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	today, err := f.reports.DailyReport(ctx, uuid.Nil, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", today.Date)
	assertSameBreakdown(t, report.Totals, today.Totals)
}

func TestReportService_DailyReport_OtherTimezone(t *testing.T) {
	f := newFixture(t)
	seedReportDay(t, f)
	viewer := uuid.New()
	f.setTimezone(t, viewer, "UTC")

	report, err := f.reports.DailyReport(context.Background(), viewer, "2024-03-15")
	require.NoError(t, err)
	// In UTC the first order belongs to the 14th and the last to the 15th.
	assert.Equal(t, 3, report.OrderCount)
	assert.Equal(t, map[string]int{"Paid": 1, "Cancelled": 1, "Open": 1}, report.ByStatus)
	assert.True(t, report.Totals.GrandTotal.Equal(dec("575")))
	require.Len(t, report.Hourly, 2)
	assert.Equal(t, 5, report.Hourly[0].Hour)
	assert.Equal(t, 18, report.Hourly[1].Hour)
}

func TestReportService_DailyReport_BadDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.DailyReport(context.Background(), uuid.Nil, "2024-02-30")
	var parseErr *tzdate.DateParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestReportService_SalesTrend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedReportDay(t, f)
	f.clock.Set(time.Date(2024, 3, 16, 3, 0, 0, 0, time.UTC))

	trend, err := f.reports.SalesTrend(ctx, uuid.Nil, 3)
	require.NoError(t, err)
	require.Len(t, trend.Points, 3)

	assert.Equal(t, "2024-03-14", trend.Points[0].Date)
	assert.Equal(t, 0, trend.Points[0].Orders)
	assert.True(t, trend.Points[0].Revenue.IsZero())

	assert.Equal(t, "2024-03-15", trend.Points[1].Date)
	assert.Equal(t, 2, trend.Points[1].Orders)
	assert.True(t, trend.Points[1].Revenue.Equal(dec("575")))
	assert.True(t, trend.Points[1].VAT.Equal(dec("75")))

	assert.Equal(t, "2024-03-16", trend.Points[2].Date)
	assert.Equal(t, 1, trend.Points[2].Orders)
	assert.True(t, trend.Total.Equal(dec("690")))

	for _, days := range []int{0, 91} {
		_, err := f.reports.SalesTrend(ctx, uuid.Nil, days)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code, "days=%d", days)
	}
}
