package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPOSMetrics_Counters(t *testing.T) {
	m := New("restopos", "test")

	m.OrderCreated("dine_in", 460)
	m.OrderCreated("dine_in", 115)
	m.OrderCreated("takeaway", 0)
	m.ReceiptRendered(FormatPDF)
	m.PrintFailed(PrintKindKOT)
	m.TimezoneFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersCreated.WithLabelValues("dine_in")))
	assert.Equal(t, 575.0, testutil.ToFloat64(m.orderAmount.WithLabelValues("dine_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCreated.WithLabelValues("takeaway")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.receiptsRendered.WithLabelValues(FormatPDF)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.printFailures.WithLabelValues(PrintKindKOT)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tzFallbacks))
}

func TestPOSMetrics_Handler(t *testing.T) {
	m := New("", "")
	m.TimezoneFallback()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `restopos_timezone_fallbacks_total{env="unknown",service="restopos"} 1`)
}

func TestPOSMetrics_NilIsNoop(t *testing.T) {
	var m *POSMetrics
	assert.NotPanics(t, func() {
		m.OrderCreated("dine_in", 1)
		m.ReceiptRendered(FormatJSON)
		m.PrintFailed(PrintKindReceipt)
		m.TimezoneFallback()
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
