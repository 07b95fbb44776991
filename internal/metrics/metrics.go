package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	FormatJSON   = "json"
	FormatPDF    = "pdf"
	FormatESCPOS = "escpos"

	PrintKindReceipt = "receipt"
	PrintKindKOT     = "kot"
	PrintKindTest    = "test"
)

// POSMetrics counts point-of-sale activity. A nil *POSMetrics is valid and
// records nothing.
type POSMetrics struct {
	registry         *prometheus.Registry
	ordersCreated    *prometheus.CounterVec
	orderAmount      *prometheus.CounterVec
	receiptsRendered *prometheus.CounterVec
	printFailures    *prometheus.CounterVec
	tzFallbacks      prometheus.Counter
}

func New(serviceName, environment string) *POSMetrics {
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		serviceName = "restopos"
	}
	environment = strings.TrimSpace(environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &POSMetrics{
		registry: prometheus.NewRegistry(),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "restopos_orders_created_total",
			Help:        "Orders created by order type.",
			ConstLabels: constLabels,
		}, []string{"order_type"}),
		orderAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "restopos_order_grand_total_sum",
			Help:        "Sum of grand totals of created orders, in currency units.",
			ConstLabels: constLabels,
		}, []string{"order_type"}),
		receiptsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "restopos_receipts_rendered_total",
			Help:        "Receipts rendered by output format.",
			ConstLabels: constLabels,
		}, []string{"format"}),
		printFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "restopos_print_failures_total",
			Help:        "Failed print jobs by kind.",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		tzFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "restopos_timezone_fallbacks_total",
			Help:        "Requests served with the default timezone because the stored one was unusable.",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		m.ordersCreated,
		m.orderAmount,
		m.receiptsRendered,
		m.printFailures,
		m.tzFallbacks,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *POSMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *POSMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *POSMetrics) OrderCreated(orderType string, grandTotal float64) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(orderType).Inc()
	if grandTotal > 0 {
		m.orderAmount.WithLabelValues(orderType).Add(grandTotal)
	}
}

func (m *POSMetrics) ReceiptRendered(format string) {
	if m == nil {
		return
	}
	m.receiptsRendered.WithLabelValues(format).Inc()
}

func (m *POSMetrics) PrintFailed(kind string) {
	if m == nil {
		return
	}
	m.printFailures.WithLabelValues(kind).Inc()
}

func (m *POSMetrics) TimezoneFallback() {
	if m == nil {
		return
	}
	m.tzFallbacks.Inc()
}
