package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/clock"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/infrastructure/repository"
	"github.com/sangkips/restopos-api/internal/metrics"
	"github.com/sangkips/restopos-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakePrinter records jobs, or fails every job when err is set.
type fakePrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *fakePrinter) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *fakePrinter) IsConnected(context.Context) bool { return p.err == nil }

func (p *fakePrinter) Kind() string { return "network" }

type fixture struct {
	orderRepo    domainRepo.OrderRepository
	settingsRepo domainRepo.SettingsRepository
	settings     *SettingsService
	orders       *OrderService
	receipts     *ReceiptService
	reports      *ReportService
	clock        *clock.Manual
	printer      *fakePrinter
	metrics      *metrics.POSMetrics
	logs         *observer.ObservedLogs
}

var testRestaurant = config.RestaurantConfig{
	Name:          "Dhaba House",
	Address:       "House 12, Road 5, Dhanmondi",
	Phone:         "+880 1700 000000",
	VATRegNo:      "000123456-0101",
	Footer:        "Thank you, come again",
	InvoicePrefix: "INV",
}

// newFixture wires every service against an in-memory database. The clock
// starts at 2024-03-14T19:00:00Z, which is 01:00 on 15 March in Dhaka.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	m := metrics.New("restopos-test", "test")

	f := &fixture{
		orderRepo:    repository.NewOrderRepository(db),
		settingsRepo: repository.NewSettingsRepository(db),
		clock:        clock.NewManual(time.Date(2024, 3, 14, 19, 0, 0, 0, time.UTC)),
		printer:      &fakePrinter{},
		metrics:      m,
		logs:         logs,
	}

	settings, err := NewSettingsService(f.settingsRepo, config.LocaleConfig{DefaultTimezone: "Asia/Dhaka", Currency: "BDT"}, log, m)
	require.NoError(t, err)
	f.settings = settings
	f.orders = NewOrderService(f.orderRepo, settings, f.clock, testRestaurant, log, m)
	f.receipts = NewReceiptService(f.orderRepo, settings, f.printer, config.PrinterConfig{PaperWidth: 32}, testRestaurant, "BDT", log, m)
	f.reports = NewReportService(f.orderRepo, settings, f.clock)
	return f
}

// setTimezone stores tz for the user without validating it.
func (f *fixture) setTimezone(t *testing.T, userID uuid.UUID, tz string) {
	t.Helper()
	require.NoError(t, f.settingsRepo.Create(context.Background(), &entity.UserSettings{UserID: userID, Timezone: tz}))
}

func (f *fixture) placeOrder(t *testing.T, at time.Time, items ...OrderItemInput) *entity.Order {
	t.Helper()
	f.clock.Set(at)
	if len(items) == 0 {
		items = []OrderItemInput{{Name: "Kacchi Biryani", Quantity: 1, UnitPrice: 115, VATRate: 15}}
	}
	order, err := f.orders.CreateOrder(context.Background(), &CreateOrderInput{
		OrderType: "takeaway",
		Items:     items,
	})
	require.NoError(t, err)
	return order
}

// counterValue sums every series of the named counter.
func counterValue(t *testing.T, m *metrics.POSMetrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
