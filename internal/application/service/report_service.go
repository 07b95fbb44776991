package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/clock"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/pkg/apperror"
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/sangkips/restopos-api/pkg/tzdate"
	"github.com/shopspring/decimal"
)

const maxTrendDays = 90

// ReportService aggregates sales over local business days.
type ReportService struct {
	orderRepo repository.OrderRepository
	timezones TimezoneResolver
	clock     clock.Clock
}

func NewReportService(orderRepo repository.OrderRepository, timezones TimezoneResolver, clk clock.Clock) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		timezones: timezones,
		clock:     clk,
	}
}

type DailyReport struct {
	Date        string                      `json:"date"`
	Timezone    string                      `json:"timezone"`
	Boundary    tzdate.DayBoundary          `json:"boundary"`
	OrderCount  int                         `json:"order_count"`
	ByStatus    map[string]int              `json:"by_status"`
	ByOrderType map[string]decimal.Decimal  `json:"by_order_type"`
	Totals      receiptcalc.AmountBreakdown `json:"totals"`
	Paid        decimal.Decimal             `json:"paid"`
	Due         decimal.Decimal             `json:"due"`
	Hourly      []HourlySales               `json:"hourly"`
}

// HourlySales is keyed by the local wall-clock hour, 0 to 23.
type HourlySales struct {
	Hour    int             `json:"hour"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type SalesPoint struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	VAT     decimal.Decimal `json:"vat"`
}

type SalesTrend struct {
	Timezone string          `json:"timezone"`
	Days     int             `json:"days"`
	Points   []SalesPoint    `json:"points"`
	Total    decimal.Decimal `json:"total"`
}

// DailyReport summarizes the orders placed on a local date ("YYYY-MM-DD")
// in the viewer's timezone. An empty date means today. Cancelled orders are
// counted by status but excluded from the amounts.
func (s *ReportService) DailyReport(ctx context.Context, viewerID uuid.UUID, date string) (*DailyReport, error) {
	tz, err := s.timezones.ResolveTimezone(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = tz.DateOnly(s.clock.Now())
	}
	day, err := tz.BoundaryOfDate(date)
	if err != nil {
		return nil, err
	}

	end := day.End.Add(time.Millisecond)
	placed, err := s.orderRepo.CountBetween(ctx, day.Start, end)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListBetween(ctx, day.Start, end, enum.OrderStatusOpen, enum.OrderStatusPaid)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:        date,
		Timezone:    tz.Name(),
		Boundary:    day,
		OrderCount:  int(placed),
		ByStatus:    map[string]int{},
		ByOrderType: map[string]decimal.Decimal{},
		Paid:        decimal.Zero,
		Due:         decimal.Zero,
	}

	hourly := make([]HourlySales, 24)
	for h := range hourly {
		hourly[h] = HourlySales{Hour: h, Revenue: decimal.Zero}
	}

	if cancelled := report.OrderCount - len(orders); cancelled > 0 {
		report.ByStatus[enum.OrderStatusCancelled.String()] = cancelled
	}

	counted := make([]receiptcalc.AmountBreakdown, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		report.ByStatus[o.OrderStatus.String()]++
		counted = append(counted, o.Breakdown())
		report.Paid = report.Paid.Add(o.Paid)
		report.Due = report.Due.Add(o.Due)

		kind := string(o.OrderType)
		report.ByOrderType[kind] = report.ByOrderType[kind].Add(o.Total)

		h := o.OrderedAt.In(tz.Location()).Hour()
		hourly[h].Orders++
		hourly[h].Revenue = hourly[h].Revenue.Add(o.Total)
	}
	report.Totals = receiptcalc.Sum(counted...)

	for _, h := range hourly {
		if h.Orders > 0 {
			report.Hourly = append(report.Hourly, h)
		}
	}
	return report, nil
}

// SalesTrend returns one point per local day for the last days days,
// today included, oldest first.
func (s *ReportService) SalesTrend(ctx context.Context, viewerID uuid.UUID, days int) (*SalesTrend, error) {
	if days < 1 || days > maxTrendDays {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "days", Message: "must be between 1 and 90"}})
	}
	tz, err := s.timezones.ResolveTimezone(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	today, err := time.Parse(tzdate.DateLayout, tz.DateOnly(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	dates := make([]string, days)
	index := make(map[string]int, days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i-days+1).Format(tzdate.DateLayout)
		index[dates[i]] = i
	}

	first, err := tz.BoundaryOfDate(dates[0])
	if err != nil {
		return nil, err
	}
	last, err := tz.BoundaryOfDate(dates[days-1])
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListBetween(ctx, first.Start, last.End.Add(time.Millisecond),
		enum.OrderStatusOpen, enum.OrderStatusPaid)
	if err != nil {
		return nil, err
	}

	trend := &SalesTrend{Timezone: tz.Name(), Days: days, Points: make([]SalesPoint, days), Total: decimal.Zero}
	for i, d := range dates {
		trend.Points[i] = SalesPoint{Date: d, Revenue: decimal.Zero, VAT: decimal.Zero}
	}
	for i := range orders {
		o := &orders[i]
		idx, ok := index[tz.DateOnly(o.OrderedAt)]
		if !ok {
			continue
		}
		p := &trend.Points[idx]
		p.Orders++
		p.Revenue = p.Revenue.Add(o.Total)
		p.VAT = p.VAT.Add(o.VAT)
		trend.Total = trend.Total.Add(o.Total)
	}
	return trend, nil
}
