package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/technovapc/store-manager/internal/dependency"
	"github.com/technovapc/store-manager/internal/entity"
)

// Config holds the engine tunables exposed through the service config.
type Config struct {
	TopProductsLimit int `mapstructure:"top_products_limit"`
	// RecentOrdersForBaseline is how many qualifying orders feed the
	// secondary forecast baseline when monthly history is empty.
	RecentOrdersForBaseline int `mapstructure:"recent_orders_for_baseline"`
}

// Service runs the financial analytics pipelines over an injected order
// source. It holds no mutable state; every call computes from a fresh
// fetch and the results are request-scoped values.
type Service struct {
	orders        dependency.OrderSource
	topLimit      int
	recentForBase int
	now           func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the analytics service around an order source.
func New(orders dependency.OrderSource, c Config, opts ...Option) *Service {
	s := &Service{
		orders:        orders,
		topLimit:      c.TopProductsLimit,
		recentForBase: c.RecentOrdersForBaseline,
		now:           time.Now,
	}
	if s.topLimit <= 0 {
		s.topLimit = DefaultTopProductsLimit
	}
	if s.recentForBase <= 0 {
		s.recentForBase = 10
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RevenueOverview resolves the requested period and its predecessor,
// fetches both order sets and assembles the full revenue response:
// aggregate, time series, growth comparison and product ranking, all
// computed from the same in-memory sets. The two fetches are read-only
// and independent, so they run concurrently and join before any
// computation starts.
func (s *Service) RevenueOverview(ctx context.Context, g Granularity, customStart, customEnd *time.Time) (*entity.RevenueOverview, error) {
	current, previous, err := ResolvePeriod(g, s.now(), customStart, customEnd)
	if err != nil {
		return nil, err
	}

	var currentOrders, previousOrders []entity.OrderRecord
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		currentOrders, err = s.orders.GetOrdersInRange(egCtx, current.From, current.To)
		return err
	})
	eg.Go(func() error {
		var err error
		previousOrders, err = s.orders.GetOrdersInRange(egCtx, previous.From, previous.To)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	currentAgg := Aggregate(currentOrders)
	previousAgg := Aggregate(previousOrders)

	return &entity.RevenueOverview{
		Period:      current,
		PeriodName:  string(g),
		Aggregate:   currentAgg,
		OverTime:    BucketRevenue(currentOrders, g),
		Comparison:  Growth(currentAgg, previousAgg),
		TopProducts: TopProducts(currentOrders, s.topLimit),
	}, nil
}

// ForecastReport pairs a projection with the inputs it was derived from.
type ForecastReport struct {
	entity.ForecastResult
	History          []entity.MonthlyRevenue
	GrowthAssumption decimal.Decimal
	SeasonalFactors  map[time.Month]decimal.Decimal
	Months           int
}

// Forecast builds up to one trailing year of monthly history from
// qualifying orders and projects it forward. The baseline degrades in
// defined steps: mean of history, then mean recent order value scaled to
// a month, then a fixed default; no input makes this an error path.
func (s *Service) Forecast(ctx context.Context, months int, growthPct decimal.Decimal, seasonal map[time.Month]decimal.Decimal) (*ForecastReport, error) {
	now := s.now()

	history, err := s.orders.GetMonthlyRevenueHistory(ctx, now.AddDate(-1, 0, 0), now)
	if err != nil {
		return nil, fmt.Errorf("fetch monthly history: %w", err)
	}

	baseline, ok := BaselineFromHistory(history)
	if !ok {
		recent, err := s.orders.GetRecentQualifyingOrders(ctx, s.recentForBase)
		if err != nil {
			return nil, fmt.Errorf("fetch recent orders: %w", err)
		}
		baseline, ok = BaselineFromOrders(recent)
		if !ok {
			baseline = fallbackBaseline
		}
	}

	result := Project(baseline, now, ForecastParams{
		Months:           months,
		MonthlyGrowthPct: growthPct,
		SeasonalFactors:  seasonal,
	})

	if history == nil {
		history = []entity.MonthlyRevenue{}
	}
	return &ForecastReport{
		ForecastResult:   result,
		History:          history,
		GrowthAssumption: growthPct,
		SeasonalFactors:  seasonal,
		Months:           months,
	}, nil
}

// ReportType selects the shape of a financial report.
type ReportType string

const (
	ReportTypeSummary  ReportType = "summary"
	ReportTypeDetailed ReportType = "detailed"
	ReportTypeExport   ReportType = "export"
)

// ParseReportType maps the type query parameter; empty defaults to summary.
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case ReportTypeSummary, ReportTypeDetailed, ReportTypeExport:
		return ReportType(s), nil
	case "":
		return ReportTypeSummary, nil
	default:
		return "", fmt.Errorf("unknown report type %q", s)
	}
}

// Report is the tagged union of report variants. The concrete shape is
// decided once here; the HTTP boundary switches on the variant instead
// of assembling an untyped object.
type Report interface {
	isReport()
}

// SummaryReport is the aggregate-only report variant.
type SummaryReport struct {
	Period    entity.TimeRange
	Aggregate entity.RevenueAggregate
}

// DetailedReport extends the summary with the full order list and
// product ranking.
type DetailedReport struct {
	SummaryReport
	Orders      []entity.OrderRecord
	TopProducts []entity.RankedProduct
}

// ExportReport carries the raw order rows for CSV rendering.
type ExportReport struct {
	Period entity.TimeRange
	Orders []entity.OrderRecord
}

func (SummaryReport) isReport()  {}
func (DetailedReport) isReport() {}
func (ExportReport) isReport()   {}

// Report fetches orders for a reporting range and builds the requested
// variant. Omitted endpoints default to the trailing month, resolved
// against the service clock like the custom period; the range is
// validated before any query is issued.
func (s *Service) Report(ctx context.Context, from, to *time.Time, typ ReportType) (Report, error) {
	now := s.now()
	start := now.AddDate(0, -1, 0)
	if from != nil {
		start = *from
	}
	end := now
	if to != nil {
		end = *to
	}
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	orders, err := s.orders.GetOrdersInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	period := entity.TimeRange{From: start, To: end}

	switch typ {
	case ReportTypeDetailed:
		return DetailedReport{
			SummaryReport: SummaryReport{Period: period, Aggregate: Aggregate(orders)},
			Orders:        orders,
			TopProducts:   TopProducts(orders, s.topLimit),
		}, nil
	case ReportTypeExport:
		return ExportReport{Period: period, Orders: orders}, nil
	default:
		return SummaryReport{Period: period, Aggregate: Aggregate(orders)}, nil
	}
}
