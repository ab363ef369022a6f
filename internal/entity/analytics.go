package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange is a half-open interval [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Span returns the length of the range.
func (r TimeRange) Span() time.Duration {
	return r.To.Sub(r.From)
}

// RevenueAggregate is the roll-up of one order set for one period.
// Both breakdown maps always carry every enum key, zero-valued when
// nothing matched, so consumers never null-check.
type RevenueAggregate struct {
	TotalRevenue         decimal.Decimal
	OrderCount           int
	AvgOrderValue        decimal.Decimal
	RevenueByStatus      map[OrderStatus]decimal.Decimal
	RevenueByProductType map[ProductType]decimal.Decimal
}

// SeriesPoint is one (bucket label, revenue) point of a time series.
type SeriesPoint struct {
	Period  string
	Revenue decimal.Decimal
}

// GrowthComparison relates a period's revenue to the preceding period.
type GrowthComparison struct {
	CurrentTotal  decimal.Decimal
	PreviousTotal decimal.Decimal
	GrowthPct     decimal.Decimal
}

// RankedProduct is one entry of the top-products list.
type RankedProduct struct {
	ProductID   int
	ProductName string
	ProductType ProductType
	Quantity    int
	Revenue     decimal.Decimal
}

// MonthlyRevenue is one (yyyy-mm, revenue) entry of forecast history.
type MonthlyRevenue struct {
	Month   string          `db:"month"`
	Revenue decimal.Decimal `db:"revenue"`
}

// ForecastPoint is one projected month, strictly in the future.
type ForecastPoint struct {
	Month            string
	ProjectedRevenue decimal.Decimal
}

// QuarterlyForecast is the quarterly roll-up of monthly projections.
type QuarterlyForecast struct {
	Quarter          string
	ProjectedRevenue decimal.Decimal
}

// ForecastResult is the full output of the forecast projector.
type ForecastResult struct {
	BaselineMonthlyRevenue decimal.Decimal
	Monthly                []ForecastPoint
	Quarterly              []QuarterlyForecast
	AnnualProjection       decimal.Decimal
}

// RevenueOverview is the assembled response of the revenue endpoint:
// one period's aggregate, its time series, the comparison against the
// preceding period and the product ranking, all from the same order set.
type RevenueOverview struct {
	Period      TimeRange
	PeriodName  string
	Aggregate   RevenueAggregate
	OverTime    []SeriesPoint
	Comparison  GrowthComparison
	TopProducts []RankedProduct
}
