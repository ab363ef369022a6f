package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/technovapc/store-manager/internal/entity"
)

// fallbackBaseline is the explicit degenerate default used when there is
// no order history at all to derive a baseline from.
var fallbackBaseline = decimal.NewFromInt(1000)

// daysPerMonth scales a mean single-order value into a monthly baseline
// when no monthly history exists.
var daysPerMonth = decimal.NewFromInt(30)

// ForecastParams are the tunables of one projection run.
type ForecastParams struct {
	Months           int
	MonthlyGrowthPct decimal.Decimal
	// SeasonalFactors multiplies the emitted value of a projected point by
	// the factor of its calendar month. Missing months default to 1.
	SeasonalFactors map[time.Month]decimal.Decimal
}

// BaselineFromHistory derives the starting monthly revenue as the
// arithmetic mean of the historical months. ok is false on empty history.
func BaselineFromHistory(history []entity.MonthlyRevenue) (baseline decimal.Decimal, ok bool) {
	if len(history) == 0 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, m := range history {
		sum = sum.Add(m.Revenue)
	}
	return sum.Div(decimal.NewFromInt(int64(len(history)))), true
}

// BaselineFromOrders is the secondary baseline: mean single-order value of
// the given recent orders scaled to a 30-day month. ok is false when the
// set is empty.
func BaselineFromOrders(orders []entity.OrderRecord) (baseline decimal.Decimal, ok bool) {
	if len(orders) == 0 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.TotalAmount)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(orders))))
	return mean.Mul(daysPerMonth), true
}

// Project compounds the baseline forward month by month. The running
// value carries the compounded-but-unseasonalized series: seasonal
// factors shape each emitted point but never feed back into subsequent
// compounding. Values are rounded to 2 decimals only at emission so
// rounding error does not compound either. Months are anchored to the
// first of the current month, which keeps the projected sequence
// gap-free regardless of the current day of month.
func Project(baseline decimal.Decimal, now time.Time, p ForecastParams) entity.ForecastResult {
	res := entity.ForecastResult{
		BaselineMonthlyRevenue: baseline,
		Monthly:                []entity.ForecastPoint{},
		Quarterly:              []entity.QuarterlyForecast{},
		AnnualProjection:       decimal.Zero,
	}
	if p.Months <= 0 {
		return res
	}

	growth := decimal.NewFromInt(1).Add(p.MonthlyGrowthPct.Div(hundred))
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	running := baseline
	annual := decimal.Zero
	for i := 1; i <= p.Months; i++ {
		running = running.Mul(growth)
		point := anchor.AddDate(0, i, 0)

		emitted := running
		if factor, ok := p.SeasonalFactors[point.Month()]; ok {
			emitted = emitted.Mul(factor)
		}
		emitted = emitted.Round(2)

		res.Monthly = append(res.Monthly, entity.ForecastPoint{
			Month:            point.Format("2006-01"),
			ProjectedRevenue: emitted,
		})
		annual = annual.Add(emitted)

		quarter := quarterLabel(point)
		if n := len(res.Quarterly); n > 0 && res.Quarterly[n-1].Quarter == quarter {
			res.Quarterly[n-1].ProjectedRevenue = res.Quarterly[n-1].ProjectedRevenue.Add(emitted)
		} else {
			res.Quarterly = append(res.Quarterly, entity.QuarterlyForecast{
				Quarter:          quarter,
				ProjectedRevenue: emitted,
			})
		}
	}

	// Annual total is the sum of the monthly points, not of the quarters,
	// to avoid double-rounding drift.
	res.AnnualProjection = annual.Round(2)
	return res
}

func quarterLabel(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())+2)/3)
}
