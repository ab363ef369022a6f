package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/technovapc/store-manager/internal/entity"
)

var hundred = decimal.NewFromInt(100)

// Growth compares the current period's revenue against the previous
// period's. A zero-revenue previous period yields 0% growth, never an
// error or infinity; downstream display code depends on this saturating
// rule.
func Growth(current, previous entity.RevenueAggregate) entity.GrowthComparison {
	pct := decimal.Zero
	if previous.TotalRevenue.IsPositive() {
		pct = current.TotalRevenue.Sub(previous.TotalRevenue).
			Div(previous.TotalRevenue).
			Mul(hundred)
	}
	return entity.GrowthComparison{
		CurrentTotal:  current.TotalRevenue,
		PreviousTotal: previous.TotalRevenue,
		GrowthPct:     pct,
	}
}
