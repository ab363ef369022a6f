package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/technovapc/store-manager/internal/entity"
)

func aggWithTotal(total string) entity.RevenueAggregate {
	return entity.RevenueAggregate{TotalRevenue: decimal.RequireFromString(total)}
}

func TestGrowth(t *testing.T) {
	cmp := Growth(aggWithTotal("150"), aggWithTotal("100"))
	assert.Equal(t, "150", cmp.CurrentTotal.String())
	assert.Equal(t, "100", cmp.PreviousTotal.String())
	assert.Equal(t, "50", cmp.GrowthPct.String())

	cmp = Growth(aggWithTotal("80"), aggWithTotal("100"))
	assert.Equal(t, "-20", cmp.GrowthPct.String())
}

func TestGrowthZeroBaselineSaturates(t *testing.T) {
	// No division blow-up when the previous period had no revenue.
	cmp := Growth(aggWithTotal("500"), aggWithTotal("0"))
	assert.True(t, cmp.GrowthPct.IsZero())

	cmp = Growth(aggWithTotal("0"), aggWithTotal("0"))
	assert.True(t, cmp.GrowthPct.IsZero())
}
