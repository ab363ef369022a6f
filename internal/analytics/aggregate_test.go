package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technovapc/store-manager/internal/entity"
)

func order(status entity.OrderStatus, amount string, items ...entity.OrderLineItem) entity.OrderRecord {
	return entity.OrderRecord{
		Placed:      time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:      status,
		TotalAmount: decimal.RequireFromString(amount),
		Items:       items,
	}
}

func item(productID int, typ entity.ProductType, price string, qty int) entity.OrderLineItem {
	return entity.OrderLineItem{
		ProductID:   productID,
		ProductType: typ,
		ProductName: "product",
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)

	assert.True(t, agg.TotalRevenue.IsZero())
	assert.Zero(t, agg.OrderCount)
	assert.True(t, agg.AvgOrderValue.IsZero())

	// Breakdown maps carry every enum key even for an empty set.
	require.Len(t, agg.RevenueByStatus, len(entity.AllOrderStatuses))
	require.Len(t, agg.RevenueByProductType, len(entity.AllProductTypes))
	for _, s := range entity.AllOrderStatuses {
		assert.True(t, agg.RevenueByStatus[s].IsZero())
	}
}

func TestAggregate(t *testing.T) {
	orders := []entity.OrderRecord{
		order(entity.OrderStatusCompleted, "100.50",
			item(1, entity.ProductTypeConfiguration, "100.50", 1)),
		order(entity.OrderStatusCompleted, "49.50",
			item(2, entity.ProductTypePeripheral, "24.75", 2)),
		order(entity.OrderStatusCancelled, "50.00",
			item(3, entity.ProductTypeComponent, "25.00", 2)),
	}

	agg := Aggregate(orders)

	// Total revenue counts every order regardless of status.
	assert.Equal(t, "200", agg.TotalRevenue.String())
	assert.Equal(t, 3, agg.OrderCount)
	assert.Equal(t, "66.67", agg.AvgOrderValue.Round(2).String())

	assert.Equal(t, "150", agg.RevenueByStatus[entity.OrderStatusCompleted].String())
	assert.Equal(t, "50", agg.RevenueByStatus[entity.OrderStatusCancelled].String())
	assert.True(t, agg.RevenueByStatus[entity.OrderStatusPending].IsZero())

	assert.Equal(t, "100.5", agg.RevenueByProductType[entity.ProductTypeConfiguration].String())
	assert.Equal(t, "49.5", agg.RevenueByProductType[entity.ProductTypePeripheral].String())
	assert.Equal(t, "50", agg.RevenueByProductType[entity.ProductTypeComponent].String())
}

func TestAggregateStatusBreakdownSumsToTotal(t *testing.T) {
	orders := []entity.OrderRecord{
		order(entity.OrderStatusPending, "10.10"),
		order(entity.OrderStatusProcessing, "20.20"),
		order(entity.OrderStatusCompleted, "30.30"),
		order(entity.OrderStatusCancelled, "40.40"),
		order(entity.OrderStatusCompleted, "50.50"),
	}

	agg := Aggregate(orders)

	sum := decimal.Zero
	for _, v := range agg.RevenueByStatus {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(agg.TotalRevenue), "status breakdown must sum to total, got %s vs %s", sum, agg.TotalRevenue)
}
