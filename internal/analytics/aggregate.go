package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/technovapc/store-manager/internal/entity"
)

// Aggregate reduces an order set into its period roll-up. Total revenue
// sums every order regardless of status; the per-status and per-product-type
// maps are independent breakdowns of the same set, not filters on the total.
// Pure function, no side effects.
func Aggregate(orders []entity.OrderRecord) entity.RevenueAggregate {
	byStatus := make(map[entity.OrderStatus]decimal.Decimal, len(entity.AllOrderStatuses))
	for _, s := range entity.AllOrderStatuses {
		byStatus[s] = decimal.Zero
	}
	byType := make(map[entity.ProductType]decimal.Decimal, len(entity.AllProductTypes))
	for _, t := range entity.AllProductTypes {
		byType[t] = decimal.Zero
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalAmount)
		byStatus[o.Status] = byStatus[o.Status].Add(o.TotalAmount)
		for _, it := range o.Items {
			byType[it.ProductType] = byType[it.ProductType].Add(it.Revenue())
		}
	}

	avg := decimal.Zero
	if len(orders) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(orders))))
	}

	return entity.RevenueAggregate{
		TotalRevenue:         total,
		OrderCount:           len(orders),
		AvgOrderValue:        avg,
		RevenueByStatus:      byStatus,
		RevenueByProductType: byType,
	}
}
