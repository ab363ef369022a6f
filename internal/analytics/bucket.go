package analytics

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/technovapc/store-manager/internal/entity"
)

// BucketRevenue regroups an order set into an ordered revenue series.
// The bucket grain follows the requested granularity: day buckets by
// hour of day (all 24 entries present, zeros included), week and month
// bucket by calendar day (sparse), year by calendar month (sparse).
// Each order lands in exactly one bucket, so the series sums to the
// set's total revenue.
func BucketRevenue(orders []entity.OrderRecord, g Granularity) []entity.SeriesPoint {
	switch g {
	case GranularityDay:
		return bucketByHour(orders)
	case GranularityYear:
		return bucketByFormat(orders, "2006-01")
	default:
		return bucketByFormat(orders, "2006-01-02")
	}
}

func bucketByHour(orders []entity.OrderRecord) []entity.SeriesPoint {
	var hours [24]decimal.Decimal
	for i := range hours {
		hours[i] = decimal.Zero
	}
	for _, o := range orders {
		h := o.Placed.Hour()
		hours[h] = hours[h].Add(o.TotalAmount)
	}
	series := make([]entity.SeriesPoint, len(hours))
	for h, rev := range hours {
		series[h] = entity.SeriesPoint{Period: strconv.Itoa(h), Revenue: rev}
	}
	return series
}

// bucketByFormat emits only buckets with at least one order, sorted by
// label. The yyyy-mm-dd / yyyy-mm formats make lexicographic order
// chronological.
func bucketByFormat(orders []entity.OrderRecord, layout string) []entity.SeriesPoint {
	buckets := make(map[string]decimal.Decimal)
	for _, o := range orders {
		key := o.Placed.Format(layout)
		buckets[key] = buckets[key].Add(o.TotalAmount)
	}
	labels := make([]string, 0, len(buckets))
	for k := range buckets {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	series := make([]entity.SeriesPoint, len(labels))
	for i, label := range labels {
		series[i] = entity.SeriesPoint{Period: label, Revenue: buckets[label]}
	}
	return series
}
