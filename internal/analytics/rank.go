package analytics

import (
	"sort"

	"github.com/technovapc/store-manager/internal/entity"
)

// DefaultTopProductsLimit caps the ranking when no limit is configured.
const DefaultTopProductsLimit = 10

type productKey struct {
	Type entity.ProductType
	ID   int
}

// TopProducts ranks products across every line item in the set by summed
// revenue, descending. Grouping is by (productType, productId) so the
// same numeric id under two type tags stays two distinct products. The
// sort is stable: ties keep first-seen input order, which makes the
// ranking deterministic for a deterministic fetch order. A non-positive
// limit yields an empty ranking.
func TopProducts(orders []entity.OrderRecord, limit int) []entity.RankedProduct {
	if limit <= 0 {
		return []entity.RankedProduct{}
	}

	totals := make(map[productKey]*entity.RankedProduct)
	var seen []productKey
	for _, o := range orders {
		for _, it := range o.Items {
			key := productKey{Type: it.ProductType, ID: it.ProductID}
			p, ok := totals[key]
			if !ok {
				p = &entity.RankedProduct{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					ProductType: it.ProductType,
				}
				totals[key] = p
				seen = append(seen, key)
			}
			p.Quantity += it.Quantity
			p.Revenue = p.Revenue.Add(it.Revenue())
		}
	}

	ranked := make([]entity.RankedProduct, 0, len(seen))
	for _, key := range seen {
		ranked = append(ranked, *totals[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
