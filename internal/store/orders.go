package store

import (
	"context"
	"fmt"
	"time"

	"github.com/technovapc/store-manager/internal/entity"
)

// GetOrdersInRange returns orders whose placed timestamp falls in
// [from, to), oldest first, with line items attached. The deterministic
// placed/id ordering is what makes the downstream product ranking's
// tie-break stable.
func (ms *MYSQLStore) GetOrdersInRange(ctx context.Context, from, to time.Time, statuses ...entity.OrderStatus) ([]entity.OrderRecord, error) {
	query := `
		SELECT id, uuid, placed, status, total_amount, customer_name, customer_email
		FROM customer_order
		WHERE placed >= :from AND placed < :to
	`
	params := map[string]any{"from": from, "to": to}
	if len(statuses) > 0 {
		query += " AND status IN (:statuses)"
		ss := make([]string, len(statuses))
		for i, s := range statuses {
			ss[i] = string(s)
		}
		params["statuses"] = ss
	}
	query += " ORDER BY placed ASC, id ASC"

	orders, err := QueryListNamed[entity.OrderRecord](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("orders in range: %w", err)
	}
	if len(orders) == 0 {
		return []entity.OrderRecord{}, nil
	}

	ids := make([]int, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	items, err := QueryListNamed[entity.OrderLineItem](ctx, ms.DB(), `
		SELECT order_id, product_id, product_type, product_name, unit_price, quantity
		FROM order_item
		WHERE order_id IN (:ids)
		ORDER BY order_id ASC, id ASC
	`, map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	for _, it := range items {
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}

	return orders, nil
}

// GetRecentQualifyingOrders returns up to limit most recent completed or
// processing orders, newest first. Only totals are needed, so line items
// are not loaded.
func (ms *MYSQLStore) GetRecentQualifyingOrders(ctx context.Context, limit int) ([]entity.OrderRecord, error) {
	if limit <= 0 {
		return []entity.OrderRecord{}, nil
	}
	orders, err := QueryListNamed[entity.OrderRecord](ctx, ms.DB(), `
		SELECT id, uuid, placed, status, total_amount, customer_name, customer_email
		FROM customer_order
		WHERE status IN ('COMPLETED', 'PROCESSING')
		ORDER BY placed DESC, id DESC
		LIMIT :limit
	`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("recent qualifying orders: %w", err)
	}
	return orders, nil
}

// GetMonthlyRevenueHistory returns per-calendar-month revenue of
// qualifying orders placed in [from, to), oldest month first.
func (ms *MYSQLStore) GetMonthlyRevenueHistory(ctx context.Context, from, to time.Time) ([]entity.MonthlyRevenue, error) {
	rows, err := QueryListNamed[entity.MonthlyRevenue](ctx, ms.DB(), `
		SELECT DATE_FORMAT(placed, '%Y-%m') AS month,
			COALESCE(SUM(total_amount), 0) AS revenue
		FROM customer_order
		WHERE placed >= :from AND placed < :to
		AND status IN ('COMPLETED', 'PROCESSING')
		GROUP BY month
		ORDER BY month ASC
	`, map[string]any{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("monthly revenue history: %w", err)
	}
	return rows, nil
}
