package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/technovapc/store-manager/internal/entity"
)

type (
	// DB is the subset of sqlx the store helpers rely on.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	}

	// OrderSource supplies order records to the analytics engine. It is
	// injected into every consumer so the engine can be exercised with an
	// in-memory fake; there is no process-wide store handle.
	OrderSource interface {
		// GetOrdersInRange returns orders, with nested line items, whose
		// placed timestamp falls inside [from, to). An optional status
		// filter narrows the set; no filter returns every status.
		GetOrdersInRange(ctx context.Context, from, to time.Time, statuses ...entity.OrderStatus) ([]entity.OrderRecord, error)
		// GetRecentQualifyingOrders returns up to limit most recent orders
		// in a qualifying status (completed or processing), newest first.
		GetRecentQualifyingOrders(ctx context.Context, limit int) ([]entity.OrderRecord, error)
		// GetMonthlyRevenueHistory returns per-calendar-month revenue of
		// qualifying orders placed inside [from, to), oldest month first.
		GetMonthlyRevenueHistory(ctx context.Context, from, to time.Time) ([]entity.MonthlyRevenue, error)
	}
)
