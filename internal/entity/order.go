package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a customer order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// AllOrderStatuses enumerates every status so breakdown maps can be
// fully populated with zero defaults at construction time.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Qualifying reports whether an order in this status counts toward
// forecast history. Pending and cancelled orders are excluded.
func (s OrderStatus) Qualifying() bool {
	return s == OrderStatusCompleted || s == OrderStatusProcessing
}

// ProductType tags a line item with the kind of product it references.
type ProductType string

const (
	ProductTypeConfiguration ProductType = "CONFIGURATION"
	ProductTypeComponent     ProductType = "COMPONENT"
	ProductTypePeripheral    ProductType = "PERIPHERAL"
)

var AllProductTypes = []ProductType{
	ProductTypeConfiguration,
	ProductTypeComponent,
	ProductTypePeripheral,
}

// OrderRecord is an immutable view of a placed order. The analytics
// engine only ever reads these.
type OrderRecord struct {
	ID            int             `db:"id"`
	UUID          string          `db:"uuid"`
	Placed        time.Time       `db:"placed"`
	Status        OrderStatus     `db:"status"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	CustomerName  string          `db:"customer_name"`
	CustomerEmail string          `db:"customer_email"`
	Items         []OrderLineItem
}

// OrderLineItem is a single product position inside an order.
// ProductName is display-only and never used as an identity key.
type OrderLineItem struct {
	OrderID     int             `db:"order_id"`
	ProductID   int             `db:"product_id"`
	ProductType ProductType     `db:"product_type"`
	ProductName string          `db:"product_name"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Quantity    int             `db:"quantity"`
}

// Revenue is unit price times quantity, always non-negative.
func (i OrderLineItem) Revenue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
