package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brandiaga/storefront-backend/pkg/enums"
	"github.com/brandiaga/storefront-backend/pkg/types"
)

// OrderSummary is the list row for a shopper's order history.
type OrderSummary struct {
	ID             uuid.UUID            `json:"id"`
	Status         enums.OrderStatus    `json:"status"`
	DeliveryOption enums.DeliveryOption `json:"delivery_option"`
	Total          decimal.Decimal      `json:"total"`
	ItemCount      int                  `json:"item_count"`
	CreatedAt      time.Time            `json:"created_at"`
}

// OrderDetail is the full order with frozen totals and line items.
type OrderDetail struct {
	ID              uuid.UUID            `json:"id"`
	ShopperID       string               `json:"shopper_id"`
	Status          enums.OrderStatus    `json:"status"`
	DeliveryOption  enums.DeliveryOption `json:"delivery_option"`
	ShippingAddress *types.Address       `json:"shipping_address,omitempty"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Shipping        decimal.Decimal      `json:"shipping"`
	Tax             decimal.Decimal      `json:"tax"`
	Total           decimal.Decimal      `json:"total"`
	ItemCount       int                  `json:"item_count"`
	Items           []LineItemDTO        `json:"items"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// LineItemDTO is one frozen cart row inside an order.
type LineItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Image        string          `json:"image,omitempty"`
	Color        string          `json:"color,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

// OrderList is one page of order summaries.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// AdminOrderFilters narrows the admin order listing.
type AdminOrderFilters struct {
	Status    enums.OrderStatus
	ShopperID string
}

// OrderCreatedEvent is the outbox payload written when checkout commits.
type OrderCreatedEvent struct {
	OrderID        uuid.UUID            `json:"order_id"`
	ShopperID      string               `json:"shopper_id"`
	DeliveryOption enums.DeliveryOption `json:"delivery_option"`
	Total          decimal.Decimal      `json:"total"`
	ItemCount      int                  `json:"item_count"`
}

// OrderStatusChangedEvent is emitted when an admin moves an order.
type OrderStatusChangedEvent struct {
	OrderID    uuid.UUID         `json:"order_id"`
	ShopperID  string            `json:"shopper_id"`
	FromStatus enums.OrderStatus `json:"from_status"`
	ToStatus   enums.OrderStatus `json:"to_status"`
}
