package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brandiaga/storefront-backend/pkg/enums"
	"github.com/brandiaga/storefront-backend/pkg/types"
)

// Order captures a placed order with totals frozen at checkout time.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ShopperID       string               `gorm:"column:shopper_id;not null;index:orders_shopper_id_idx"`
	Status          enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	DeliveryOption  enums.DeliveryOption `gorm:"column:delivery_option;not null"`
	ShippingAddress *types.Address       `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	Subtotal        decimal.Decimal      `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Shipping        decimal.Decimal      `gorm:"column:shipping;type:numeric(12,2);not null"`
	Tax             decimal.Decimal      `gorm:"column:tax;type:numeric(12,2);not null"`
	Total           decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null"`
	ItemCount       int                  `gorm:"column:item_count;not null"`
	Items           []OrderLineItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
