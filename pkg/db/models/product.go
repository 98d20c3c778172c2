package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog record. Cart rows snapshot its price, name and image at
// add time, so later catalog edits never rewrite an existing cart line.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description"`
	Brand       string          `gorm:"column:brand"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Images      []string        `gorm:"column:images;type:jsonb;serializer:json"`
	Colors      []string        `gorm:"column:colors;type:jsonb;serializer:json"`
	IsPrime     bool            `gorm:"column:is_prime;not null;default:false"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// HasColor reports whether the variant is offered for this product. Products
// without declared variants accept any color value, including empty.
func (p Product) HasColor(color string) bool {
	if len(p.Colors) == 0 {
		return true
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
