package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSummary is the catalog list row.
type ProductSummary struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Colors    []string        `json:"colors,omitempty"`
	IsPrime   bool            `json:"is_prime"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductDetail is the full catalog record returned for a single product.
type ProductDetail struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	IsPrime     bool            `json:"is_prime"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListFilters narrows the public catalog listing.
type ListFilters struct {
	Brand     string
	Query     string
	PrimeOnly bool
}

// ListResult is one catalog page plus the cursor for the next.
type ListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Brand       string
	Price       decimal.Decimal
	Images      []string
	Colors      []string
	IsPrime     bool
	IsActive    bool
}

// UpdateProductInput holds optional mutation values; nil fields are left
// untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Brand       *string
	Price       *decimal.Decimal
	Images      *[]string
	Colors      *[]string
	IsPrime     *bool
	IsActive    *bool
}
