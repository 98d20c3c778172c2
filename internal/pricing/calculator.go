package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brandiaga/storefront-backend/internal/cart"
	"github.com/brandiaga/storefront-backend/pkg/config"
	"github.com/brandiaga/storefront-backend/pkg/enums"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
)

var errUnknownDelivery = pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery option")

// Totals is a complete checkout quote. All amounts are rounded to cents.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Calculator derives checkout totals from a cart. The rates are fixed at
// construction; pricing does not vary per shopper.
type Calculator struct {
	taxRate  decimal.Decimal
	shipping map[enums.DeliveryOption]decimal.Decimal
}

// NewCalculator parses the configured decimal strings. An amount that does
// not parse is a startup error, never a silent zero.
func NewCalculator(cfg config.PricingConfig) (*Calculator, error) {
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parse tax rate %q: %w", cfg.TaxRate, err)
	}
	standard, err := decimal.NewFromString(cfg.StandardShipping)
	if err != nil {
		return nil, fmt.Errorf("parse standard shipping %q: %w", cfg.StandardShipping, err)
	}
	express, err := decimal.NewFromString(cfg.ExpressShipping)
	if err != nil {
		return nil, fmt.Errorf("parse express shipping %q: %w", cfg.ExpressShipping, err)
	}
	if taxRate.IsNegative() || standard.IsNegative() || express.IsNegative() {
		return nil, fmt.Errorf("pricing amounts cannot be negative")
	}

	return &Calculator{
		taxRate: taxRate,
		shipping: map[enums.DeliveryOption]decimal.Decimal{
			enums.DeliveryStandard: standard,
			enums.DeliveryExpress:  express,
		},
	}, nil
}

// Quote derives the totals for the given items and delivery tier.
//
// Subtotal is the sum of unit price times quantity per row. Tax applies the
// flat rate to the subtotal only; shipping is never taxed. An empty cart
// still quotes: subtotal and tax are zero and the shipping fee stands.
func (c *Calculator) Quote(items []cart.Item, delivery enums.DeliveryOption) (Totals, error) {
	shipping, ok := c.shipping[delivery]
	if !ok {
		return Totals{}, errUnknownDelivery
	}

	subtotal := decimal.Zero
	itemCount := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		itemCount += item.Quantity
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(c.taxRate).Round(2)

	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal.Add(shipping).Add(tax).Round(2),
		ItemCount: itemCount,
	}, nil
}

// ShippingFee returns the flat fee for a delivery tier.
func (c *Calculator) ShippingFee(delivery enums.DeliveryOption) (decimal.Decimal, error) {
	fee, ok := c.shipping[delivery]
	if !ok {
		return decimal.Zero, errUnknownDelivery
	}
	return fee, nil
}
