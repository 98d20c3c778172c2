package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one cart row. Name, image and price are snapshots copied from the
// catalog when the shopper added the product; they are never refreshed, so a
// later catalog price change leaves existing rows untouched.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color"`
	IsPrime   bool            `json:"is_prime,omitempty"`
}

// Key is the identity of a cart row. Two rows with the same key are the same
// line and must be merged, never duplicated.
type Key struct {
	ProductID string
	Color     string
}

// Key returns the row's identity key.
func (i Item) Key() Key {
	return Key{ProductID: i.ProductID, Color: i.Color}
}

// Validate checks the fields required before an item may enter the cart.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return errProductIDRequired
	}
	if i.Quantity < 1 {
		return errQuantityTooLow
	}
	if i.Price.IsNegative() {
		return errNegativePrice
	}
	return nil
}

// indexOf returns the position of the row matching key, or -1.
func indexOf(items []Item, key Key) int {
	for idx, item := range items {
		if item.Key() == key {
			return idx
		}
	}
	return -1
}

// merge folds incoming into items by identity key: an existing row gains the
// incoming quantity, otherwise the row is appended. Order of existing rows is
// preserved.
func merge(items []Item, incoming Item) []Item {
	if idx := indexOf(items, incoming.Key()); idx >= 0 {
		items[idx].Quantity += incoming.Quantity
		return items
	}
	return append(items, incoming)
}
