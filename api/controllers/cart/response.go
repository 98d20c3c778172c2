package cart

import (
	cartsvc "github.com/brandiaga/storefront-backend/internal/cart"
)

// cartView is the envelope payload for cart and saved-list reads.
type cartView struct {
	Items     []cartsvc.Item `json:"items"`
	ItemCount int            `json:"item_count"`
}

func newCartView(items []cartsvc.Item) cartView {
	if items == nil {
		items = []cartsvc.Item{}
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return cartView{Items: items, ItemCount: count}
}
