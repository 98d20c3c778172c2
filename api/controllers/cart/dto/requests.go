package cartdto

import "github.com/shopspring/decimal"

// AddItemRequest adds a catalog product to the cart. The server snapshots
// name, image and price from the catalog; clients send only the identity.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest sets the quantity of an existing row. A quantity below
// one leaves the cart unchanged.
type UpdateItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// RemoveItemRequest deletes the row matching the identity key.
type RemoveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
}

// ItemPayload is a full cart row as synced from a client snapshot.
type ItemPayload struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Color     string          `json:"color"`
	IsPrime   bool            `json:"is_prime"`
}

// InitializeRequest replaces the whole cart with the provided rows.
type InitializeRequest struct {
	Items []ItemPayload `json:"items" validate:"dive"`
}

// SaveForLaterRequest moves a cart row onto the saved list.
type SaveForLaterRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
}
