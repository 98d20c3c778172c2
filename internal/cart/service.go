package cart

import (
	"context"
	"fmt"

	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/logger"
	"github.com/brandiaga/storefront-backend/pkg/metrics"
)

var (
	errProductIDRequired = pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	errQuantityTooLow    = pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	errNegativePrice     = pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	errShopperRequired   = pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
)

// Service is the cart state container. Every mutation loads the shopper's
// list, applies the change, and synchronously writes the whole list back.
type Service interface {
	Get(ctx context.Context, shopperID string) ([]Item, error)
	Add(ctx context.Context, shopperID string, item Item) ([]Item, error)
	UpdateQuantity(ctx context.Context, shopperID, productID, color string, quantity int) ([]Item, error)
	Remove(ctx context.Context, shopperID, productID, color string) ([]Item, error)
	Clear(ctx context.Context, shopperID string) error
	Initialize(ctx context.Context, shopperID string, items []Item) ([]Item, error)
}

type service struct {
	store ListStore
	logg  *logger.Logger
	stats *metrics.CartMetrics
}

// NewService builds the cart service around the given storage boundary.
func NewService(store ListStore, logg *logger.Logger, stats *metrics.CartMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("list store required")
	}
	return &service{store: store, logg: logg, stats: stats}, nil
}

// Get rehydrates the shopper's cart. Storage trouble yields an empty cart, not
// an error surfaced to the shopper.
func (s *service) Get(ctx context.Context, shopperID string) ([]Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}
	return s.load(ctx, shopperID), nil
}

// Add merges the item into the cart by identity key.
func (s *service) Add(ctx context.Context, shopperID string, item Item) ([]Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	items := merge(s.load(ctx, shopperID), item)
	s.persist(ctx, shopperID, items, "add")
	return items, nil
}

// UpdateQuantity sets the quantity of the row matching the identity key. A
// quantity below 1 is ignored; callers remove rows explicitly.
func (s *service) UpdateQuantity(ctx context.Context, shopperID, productID, color string, quantity int) ([]Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}

	items := s.load(ctx, shopperID)
	if quantity < 1 {
		return items, nil
	}

	idx := indexOf(items, Key{ProductID: productID, Color: color})
	if idx < 0 {
		return items, nil
	}
	items[idx].Quantity = quantity
	s.persist(ctx, shopperID, items, "update_quantity")
	return items, nil
}

// Remove deletes the row matching the identity key. Removing an absent key is
// a no-op.
func (s *service) Remove(ctx context.Context, shopperID, productID, color string) ([]Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}

	items := s.load(ctx, shopperID)
	idx := indexOf(items, Key{ProductID: productID, Color: color})
	if idx < 0 {
		return items, nil
	}
	items = append(items[:idx], items[idx+1:]...)
	s.persist(ctx, shopperID, items, "remove")
	return items, nil
}

// Clear empties the cart and erases the persisted snapshot. Used once, after
// order confirmation.
func (s *service) Clear(ctx context.Context, shopperID string) error {
	if shopperID == "" {
		return errShopperRequired
	}
	s.stats.IncMutation("clear")
	if err := s.store.Clear(ctx, shopperID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// Initialize replaces the whole list: overwrite semantics, not merge.
func (s *service) Initialize(ctx context.Context, shopperID string, items []Item) ([]Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []Item{}
	}
	s.persist(ctx, shopperID, items, "initialize")
	return items, nil
}

func (s *service) load(ctx context.Context, shopperID string) []Item {
	items, err := s.store.Load(ctx, shopperID)
	if err != nil {
		// Unreachable storage is treated as an empty initial state.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithShopperID(ctx, shopperID), "cart snapshot unavailable, starting empty")
		}
		return []Item{}
	}
	return items
}

// persist writes the full list back. Failures are logged and counted but not
// surfaced: the in-memory mutation stands even when the snapshot write fails.
func (s *service) persist(ctx context.Context, shopperID string, items []Item, operation string) {
	s.stats.IncMutation(operation)
	if err := s.store.Save(ctx, shopperID, items); err != nil {
		s.stats.IncWriteFailure()
		if s.logg != nil {
			ctx = s.logg.WithFields(ctx, map[string]any{"shopper_id": shopperID, "operation": operation})
			s.logg.Error(ctx, "cart snapshot write failed", err)
		}
	}
}
