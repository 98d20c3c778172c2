package saved

import (
	"context"
	"fmt"

	"github.com/brandiaga/storefront-backend/internal/cart"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/logger"
	"github.com/brandiaga/storefront-backend/pkg/metrics"
)

var (
	errShopperRequired = pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	errIndexOutOfRange = pkgerrors.New(pkgerrors.CodeValidation, "saved item index out of range")
	errNotInCart       = pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
)

// cartMutator is the slice of the cart service the saved list needs: pulling
// a row out of the cart and merging one back in.
type cartMutator interface {
	Get(ctx context.Context, shopperID string) ([]cart.Item, error)
	Add(ctx context.Context, shopperID string, item cart.Item) ([]cart.Item, error)
	Remove(ctx context.Context, shopperID, productID, color string) ([]cart.Item, error)
}

// Service manages the saved-for-later list. Rows enter from the cart with
// their quantity reset to one and leave back into the cart the same way.
type Service interface {
	List(ctx context.Context, shopperID string) ([]cart.Item, error)
	SaveForLater(ctx context.Context, shopperID, productID, color string) ([]cart.Item, error)
	MoveToCart(ctx context.Context, shopperID string, index int) ([]cart.Item, error)
	Remove(ctx context.Context, shopperID string, index int) ([]cart.Item, error)
}

type service struct {
	store cart.ListStore
	carts cartMutator
	logg  *logger.Logger
	stats *metrics.CartMetrics
}

// NewService builds the saved-for-later service. The store must be keyed
// separately from the cart store so the two lists never collide.
func NewService(store cart.ListStore, carts cartMutator, logg *logger.Logger, stats *metrics.CartMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("list store required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{store: store, carts: carts, logg: logg, stats: stats}, nil
}

func (s *service) List(ctx context.Context, shopperID string) ([]cart.Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}
	return s.load(ctx, shopperID), nil
}

// SaveForLater moves the cart row matching the identity key onto the saved
// list with its quantity reset to one. If the key is already saved, the
// existing saved row wins and the cart row is simply dropped.
func (s *service) SaveForLater(ctx context.Context, shopperID, productID, color string) ([]cart.Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}

	inCart, err := s.carts.Get(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	var row *cart.Item
	for idx := range inCart {
		if inCart[idx].Key() == (cart.Key{ProductID: productID, Color: color}) {
			row = &inCart[idx]
			break
		}
	}
	if row == nil {
		return nil, errNotInCart
	}

	if _, err := s.carts.Remove(ctx, shopperID, productID, color); err != nil {
		return nil, err
	}

	items := s.load(ctx, shopperID)
	if !contains(items, row.Key()) {
		kept := *row
		kept.Quantity = 1
		items = append(items, kept)
	}
	s.persist(ctx, shopperID, items)
	return items, nil
}

// MoveToCart pushes the saved row at index back into the cart with quantity
// one and drops it from the saved list.
func (s *service) MoveToCart(ctx context.Context, shopperID string, index int) ([]cart.Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}

	items := s.load(ctx, shopperID)
	if index < 0 || index >= len(items) {
		return nil, errIndexOutOfRange
	}

	moved := items[index]
	moved.Quantity = 1
	if _, err := s.carts.Add(ctx, shopperID, moved); err != nil {
		return nil, err
	}

	items = append(items[:index], items[index+1:]...)
	s.persist(ctx, shopperID, items)
	return items, nil
}

// Remove drops the saved row at index.
func (s *service) Remove(ctx context.Context, shopperID string, index int) ([]cart.Item, error) {
	if shopperID == "" {
		return nil, errShopperRequired
	}

	items := s.load(ctx, shopperID)
	if index < 0 || index >= len(items) {
		return nil, errIndexOutOfRange
	}
	items = append(items[:index], items[index+1:]...)
	s.persist(ctx, shopperID, items)
	return items, nil
}

func contains(items []cart.Item, key cart.Key) bool {
	for _, item := range items {
		if item.Key() == key {
			return true
		}
	}
	return false
}

func (s *service) load(ctx context.Context, shopperID string) []cart.Item {
	items, err := s.store.Load(ctx, shopperID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithShopperID(ctx, shopperID), "saved list snapshot unavailable, starting empty")
		}
		return []cart.Item{}
	}
	return items
}

func (s *service) persist(ctx context.Context, shopperID string, items []cart.Item) {
	s.stats.IncMutation("saved_list")
	if err := s.store.Save(ctx, shopperID, items); err != nil {
		s.stats.IncWriteFailure()
		if s.logg != nil {
			s.logg.Error(s.logg.WithShopperID(ctx, shopperID), "saved list snapshot write failed", err)
		}
	}
}
