package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brandiaga/storefront-backend/internal/cart"
	"github.com/brandiaga/storefront-backend/internal/pricing"
	"github.com/brandiaga/storefront-backend/pkg/db/models"
	"github.com/brandiaga/storefront-backend/pkg/enums"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/logger"
	"github.com/brandiaga/storefront-backend/pkg/outbox"
	"github.com/brandiaga/storefront-backend/pkg/pagination"
	"github.com/brandiaga/storefront-backend/pkg/types"
)

var (
	errEmptyCart         = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	errAddressIncomplete = pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete")
	errOrderNotFound     = pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type cartReader interface {
	Get(ctx context.Context, shopperID string) ([]cart.Item, error)
	Clear(ctx context.Context, shopperID string) error
}

type quoter interface {
	Quote(items []cart.Item, delivery enums.DeliveryOption) (pricing.Totals, error)
}

// PlaceOrderInput carries the validated checkout payload.
type PlaceOrderInput struct {
	ShopperID       string
	DeliveryOption  enums.DeliveryOption
	ShippingAddress types.Address
}

// Service defines order placement and lifecycle operations.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDetail, error)
	GetOrder(ctx context.Context, shopperID string, orderID uuid.UUID) (*OrderDetail, error)
	ListOrders(ctx context.Context, shopperID string, params pagination.Params) (*OrderList, error)

	AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	AdminListOrders(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDetail, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	carts   cartReader
	pricing quoter
	outbox  outboxEmitter
	logg    *logger.Logger
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, tx txRunner, carts cartReader, quotes quoter, emitter outboxEmitter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("pricing calculator required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		carts:   carts,
		pricing: quotes,
		outbox:  emitter,
		logg:    logg,
	}, nil
}

// PlaceOrder freezes the shopper's cart into an order. The order row, its
// line items and the order.created outbox event commit in one transaction;
// the cart is cleared only after the commit succeeds.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderDetail, error) {
	if input.ShopperID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}
	if !input.ShippingAddress.Complete() {
		return nil, errAddressIncomplete
	}

	items, err := s.carts.Get(ctx, input.ShopperID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errEmptyCart
	}

	totals, err := s.pricing.Quote(items, input.DeliveryOption)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              uuid.New(),
		ShopperID:       input.ShopperID,
		Status:          enums.OrderStatusPending,
		DeliveryOption:  input.DeliveryOption,
		ShippingAddress: &input.ShippingAddress,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ItemCount:       totals.ItemCount,
	}

	lineItems := make([]models.OrderLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, models.OrderLineItem{
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			Name:         item.Name,
			Image:        item.Image,
			Color:        item.Color,
			UnitPrice:    item.Price,
			Quantity:     item.Quantity,
			LineSubtotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.CreateOrder(ctx, order); err != nil {
			return err
		}
		if err := txRepo.CreateLineItems(ctx, lineItems); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderCreated,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   order.ID,
			ShopperID:     input.ShopperID,
			Data: OrderCreatedEvent{
				OrderID:        order.ID,
				ShopperID:      input.ShopperID,
				DeliveryOption: input.DeliveryOption,
				Total:          totals.Total,
				ItemCount:      totals.ItemCount,
			},
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}

	// The order is committed; a failed cart clear leaves stale rows behind
	// but must not fail the checkout.
	if err := s.carts.Clear(ctx, input.ShopperID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()), "cart clear after checkout failed")
	}

	order.Items = lineItems
	detail := toDetail(order)
	return &detail, nil
}

// GetOrder returns the order only when it belongs to the shopper.
func (s *service) GetOrder(ctx context.Context, shopperID string, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShopperID != shopperID {
		return nil, errOrderNotFound
	}
	detail := toDetail(order)
	return &detail, nil
}

func (s *service) ListOrders(ctx context.Context, shopperID string, params pagination.Params) (*OrderList, error) {
	if shopperID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}
	list, err := s.repo.ListByShopper(ctx, shopperID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	detail := toDetail(order)
	return &detail, nil
}

func (s *service) AdminListOrders(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error) {
	list, err := s.repo.ListAll(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// UpdateStatus moves the order along the fulfillment lifecycle. Illegal
// transitions are rejected; the status change and its outbox event commit
// together.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDetail, error) {
	if !status.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderStatusSet,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   orderID,
			ShopperID:     order.ShopperID,
			Data: OrderStatusChangedEvent{
				OrderID:    orderID,
				ShopperID:  order.ShopperID,
				FromStatus: order.Status,
				ToStatus:   status,
			},
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = status
	detail := toDetail(order)
	return &detail, nil
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func toDetail(order *models.Order) OrderDetail {
	items := make([]LineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Name:         item.Name,
			Image:        item.Image,
			Color:        item.Color,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			LineSubtotal: item.LineSubtotal,
		})
	}
	return OrderDetail{
		ID:              order.ID,
		ShopperID:       order.ShopperID,
		Status:          order.Status,
		DeliveryOption:  order.DeliveryOption,
		ShippingAddress: order.ShippingAddress,
		Subtotal:        order.Subtotal,
		Shipping:        order.Shipping,
		Tax:             order.Tax,
		Total:           order.Total,
		ItemCount:       order.ItemCount,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
