package controllers

import (
	"net/http"

	"github.com/brandiaga/storefront-backend/api/middleware"
	"github.com/brandiaga/storefront-backend/api/responses"
	"github.com/brandiaga/storefront-backend/api/validators"
	cartsvc "github.com/brandiaga/storefront-backend/internal/cart"
	ordersvc "github.com/brandiaga/storefront-backend/internal/orders"
	"github.com/brandiaga/storefront-backend/internal/pricing"
	"github.com/brandiaga/storefront-backend/pkg/enums"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/logger"
	"github.com/brandiaga/storefront-backend/pkg/types"
)

type checkoutRequest struct {
	DeliveryOption  string        `json:"delivery_option" validate:"required,oneof=standard express"`
	ShippingAddress types.Address `json:"shipping_address" validate:"required"`
}

type quoter interface {
	Quote(items []cartsvc.Item, delivery enums.DeliveryOption) (pricing.Totals, error)
}

// QuoteCheckout prices the current cart for a delivery tier without placing
// an order.
func QuoteCheckout(carts cartsvc.Service, quotes quoter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID := middleware.ShopperIDFromContext(r.Context())
		if shopperID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shopper identity required"))
			return
		}

		delivery, ok := enums.ParseDeliveryOption(r.URL.Query().Get("delivery"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery option"))
			return
		}

		items, err := carts.Get(r.Context(), shopperID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, err := quotes.Quote(items, delivery)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

// Checkout freezes the cart into an order.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID := middleware.ShopperIDFromContext(r.Context())
		if shopperID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shopper identity required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivery, ok := enums.ParseDeliveryOption(payload.DeliveryOption)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery option"))
			return
		}

		order, err := svc.PlaceOrder(r.Context(), ordersvc.PlaceOrderInput{
			ShopperID:       shopperID,
			DeliveryOption:  delivery,
			ShippingAddress: payload.ShippingAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
