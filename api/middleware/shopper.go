package middleware

import (
	"net/http"
	"strings"

	"github.com/brandiaga/storefront-backend/api/responses"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/logger"
)

const shopperIDHeader = "X-Shopper-Id"

// RequireShopper binds the opaque shopper identifier from the gateway header
// into the request context. Identity itself is established upstream; this
// layer only requires that the header arrived.
func RequireShopper(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopperID := strings.TrimSpace(r.Header.Get(shopperIDHeader))
			if shopperID == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "shopper identity required"))
				return
			}

			ctx := WithShopperID(r.Context(), shopperID)
			if logg != nil {
				ctx = logg.WithShopperID(ctx, shopperID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
