package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/brandiaga/storefront-backend/api/responses"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
	"github.com/brandiaga/storefront-backend/pkg/logger"
)

const adminTokenHeader = "X-Admin-Token"

// RequireAdmin gates the admin console routes behind a shared secret. With no
// token configured the routes are closed, never open.
func RequireAdmin(token string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "admin console disabled"))
				return
			}

			supplied := strings.TrimSpace(r.Header.Get(adminTokenHeader))
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
