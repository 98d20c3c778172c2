package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireShopperRejectsMissingHeader(t *testing.T) {
	handler := RequireShopper(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireShopperInjectsContext(t *testing.T) {
	var seen string
	handler := RequireShopper(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ShopperIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Shopper-Id", "shopper-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if seen != "shopper-1" {
		t.Fatalf("expected shopper-1 in context, got %q", seen)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("disabled without configured token", func(t *testing.T) {
		handler := RequireAdmin("", nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
		req.Header.Set("X-Admin-Token", "anything")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		handler := RequireAdmin("secret", nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
		req.Header.Set("X-Admin-Token", "wrong")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("accepts matching token", func(t *testing.T) {
		handler := RequireAdmin("secret", nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
		req.Header.Set("X-Admin-Token", "secret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
