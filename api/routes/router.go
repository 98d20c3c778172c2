package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brandiaga/storefront-backend/api/controllers"
	cartcontrollers "github.com/brandiaga/storefront-backend/api/controllers/cart"
	"github.com/brandiaga/storefront-backend/api/middleware"
	cartsvc "github.com/brandiaga/storefront-backend/internal/cart"
	ordersvc "github.com/brandiaga/storefront-backend/internal/orders"
	"github.com/brandiaga/storefront-backend/internal/pricing"
	productsvc "github.com/brandiaga/storefront-backend/internal/products"
	savedsvc "github.com/brandiaga/storefront-backend/internal/saved"
	"github.com/brandiaga/storefront-backend/pkg/config"
	pkgdb "github.com/brandiaga/storefront-backend/pkg/db"
	"github.com/brandiaga/storefront-backend/pkg/logger"
	"github.com/brandiaga/storefront-backend/pkg/metrics"
	pkgredis "github.com/brandiaga/storefront-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          pkgdb.Pinger
	Cache       pkgredis.Pinger
	Idempotency pkgredis.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Products   productsvc.Service
	Cart       cartsvc.Service
	Saved      savedsvc.Service
	Orders     ordersvc.Service
	Calculator *pricing.Calculator
}

// NewRouter assembles the HTTP surface: public catalog, shopper-scoped cart
// and checkout, and the token-gated admin console.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Cache, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Products, logg))
		r.Get("/{productID}", controllers.GetProduct(deps.Products, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireShopper(logg))
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Fetch(deps.Cart, logg))
			r.Put("/", cartcontrollers.Initialize(deps.Cart, logg))
			r.Delete("/", cartcontrollers.Clear(deps.Cart, logg))
			r.Post("/items", cartcontrollers.AddItem(deps.Cart, deps.Products, logg))
			r.Patch("/items", cartcontrollers.UpdateItem(deps.Cart, logg))
			r.Delete("/items", cartcontrollers.RemoveItem(deps.Cart, logg))
			r.Route("/saved", func(r chi.Router) {
				r.Get("/", cartcontrollers.SavedList(deps.Saved, logg))
				r.Post("/", cartcontrollers.SaveForLater(deps.Saved, logg))
				r.Post("/{index}/move", cartcontrollers.MoveToCart(deps.Saved, logg))
				r.Delete("/{index}", cartcontrollers.RemoveSaved(deps.Saved, logg))
			})
		})

		r.Get("/quote", controllers.QuoteCheckout(deps.Cart, deps.Calculator, logg))
		r.Post("/checkout", controllers.Checkout(deps.Orders, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(cfg.Admin.Token, logg))
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(deps.Products, logg))
			r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(deps.Products, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
			r.Get("/{orderID}", controllers.AdminGetOrder(deps.Orders, logg))
			r.Post("/{orderID}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
		})
	})

	return r
}
