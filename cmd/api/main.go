package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brandiaga/storefront-backend/api/routes"
	cartsvc "github.com/brandiaga/storefront-backend/internal/cart"
	ordersvc "github.com/brandiaga/storefront-backend/internal/orders"
	"github.com/brandiaga/storefront-backend/internal/pricing"
	productsvc "github.com/brandiaga/storefront-backend/internal/products"
	savedsvc "github.com/brandiaga/storefront-backend/internal/saved"
	"github.com/brandiaga/storefront-backend/pkg/config"
	"github.com/brandiaga/storefront-backend/pkg/db"
	"github.com/brandiaga/storefront-backend/pkg/logger"
	"github.com/brandiaga/storefront-backend/pkg/metrics"
	"github.com/brandiaga/storefront-backend/pkg/migrate"
	"github.com/brandiaga/storefront-backend/pkg/outbox"
	"github.com/brandiaga/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	cartStore, err := cartsvc.NewRedisStore(redisClient, redisClient.CartKey, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	savedStore, err := cartsvc.NewRedisStore(redisClient, redisClient.SavedKey, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create saved-items store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, logg, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	savedService, err := savedsvc.NewService(savedStore, cartService, logg, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create saved-items service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	calculator, err := pricing.NewCalculator(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing calculator", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	orderService, err := ordersvc.NewService(
		ordersvc.NewRepository(dbClient.DB()),
		dbClient,
		cartService,
		calculator,
		outboxService,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Cache:       redisClient,
			Idempotency: redisClient,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			Products:    productService,
			Cart:        cartService,
			Saved:       savedService,
			Orders:      orderService,
			Calculator:  calculator,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
