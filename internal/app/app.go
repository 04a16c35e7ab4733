// Package app wires together all dependencies and runs the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront-go/storefront/internal/browse"
	"github.com/storefront-go/storefront/internal/cart"
	"github.com/storefront-go/storefront/internal/catalog"
	"github.com/storefront-go/storefront/internal/checkout"
	"github.com/storefront-go/storefront/internal/config"
	handler "github.com/storefront-go/storefront/internal/handler/http"
	"github.com/storefront-go/storefront/internal/kvstore"
	"github.com/storefront-go/storefront/internal/kvstore/memory"
	redisstore "github.com/storefront-go/storefront/internal/kvstore/redis"
	"github.com/storefront-go/storefront/pkg/health"
	"github.com/storefront-go/storefront/pkg/httpclient"
	"github.com/storefront-go/storefront/pkg/middleware"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Cart snapshot store: in-process map or Redis.
	var (
		store kvstore.Store
		rdb   *redis.Client
	)
	switch cfg.CartStore {
	case config.StoreRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		store = redisstore.New(rdb, time.Duration(cfg.CartTTL)*time.Hour)
	default:
		logger.Info("using in-memory cart store; carts do not survive restarts")
		store = memory.New()
	}

	// Catalog API client.
	httpClient := httpclient.New(httpclient.Config{
		Timeout:         cfg.CatalogTimeout,
		MaxConnsPerHost: 100,
	})
	catalogClient := catalog.NewClient(httpClient, cfg.CatalogBaseURL, logger)

	// Build the dependency graph.
	carts := cart.NewManager(store, logger)
	sessions := browse.NewManager(catalogClient, cfg.PageSize, logger)
	checkoutService := checkout.NewService(logger, cfg.CheckoutDelay)

	// Health checks.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	healthHandler.Register("catalog", func(ctx context.Context) error {
		_, err := catalogClient.Categories(ctx)
		return err
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:       catalogClient,
		Carts:         carts,
		Browse:        sessions,
		Checkout:      checkoutService,
		HealthHandler: healthHandler,
		Logger:        logger,
		CORS:          corsCfg,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
