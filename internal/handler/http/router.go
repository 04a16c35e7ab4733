// Package http wires the storefront's API surface: catalog lookups, the
// session product grid, the cart, and checkout.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storefront-go/storefront/internal/browse"
	"github.com/storefront-go/storefront/internal/cart"
	"github.com/storefront-go/storefront/internal/checkout"
	"github.com/storefront-go/storefront/pkg/health"
	"github.com/storefront-go/storefront/pkg/middleware"
)

// RouterDeps bundles the collaborators the router wires together.
type RouterDeps struct {
	Catalog       Catalog
	Carts         *cart.Manager
	Browse        *browse.Manager
	Checkout      *checkout.Service
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS(deps.CORS))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(deps.Catalog, deps.Logger)
	browseHandler := NewBrowseHandler(deps.Browse, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.Carts, deps.Checkout, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionID)

		// Stateless catalog lookups
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/categories", productHandler.ListCategories)
		r.Get("/products/category/{category}", productHandler.ListByCategory)
		r.Get("/products/search", productHandler.SearchProducts)

		// Session product grid
		r.Get("/browse", browseHandler.GetView)
		r.Post("/browse/search", browseHandler.Search)
		r.Post("/browse/filter", browseHandler.Filter)
		r.Post("/browse/reset", browseHandler.Reset)
		r.Post("/browse/more", browseHandler.LoadMore)

		// Cart
		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{productID}", cartHandler.UpdateItemQuantity)
		r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

		// Checkout
		r.Post("/checkout", checkoutHandler.Submit)
	})

	return r
}
