package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-go/storefront/internal/catalog"
	apperrors "github.com/storefront-go/storefront/pkg/errors"
	"github.com/storefront-go/storefront/pkg/pagination"
)

// Catalog is the slice of the catalog client the product endpoints use.
type Catalog interface {
	Products(ctx context.Context, limit, skip int) (*catalog.Page, error)
	ProductsByCategory(ctx context.Context, category string, limit, skip int) (*catalog.Page, error)
	Search(ctx context.Context, query string, limit, skip int) (*catalog.Page, error)
	Categories(ctx context.Context) ([]string, error)
}

// ProductHandler proxies stateless catalog lookups: listings, search, and the
// category index. Session-scoped grid state lives in the browse endpoints.
type ProductHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewProductHandler creates a product HTTP handler.
func NewProductHandler(cat Catalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.catalog.Products(r.Context(), params.Limit, params.Skip)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: pagination.NewResult(page.Products, page.Total, params)})
}

// ListByCategory handles GET /api/v1/products/category/{category}
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		writeError(w, r, h.logger, apperrors.InvalidInput("category is required"))
		return
	}

	params := pagination.FromRequest(r)

	page, err := h.catalog.ProductsByCategory(r.Context(), category, params.Limit, params.Skip)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: pagination.NewResult(page.Products, page.Total, params)})
}

// SearchProducts handles GET /api/v1/products/search?q=
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, r, h.logger, apperrors.InvalidInput("query parameter 'q' is required"))
		return
	}

	params := pagination.FromRequest(r)

	page, err := h.catalog.Search(r.Context(), query, params.Limit, params.Skip)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: pagination.NewResult(page.Products, page.Total, params)})
}

// ListCategories handles GET /api/v1/products/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: categories})
}
