package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-go/storefront/internal/cart"
	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. Each request resolves
// the session's cart engine through the manager, so all mutations for one
// session serialize on a single engine.
type CartHandler struct {
	carts  *cart.Manager
	logger *slog.Logger
}

// NewCartHandler creates a cart HTTP handler.
func NewCartHandler(carts *cart.Manager, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

// --- Request DTOs ---

// AddItemRequest carries the full product snapshot being added. The cart
// stores the snapshot as-is; price and discount are frozen at add time.
// A zero quantity means "one", matching a plain add-to-cart click.
type AddItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest sets an item's quantity to an exact value.
// Zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// --- Response DTOs ---

// CartView is the full cart rendering: the lines plus the totals summary the
// storefront shows next to them.
type CartView struct {
	Items           []domain.CartLine `json:"items"`
	ItemCount       int               `json:"item_count"`
	Subtotal        float64           `json:"subtotal"`
	Tax             float64           `json:"tax"`
	Total           float64           `json:"total"`
	Savings         float64           `json:"savings"`
	CheckoutEnabled bool              `json:"checkout_enabled"`
	LoadStatus      cart.LoadStatus   `json:"load_status"`
}

func cartView(e *cart.Engine) CartView {
	return CartView{
		Items:           e.Items(),
		ItemCount:       e.ItemCount(),
		Subtotal:        e.Subtotal(),
		Tax:             e.TotalTax(),
		Total:           e.Total(),
		Savings:         e.TotalSavings(),
		CheckoutEnabled: !e.IsEmpty(),
		LoadStatus:      e.LoadStatus(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())
	eng := h.carts.Engine(r.Context(), sid)

	writeJSON(w, http.StatusOK, response{Data: cartView(eng)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}
	req.Product.Normalize()
	if err := validator.Validate(req.Product); err != nil {
		writeValidationError(w, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	eng := h.carts.Engine(r.Context(), sid)
	eng.AddItem(r.Context(), req.Product, req.Quantity)

	writeJSON(w, http.StatusOK, response{Data: cartView(eng)})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID must be an integer"},
		})
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	eng := h.carts.Engine(r.Context(), sid)
	eng.UpdateQuantity(r.Context(), productID, req.Quantity)

	writeJSON(w, http.StatusOK, response{Data: cartView(eng)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "productID must be an integer"},
		})
		return
	}

	eng := h.carts.Engine(r.Context(), sid)
	eng.RemoveItem(r.Context(), productID)

	writeJSON(w, http.StatusOK, response{Data: cartView(eng)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	eng := h.carts.Engine(r.Context(), sid)
	eng.Clear(r.Context())

	writeJSON(w, http.StatusOK, response{Data: cartView(eng)})
}
