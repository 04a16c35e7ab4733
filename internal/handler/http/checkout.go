package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storefront-go/storefront/internal/cart"
	"github.com/storefront-go/storefront/internal/checkout"
)

// CheckoutHandler runs the simulated checkout for the session's cart.
type CheckoutHandler struct {
	carts    *cart.Manager
	checkout *checkout.Service
	logger   *slog.Logger
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(carts *cart.Manager, svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:    carts,
		checkout: svc,
		logger:   logger,
	}
}

// Submit handles POST /api/v1/checkout. Validation failures and an empty
// cart answer 400; a completed checkout answers with the order confirmation
// and leaves the session's cart empty.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var details checkout.PaymentDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	eng := h.carts.Engine(r.Context(), sid)
	order, err := h.checkout.Submit(r.Context(), eng, details)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: order})
}
