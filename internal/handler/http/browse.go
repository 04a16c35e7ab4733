package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/storefront-go/storefront/internal/browse"
	"github.com/storefront-go/storefront/pkg/validator"
)

// BrowseHandler exposes the session's product-grid state machine: activate a
// search or category filter, page deeper, or reset to the plain listing. The
// grid state lives server-side per session; each endpoint responds with the
// full view after the transition.
type BrowseHandler struct {
	sessions *browse.Manager
	logger   *slog.Logger
}

// NewBrowseHandler creates a browse HTTP handler.
func NewBrowseHandler(sessions *browse.Manager, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// --- Request DTOs ---

// SearchRequest activates a search query for the session's grid.
type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1,max=200"`
}

// FilterRequest activates a category filter for the session's grid.
type FilterRequest struct {
	Category string `json:"category" validate:"required,min=1,max=100"`
}

// --- Handlers ---

// GetView handles GET /api/v1/browse
func (h *BrowseHandler) GetView(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())
	s := h.sessions.Session(sid)

	writeJSON(w, http.StatusOK, response{Data: s.View()})
}

// Search handles POST /api/v1/browse/search
func (h *BrowseHandler) Search(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req SearchRequest
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

	s := h.sessions.Session(sid)
	if err := s.Search(r.Context(), req.Query); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: s.View()})
}

// Filter handles POST /api/v1/browse/filter
func (h *BrowseHandler) Filter(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req FilterRequest
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

	s := h.sessions.Session(sid)
	if err := s.Filter(r.Context(), req.Category); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: s.View()})
}

// Reset handles POST /api/v1/browse/reset: clears search and filter and
// reloads the plain listing from the first page.
func (h *BrowseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	s := h.sessions.Session(sid)
	if err := s.Browse(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: s.View()})
}

// LoadMore handles POST /api/v1/browse/more: appends the next page of the
// active query. A session with nothing more to load answers with its current
// view unchanged.
func (h *BrowseHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	s := h.sessions.Session(sid)
	if err := s.LoadMore(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: s.View()})
}
