// Package browse tracks the product-grid view state for one storefront
// session: the active search term or category filter, the pagination cursor,
// and the currently displayed products.
package browse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/storefront-go/storefront/internal/catalog"
	"github.com/storefront-go/storefront/internal/domain"
)

// State is the browse state machine's current state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Catalog is the slice of the catalog client a session queries.
type Catalog interface {
	Products(ctx context.Context, limit, skip int) (*catalog.Page, error)
	ProductsByCategory(ctx context.Context, category string, limit, skip int) (*catalog.Page, error)
	Search(ctx context.Context, query string, limit, skip int) (*catalog.Page, error)
}

// Session is the state machine driving one product grid. Search and category
// filter are mutually exclusive: activating one clears the other and resets
// the cursor. Fetch failures leave the displayed set and cursor untouched.
//
// Every issued request carries a generation number; a completion that
// observes a newer generation discards its results, so a slow stale response
// can never overwrite the outcome of a later request.
type Session struct {
	mu       sync.Mutex
	catalog  Catalog
	logger   *slog.Logger
	pageSize int

	state      State
	searchTerm string
	category   string
	offset     int
	products   []domain.Product
	hasMore    bool
	lastErr    error
	gen        uint64
}

// NewSession creates an idle session with a fixed page size.
func NewSession(cat Catalog, pageSize int, logger *slog.Logger) *Session {
	return &Session{
		catalog:  cat,
		logger:   logger,
		pageSize: pageSize,
		state:    StateIdle,
	}
}

// View is an immutable snapshot of the session for rendering.
type View struct {
	State      State            `json:"state"`
	SearchTerm string           `json:"search_term,omitempty"`
	Category   string           `json:"category,omitempty"`
	Offset     int              `json:"offset"`
	PageSize   int              `json:"page_size"`
	Products   []domain.Product `json:"products"`
	HasMore    bool             `json:"has_more"`
	Error      string           `json:"error,omitempty"`
}

// View returns a snapshot of the current session state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]domain.Product, len(s.products))
	copy(products, s.products)

	v := View{
		State:      s.state,
		SearchTerm: s.searchTerm,
		Category:   s.category,
		Offset:     s.offset,
		PageSize:   s.pageSize,
		Products:   products,
		HasMore:    s.hasMore,
	}
	if s.lastErr != nil {
		v.Error = s.lastErr.Error()
	}
	return v
}

// Search activates a search query: the category filter is cleared, the
// cursor resets, and the displayed set is replaced on success.
func (s *Session) Search(ctx context.Context, term string) error {
	s.mu.Lock()
	s.searchTerm = term
	s.category = ""
	s.state = StateLoading
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	page, err := s.catalog.Search(ctx, term, s.pageSize, 0)
	return s.complete(ctx, gen, page, err, 0, true)
}

// Filter activates a category filter: the search term is cleared, the
// cursor resets, and the displayed set is replaced on success.
func (s *Session) Filter(ctx context.Context, category string) error {
	s.mu.Lock()
	s.category = category
	s.searchTerm = ""
	s.state = StateLoading
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	page, err := s.catalog.ProductsByCategory(ctx, category, s.pageSize, 0)
	return s.complete(ctx, gen, page, err, 0, true)
}

// Browse loads the plain unfiltered listing from the first page.
func (s *Session) Browse(ctx context.Context) error {
	s.mu.Lock()
	s.searchTerm = ""
	s.category = ""
	s.state = StateLoading
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	page, err := s.catalog.Products(ctx, s.pageSize, 0)
	return s.complete(ctx, gen, page, err, 0, true)
}

// LoadMore fetches the next window of whichever query is active and appends
// it to the displayed set. It is a no-op unless the session is Loaded with
// more results possibly available. The cursor advances only on success.
func (s *Session) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoaded || !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	term := s.searchTerm
	category := s.category
	nextOffset := s.offset + s.pageSize
	s.state = StateLoading
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var (
		page *catalog.Page
		err  error
	)
	switch {
	case term != "":
		page, err = s.catalog.Search(ctx, term, s.pageSize, nextOffset)
	case category != "":
		page, err = s.catalog.ProductsByCategory(ctx, category, s.pageSize, nextOffset)
	default:
		page, err = s.catalog.Products(ctx, s.pageSize, nextOffset)
	}

	return s.complete(ctx, gen, page, err, nextOffset, false)
}

// complete applies a fetch outcome. Stale completions (superseded by a newer
// request) are discarded entirely, including their errors.
func (s *Session) complete(ctx context.Context, gen uint64, page *catalog.Page, err error, offset int, replace bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.DebugContext(ctx, "discarding stale catalog response",
			slog.Uint64("stale_generation", gen),
			slog.Uint64("current_generation", s.gen),
		)
		return nil
	}

	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		return err
	}

	s.lastErr = nil
	s.state = StateLoaded
	s.offset = offset
	if replace {
		s.products = page.Products
	} else {
		s.products = append(s.products, page.Products...)
	}
	s.hasMore = len(page.Products) >= s.pageSize
	return nil
}

// State returns the current state machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HasMore reports whether a further page may exist for the active query.
func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Err returns the error from the most recent failed fetch, if the session
// is in StateFailed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
