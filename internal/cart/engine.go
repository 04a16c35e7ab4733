// Package cart implements the shopping cart engine: line-item mutations,
// totals, and snapshot persistence into a single key-value slot.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/internal/kvstore"
)

// LoadStatus reports how the engine hydrated its slot at construction.
type LoadStatus string

const (
	// StatusEmpty means the slot had never been written.
	StatusEmpty LoadStatus = "empty"
	// StatusRestored means an existing snapshot was loaded.
	StatusRestored LoadStatus = "restored"
	// StatusReset means the slot was unreadable or corrupt and the cart
	// started empty instead.
	StatusReset LoadStatus = "reset"
)

// Engine owns the ordered line items of one cart and mirrors every mutation
// into its store slot. Mutations run to completion, including the persistence
// write, before returning; a failed write is logged and the in-memory state
// stays authoritative, so callers never observe a persistence error.
//
// At most one Engine is expected to own a given slot; nothing enforces this.
type Engine struct {
	mu     sync.Mutex
	store  kvstore.Store
	key    string
	logger *slog.Logger

	lines  []domain.CartLine
	status LoadStatus
}

// New hydrates a cart engine from the given store slot. Construction never
// fails: a missing slot starts empty, an unreadable or corrupt slot is reset
// to empty and logged.
func New(ctx context.Context, store kvstore.Store, key string, logger *slog.Logger) *Engine {
	e := &Engine{
		store:  store,
		key:    key,
		logger: logger,
	}

	data, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, kvstore.ErrKeyNotFound):
		e.status = StatusEmpty
	case err != nil:
		logger.WarnContext(ctx, "cart slot unreadable, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		e.status = StatusReset
	default:
		var lines []domain.CartLine
		if err := json.Unmarshal(data, &lines); err != nil {
			logger.WarnContext(ctx, "cart snapshot corrupt, starting empty",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			e.status = StatusReset
		} else {
			e.lines = lines
			e.status = StatusRestored
		}
	}

	return e
}

// LoadStatus reports how the engine hydrated at construction.
func (e *Engine) LoadStatus() LoadStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// AddItem adds quantity units of product. If a line for the product already
// exists its quantity is incremented; otherwise a new line is appended.
// Neither quantity nor stock is validated here; that is the data source's
// responsibility.
func (e *Engine) AddItem(ctx context.Context, product domain.Product, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.indexOf(product.ID); i >= 0 {
		e.lines[i].Quantity += quantity
	} else {
		e.lines = append(e.lines, domain.CartLine{
			ProductSnapshot: product,
			Quantity:        quantity,
		})
	}

	e.persist(ctx)
}

// RemoveItem deletes the line for the given product id. Removing an absent
// id is a no-op.
func (e *Engine) RemoveItem(ctx context.Context, productID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.indexOf(productID); i >= 0 {
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}

	e.persist(ctx)
}

// UpdateQuantity sets the line's quantity to exactly quantity (not additive).
// A quantity <= 0 removes the line. Updating an absent id is a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(productID)
	if i >= 0 {
		if quantity <= 0 {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
		} else {
			e.lines[i].Quantity = quantity
		}
	}

	e.persist(ctx)
}

// Clear empties all lines.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	e.persist(ctx)
}

// Items returns a snapshot of the lines in insertion order. Mutating the
// returned slice does not affect the cart.
func (e *Engine) Items() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// ItemCount returns the sum of all line quantities.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.ItemCount(e.lines)
}

// Subtotal returns the sum of discounted line prices times quantities.
func (e *Engine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Subtotal(e.lines)
}

// TotalTax returns the tax over all lines, computed on discounted prices.
func (e *Engine) TotalTax() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.TotalTax(e.lines)
}

// Total returns Subtotal + TotalTax exactly.
func (e *Engine) Total() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Total(e.lines)
}

// TotalSavings returns the total discount amount across all lines, computed
// from the original undiscounted prices.
func (e *Engine) TotalSavings() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.TotalSavings(e.lines)
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines) == 0
}

// indexOf returns the index of the line for productID, or -1. Callers must
// hold e.mu.
func (e *Engine) indexOf(productID int64) int {
	for i := range e.lines {
		if e.lines[i].ProductSnapshot.ID == productID {
			return i
		}
	}
	return -1
}

// persist serializes the full line collection into the store slot. Failures
// are logged, never returned: the in-memory cart stays authoritative even
// when the durable copy is stale. Callers must hold e.mu.
func (e *Engine) persist(ctx context.Context) {
	data, err := json.Marshal(e.lines)
	if err != nil {
		e.logger.ErrorContext(ctx, "cart snapshot marshal failed",
			slog.String("key", e.key),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := e.store.Set(ctx, e.key, data); err != nil {
		e.logger.ErrorContext(ctx, "cart snapshot write failed",
			slog.String("key", e.key),
			slog.String("error", err.Error()),
		)
	}
}
