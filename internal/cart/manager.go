package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/storefront-go/storefront/internal/kvstore"
)

const slotPrefix = "cart:"

// Manager hands out one Engine per storefront session, so that a given store
// slot has a single in-process owner serializing its mutations.
type Manager struct {
	mu      sync.Mutex
	store   kvstore.Store
	logger  *slog.Logger
	engines map[string]*Engine
}

// NewManager creates a cart manager over the given store.
func NewManager(store kvstore.Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		logger:  logger,
		engines: make(map[string]*Engine),
	}
}

// Engine returns the cart engine for the session, hydrating it from the
// store on first use.
func (m *Manager) Engine(ctx context.Context, sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.engines[sessionID]; ok {
		return e
	}

	e := New(ctx, m.store, slotPrefix+sessionID, m.logger)
	m.engines[sessionID] = e
	return e
}
