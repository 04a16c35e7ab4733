package browse

import (
	"log/slog"
	"sync"
)

// Manager hands out one browse Session per storefront session ID.
//
// TODO: evict sessions idle longer than the cart TTL; today the map grows
// for the life of the process.
type Manager struct {
	mu       sync.Mutex
	catalog  Catalog
	logger   *slog.Logger
	pageSize int
	sessions map[string]*Session
}

// NewManager creates a browse session manager.
func NewManager(cat Catalog, pageSize int, logger *slog.Logger) *Manager {
	return &Manager{
		catalog:  cat,
		logger:   logger,
		pageSize: pageSize,
		sessions: make(map[string]*Session),
	}
}

// Session returns the browse session for the given ID, creating an idle one
// on first use.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := NewSession(m.catalog, m.pageSize, m.logger)
	m.sessions[id] = s
	return s
}
