package store

import (
	"log/slog"
	"sync"
)

// Registry hands out one Store per signed-in identity. A store lives until its
// owner signs out, so nothing loaded for one user is ever visible to another.
type Registry struct {
	backend Backend
	opts    []Option
	logger  *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry builds stores with opts followed by WithOwner.
func NewRegistry(backend Backend, logger *slog.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		backend: backend,
		opts:    opts,
		logger:  logger,
		stores:  map[string]*Store{},
	}
}

// For returns owner's store, creating it on first use.
func (r *Registry) For(owner string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[owner]; ok {
		return s
	}
	opts := append(append([]Option{}, r.opts...), WithOwner(owner), WithLogger(r.logger))
	s := New(r.backend, opts...)
	r.stores[owner] = s
	r.logger.Debug("store created", slog.String("owner", owner))
	return s
}

// Drop forgets owner's store. The next For starts from an empty state.
func (r *Registry) Drop(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[owner]; ok {
		delete(r.stores, owner)
		r.logger.Debug("store dropped", slog.String("owner", owner))
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Close drops every store.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.stores)
}
