package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry mounts one Provider per visitor and reuses it afterwards.
type Registry struct {
	mu        sync.Mutex
	deps      Deps
	providers map[string]*entry
	now       func() time.Time
}

// entry is registered before its provider is mounted; ready is closed once
// provider or err is set.
type entry struct {
	ready    chan struct{}
	provider *Provider
	err      error
	lastSeen time.Time
}

func (e *entry) mounted() bool {
	select {
	case <-e.ready:
		return e.err == nil
	default:
		return false
	}
}

func NewRegistry(deps Deps) (*Registry, error) {
	if deps.Store == nil {
		return nil, ErrNoStore
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{deps: deps, providers: map[string]*entry{}, now: now}, nil
}

// Get returns the provider of visitorID, mounting and hydrating it on first use.
// Concurrent first calls for the same visitor share one mount; other visitors
// are never blocked by it.
func (r *Registry) Get(ctx context.Context, visitorID string) (*Provider, error) {
	if err := ValidateVisitorID(visitorID); err != nil {
		return nil, err
	}
	r.mu.Lock()
	if e, ok := r.providers[visitorID]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		select {
		case <-e.ready:
			return e.provider, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	e := &entry{ready: make(chan struct{}), lastSeen: r.now()}
	r.providers[visitorID] = e
	r.mu.Unlock()

	p, err := NewProvider(ctx, visitorID, r.deps)

	r.mu.Lock()
	e.provider, e.err = p, err
	if err != nil && r.providers[visitorID] == e {
		delete(r.providers, visitorID)
	}
	close(e.ready)
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	r.deps.logger().LogAttrs(ctx, slog.LevelInfo, "visitor session mounted",
		slog.String("visitor.id", visitorID),
		slog.Int("cart.entries", p.cartLen(ctx)),
		slog.Int("favorites.entries", p.favoritesLen(ctx)),
	)
	return p, nil
}

// Evict unmounts visitorID. Its persisted collections are untouched, so the
// next Get hydrates them again. A visitor still being mounted is left alone.
func (r *Registry) Evict(visitorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.providers[visitorID]
	if !ok || !e.mounted() {
		return false
	}
	e.provider.Close()
	delete(r.providers, visitorID)
	return true
}

// EvictIdle unmounts providers not used since before and returns how many were dropped.
func (r *Registry) EvictIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, e := range r.providers {
		if e.mounted() && e.lastSeen.Before(before) {
			e.provider.Close()
			delete(r.providers, id)
			dropped++
		}
	}
	return dropped
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}

// Close unmounts every provider.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.providers {
		if e.mounted() {
			e.provider.Close()
		}
		delete(r.providers, id)
	}
}

func (p *Provider) cartLen(ctx context.Context) int {
	proj, err := p.cart.Snapshot(ctx)
	if err != nil || proj == nil {
		return 0
	}
	return len(proj.Entity.Entries)
}

func (p *Provider) favoritesLen(ctx context.Context) int {
	proj, err := p.favorites.Snapshot(ctx)
	if err != nil || proj == nil {
		return 0
	}
	return proj.Entity.TotalItems()
}
