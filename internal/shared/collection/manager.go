package collection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Apurer/go-petfoster-collections/internal/shared/panel"
	"github.com/Apurer/go-petfoster-collections/internal/shared/projection"
)

// ErrNotConfigured is returned when a manager is built without a key function or persister.
var ErrNotConfigured = errors.New("collection manager not configured")

// Action names the operation that produced a change.
type Action string

const (
	ActionHydrate Action = "hydrate"
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionUpdate  Action = "update"
	ActionClear   Action = "clear"
	ActionPanel   Action = "panel"
)

// State is an immutable view of a collection at one revision.
type State[E any] struct {
	Items    []E
	IsOpen   bool
	Metadata projection.Metadata
}

// Change is delivered to subscribers after every committed mutation.
type Change[E any] struct {
	Action Action
	ID     string
	State  State[E]
	At     time.Time
}

// Persister mirrors items to durable storage. Implementations swallow and log
// their own failures.
type Persister[E any] interface {
	Save(ctx context.Context, items []E)
	Load(ctx context.Context) []E
	Purge(ctx context.Context)
}

// Option configures a Manager.
type Option[E any] func(*Manager[E])

// WithClock overrides the time source used for metadata.
func WithClock[E any](now func() time.Time) Option[E] {
	return func(m *Manager[E]) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger used for hydration anomalies.
func WithLogger[E any](logger *slog.Logger) Option[E] {
	return func(m *Manager[E]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFilter drops hydrated entries for which keep returns false.
func WithFilter[E any](keep func(E) bool) Option[E] {
	return func(m *Manager[E]) {
		m.keep = keep
	}
}

// WithName labels log records emitted by the manager.
func WithName[E any](name string) Option[E] {
	return func(m *Manager[E]) {
		if name != "" {
			m.name = name
		}
	}
}

// Manager owns one collection: its items, its panel and its durable mirror.
// Every mutation is atomic, persisted before it returns and delivered to
// subscribers in commit order.
type Manager[E any] struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	name    string
	set     *Set[E]
	panel   panel.Panel
	persist Persister[E]
	subs    subscribers[E]
	keep    func(E) bool
	logger  *slog.Logger
	now     func() time.Time
	meta    projection.Metadata
}

// NewManager builds an empty, closed manager. Call Hydrate to seed it from storage.
func NewManager[E any](key func(E) string, persist Persister[E], opts ...Option[E]) (*Manager[E], error) {
	if key == nil || persist == nil {
		return nil, ErrNotConfigured
	}
	m := &Manager[E]{
		name:    "collection",
		set:     NewSet(key),
		persist: persist,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Hydrate replaces the in-memory items with whatever the persister loads.
// Duplicate, keyless or filtered entries are dropped and logged.
func (m *Manager[E]) Hydrate(ctx context.Context) State[E] {
	loaded := m.persist.Load(ctx)

	m.mu.Lock()
	kept := loaded
	if m.keep != nil {
		kept = make([]E, 0, len(loaded))
		for _, item := range loaded {
			if m.keep(item) {
				kept = append(kept, item)
			}
		}
	}
	dropped := len(loaded) - len(kept) + m.set.Reset(kept)
	now := m.now()
	m.meta.HydratedAt = now
	m.meta.UpdatedAt = now
	m.meta.Revision++
	state := m.snapshotLocked()
	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()

	if dropped > 0 {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "dropped invalid persisted entries",
			slog.String("collection", m.name),
			slog.Int("dropped", dropped),
			slog.Int("kept", len(state.Items)),
		)
	}
	m.subs.notify(ctx, Change[E]{Action: ActionHydrate, State: state, At: now})
	return state
}

// Mutate runs fn against the item set under the manager lock. When fn reports
// a change the new items are persisted and subscribers notified before
// Mutate returns.
func (m *Manager[E]) Mutate(ctx context.Context, action Action, id string, fn func(*Set[E]) bool) (State[E], bool) {
	m.mu.Lock()
	if !fn(m.set) {
		state := m.snapshotLocked()
		m.mu.Unlock()
		return state, false
	}
	m.persist.Save(ctx, m.set.Items())
	return m.commitLocked(ctx, action, id), true
}

// Clear empties the collection and purges its durable key. The key is purged
// even when the collection is already empty.
func (m *Manager[E]) Clear(ctx context.Context) (State[E], bool) {
	m.mu.Lock()
	hadItems := m.set.Len() > 0
	m.set.Clear()
	m.persist.Purge(ctx)
	if !hadItems {
		state := m.snapshotLocked()
		m.mu.Unlock()
		return state, false
	}
	return m.commitLocked(ctx, ActionClear, ""), true
}

// TogglePanel flips panel visibility. Items and storage are untouched.
func (m *Manager[E]) TogglePanel(ctx context.Context) State[E] {
	m.mu.Lock()
	m.panel.Toggle()
	return m.commitLocked(ctx, ActionPanel, "")
}

// ClosePanel forces the panel closed and reports whether it was open.
func (m *Manager[E]) ClosePanel(ctx context.Context) (State[E], bool) {
	m.mu.Lock()
	if !m.panel.Close() {
		state := m.snapshotLocked()
		m.mu.Unlock()
		return state, false
	}
	return m.commitLocked(ctx, ActionPanel, ""), true
}

// Snapshot returns the current state.
func (m *Manager[E]) Snapshot() State[E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Get returns the entry stored under id.
func (m *Manager[E]) Get(id string) (E, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Get(id)
}

// Contains reports membership of id.
func (m *Manager[E]) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Has(id)
}

func (m *Manager[E]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Len()
}

// Subscribe registers fn for every future change. The returned func
// unregisters it and is safe to call more than once.
func (m *Manager[E]) Subscribe(fn Subscriber[E]) func() {
	return m.subs.add(fn)
}

// commitLocked bumps the revision and hands the change to subscribers. The
// caller must hold mu; it is released before subscribers run but notifyMu is
// taken first so deliveries keep commit order.
func (m *Manager[E]) commitLocked(ctx context.Context, action Action, id string) State[E] {
	now := m.now()
	m.meta.UpdatedAt = now
	m.meta.Revision++
	state := m.snapshotLocked()
	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()
	m.subs.notify(ctx, Change[E]{Action: action, ID: id, State: state, At: now})
	return state
}

func (m *Manager[E]) snapshotLocked() State[E] {
	return State[E]{
		Items:    m.set.Items(),
		IsOpen:   m.panel.IsOpen(),
		Metadata: m.meta,
	}
}
