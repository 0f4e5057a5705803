// Package notify keeps short-lived toast notifications for a visitor.
package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyMessage is returned when a toast has nothing to say.
var ErrEmptyMessage = errors.New("toast message is empty")

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is a single user-facing notification.
type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Notifier delivers toasts. Callers treat failures as best effort.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string) (Toast, error)
}

// Nop discards every toast.
type Nop struct{}

func (Nop) Notify(_ context.Context, level Level, message string) (Toast, error) {
	return Toast{Level: level, Message: message}, nil
}

const DefaultTTL = 3 * time.Second

// Option configures a Center.
type Option func(*Center)

// WithTTL sets the auto-dismiss delay. A non-positive ttl keeps toasts until dismissed.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) { c.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCapacity bounds the number of visible toasts; the oldest is dismissed first.
func WithCapacity(n int) Option {
	return func(c *Center) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Center stores active toasts and dismisses each after its TTL. Dismissing a
// toast early cancels its pending timer.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	now      func() time.Time
	toasts   []Toast
	timers   map[string]*time.Timer
}

var _ Notifier = (*Center)(nil)

func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:      DefaultTTL,
		capacity: 5,
		now:      time.Now,
		timers:   map[string]*time.Timer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify records a toast and schedules its dismissal.
func (c *Center) Notify(_ context.Context, level Level, message string) (Toast, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Toast{}, ErrEmptyMessage
	}
	if level == "" {
		level = LevelInfo
	}
	toast := Toast{ID: uuid.NewString(), Level: level, Message: message, CreatedAt: c.now()}

	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.toasts) >= c.capacity {
		c.dismissLocked(c.toasts[0].ID)
	}
	c.toasts = append(c.toasts, toast)
	if c.ttl > 0 {
		id := toast.ID
		c.timers[id] = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	}
	return toast, nil
}

// Dismiss removes the toast and stops its timer. It reports whether the toast was active.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismissLocked(id)
}

// List returns active toasts, oldest first.
func (c *Center) List() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Close stops every pending timer and drops all toasts.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.toasts = nil
}

func (c *Center) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *Center) dismissLocked(id string) bool {
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, toast := range c.toasts {
		if toast.ID == id {
			c.toasts = append(c.toasts[:i:i], c.toasts[i+1:]...)
			return true
		}
	}
	return false
}
