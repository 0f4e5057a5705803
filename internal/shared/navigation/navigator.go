// Package navigation is the routing collaborator invoked after "continue" actions.
package navigation

import (
	"context"
	"log/slog"
	"sync"
)

// Navigator moves the visitor to location.
type Navigator interface {
	Navigate(ctx context.Context, location string) error
}

// Func adapts a plain function to Navigator.
type Func func(ctx context.Context, location string) error

func (f Func) Navigate(ctx context.Context, location string) error { return f(ctx, location) }

// Logger records navigation requests in the log; hosts without a router use it.
type Logger struct {
	Log *slog.Logger
}

func (l Logger) Navigate(ctx context.Context, location string) error {
	logger := l.Log
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "navigate", slog.String("location", location))
	return nil
}

// Recorder remembers every requested location.
type Recorder struct {
	mu        sync.Mutex
	locations []string
}

func (r *Recorder) Navigate(_ context.Context, location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, location)
	return nil
}

// Locations returns the requested locations in order.
func (r *Recorder) Locations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.locations...)
}

// Last returns the most recent location, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.locations) == 0 {
		return ""
	}
	return r.locations[len(r.locations)-1]
}
