// Package persistence mirrors a collection to a kv.Store as a JSON array.
// Failures are logged and swallowed: the in-memory collection stays
// authoritative for the session.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

// DefaultWriteTimeout bounds a single Save or Purge.
const DefaultWriteTimeout = 5 * time.Second

var (
	ErrNotConfigured = errors.New("persistence adapter not configured")
	ErrNotArray      = errors.New("persisted value is not an array")
)

// Option configures an Adapter.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	schema       []byte
	writeTimeout time.Duration
}

// WithLogger sets the logger used for anomalies.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSchema validates every loaded document against the given JSON Schema.
func WithSchema(raw []byte) Option {
	return func(o *options) {
		o.schema = raw
	}
}

// WithWriteTimeout overrides DefaultWriteTimeout.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.writeTimeout = timeout
		}
	}
}

// Adapter persists []E under a single key.
type Adapter[E any] struct {
	store        kv.Store
	key          string
	logger       *slog.Logger
	schema       *jsonschema.Schema
	writeTimeout time.Duration
}

// NewAdapter binds store and key. An invalid schema is reported here rather than on load.
func NewAdapter[E any](store kv.Store, key string, opts ...Option) (*Adapter[E], error) {
	if store == nil || strings.TrimSpace(key) == "" {
		return nil, ErrNotConfigured
	}
	cfg := options{logger: slog.Default(), writeTimeout: DefaultWriteTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &Adapter[E]{store: store, key: key, logger: cfg.logger, writeTimeout: cfg.writeTimeout}
	if len(cfg.schema) > 0 {
		schema, err := compileSchema(key, cfg.schema)
		if err != nil {
			return nil, err
		}
		a.schema = schema
	}
	return a, nil
}

func compileSchema(key string, raw []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema for %q: %w", key, err)
	}
	url := "mem://schemas/" + strings.ReplaceAll(key, "/", "_") + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema for %q: %w", key, err)
	}
	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %q: %w", key, err)
	}
	return schema, nil
}

func (a *Adapter[E]) Key() string { return a.key }

// Save overwrites the key with items encoded as a JSON array. The write
// outlives cancellation of ctx: the in-memory mutation has already committed.
func (a *Adapter[E]) Save(ctx context.Context, items []E) {
	if items == nil {
		items = []E{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		a.warn(ctx, "encode collection failed", err)
		return
	}
	writeCtx, cancel := a.writeContext(ctx)
	defer cancel()
	if err := a.store.Set(writeCtx, a.key, payload); err != nil {
		a.warn(ctx, "persist collection failed", err)
	}
}

// Load returns the stored items, or an empty slice when the key is missing
// or its value is malformed.
func (a *Adapter[E]) Load(ctx context.Context) []E {
	payload, err := a.store.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			a.warn(ctx, "read persisted collection failed", err)
		}
		return []E{}
	}
	items, err := a.decode(payload)
	if err != nil {
		a.warn(ctx, "discarding malformed persisted collection", err)
		return []E{}
	}
	return items
}

// Purge removes the key. Like Save, it is not aborted by ctx cancellation.
func (a *Adapter[E]) Purge(ctx context.Context) {
	writeCtx, cancel := a.writeContext(ctx)
	defer cancel()
	if err := a.store.Delete(writeCtx, a.key); err != nil && !errors.Is(err, kv.ErrNotFound) {
		a.warn(ctx, "purge persisted collection failed", err)
	}
}

// writeContext keeps ctx values (trace spans) but drops its cancellation and
// deadline, replacing them with the adapter's own write timeout.
func (a *Adapter[E]) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), a.writeTimeout)
}

func (a *Adapter[E]) decode(payload []byte) ([]E, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if _, ok := doc.([]any); !ok {
		return nil, ErrNotArray
	}
	if a.schema != nil {
		if err := a.schema.Validate(doc); err != nil {
			return nil, err
		}
	}
	items := []E{}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (a *Adapter[E]) warn(ctx context.Context, msg string, err error) {
	a.logger.LogAttrs(ctx, slog.LevelWarn, msg,
		slog.String("key", a.key),
		slog.String("backend", kv.BackendName(a.store)),
		slog.String("error", err.Error()),
	)
}
