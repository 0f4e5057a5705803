// Package kv defines the scoped key-value port used to persist collections.
// Values are opaque bytes; callers own the encoding.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store persists opaque values under string keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Named is implemented by backends that can report a short identifier for logs.
type Named interface {
	Backend() string
}

// BackendName returns the backend identifier of store, or "unknown".
func BackendName(store Store) string {
	if n, ok := store.(Named); ok {
		return n.Backend()
	}
	return "unknown"
}

// Namespace scopes every key of store under prefix ("<prefix>/<key>").
// An empty prefix returns store unchanged.
func Namespace(store Store, prefix string) Store {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" || store == nil {
		return store
	}
	return &namespaced{inner: store, prefix: prefix + "/"}
}

type namespaced struct {
	inner  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Backend() string { return BackendName(n.inner) }
