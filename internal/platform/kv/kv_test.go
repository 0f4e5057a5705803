package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/memory"
)

func TestNamespace_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	scoped := kv.Namespace(base, "/visitors/v1/")

	require.NoError(t, scoped.Set(ctx, "cart", []byte(`[]`)))
	require.ElementsMatch(t, []string{"visitors/v1/cart"}, base.Keys())

	value, err := scoped.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(value))

	require.NoError(t, scoped.Delete(ctx, "cart"))
	_, err = base.Get(ctx, "visitors/v1/cart")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestNamespace_IsolatesScopes(t *testing.T) {
	ctx := context.Background()
	base := memory.NewStore()
	a := kv.Namespace(base, "visitors/a")
	b := kv.Namespace(base, "visitors/b")

	require.NoError(t, a.Set(ctx, "favorites", []byte(`["x"]`)))
	_, err := b.Get(ctx, "favorites")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestNamespace_EmptyPrefixReturnsStore(t *testing.T) {
	base := memory.NewStore()
	require.Same(t, kv.Store(base), kv.Namespace(base, "  "))
	require.Equal(t, "memory", kv.BackendName(kv.Namespace(base, "x")))
}
