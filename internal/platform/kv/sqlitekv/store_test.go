package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "collections.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Get(ctx, "cart")
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart", []byte(`[{"quantity":1}]`)))
	require.NoError(t, store.Set(ctx, "cart", []byte(`[{"quantity":3}]`)))

	got, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, `[{"quantity":3}]`, string(got))

	require.NoError(t, store.Delete(ctx, "cart"))
	_, err = store.Get(ctx, "cart")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "collections.sqlite")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "favorites", []byte(`[{"id":"f1"}]`)))
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "favorites")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"f1"}]`, string(got))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}
