package kvstore

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/domain"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	kvmemory "github.com/Apurer/go-petfoster-collections/internal/platform/kv/memory"
)

func newStore(t *testing.T) (*Store, *kvmemory.Store) {
	t.Helper()
	backing := kvmemory.NewStore()
	s, err := NewStore(backing, slog.Default())
	require.NoError(t, err)
	return s, backing
}

func TestStore_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	entries := []domain.Entry{
		{Product: domain.Product{ID: "kibble", Name: "Kibble", Price: decimal.RequireFromString("12.50"), Discount: decimal.NewFromInt(10)}, Quantity: 2},
		{Product: domain.Product{ID: "leash", Price: decimal.NewFromInt(30)}, Quantity: 1},
	}

	s.Save(ctx, entries)
	got := s.Load(ctx)

	require.Len(t, got, 2)
	for i := range entries {
		require.Equal(t, entries[i].ID(), got[i].ID())
		require.Equal(t, entries[i].Quantity, got[i].Quantity)
		require.Equal(t, entries[i].Product.Name, got[i].Product.Name)
		require.True(t, entries[i].Product.Price.Equal(got[i].Product.Price))
		require.True(t, entries[i].Product.Discount.Equal(got[i].Product.Discount))
	}
}

func TestStore_WireFormat(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()

	s.Save(ctx, []domain.Entry{{Product: domain.Product{ID: "p1", Price: decimal.NewFromInt(5)}, Quantity: 3}})

	raw, err := backing.Get(ctx, domain.StorageKey)
	require.NoError(t, err)
	require.JSONEq(t, `[{"product":{"id":"p1","price":"5","discount":"0"},"quantity":3}]`, string(raw))
}

func TestStore_AcceptsNumericPrices(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, domain.StorageKey,
		[]byte(`[{"product":{"id":"p1","price":19.99,"discount":5},"quantity":1}]`)))

	got := s.Load(ctx)

	require.Len(t, got, 1)
	require.Equal(t, "19.99", got[0].Product.Price.String())
}

func TestStore_RejectsZeroQuantityDocument(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()
	require.NoError(t, backing.Set(ctx, domain.StorageKey,
		[]byte(`[{"product":{"id":"p1","price":"1"},"quantity":0}]`)))

	require.Empty(t, s.Load(ctx))
}

func TestStore_PurgeRemovesKey(t *testing.T) {
	s, backing := newStore(t)
	ctx := context.Background()
	s.Save(ctx, []domain.Entry{{Product: domain.Product{ID: "p1"}, Quantity: 1}})

	s.Purge(ctx)

	_, err := backing.Get(ctx, domain.StorageKey)
	require.ErrorIs(t, err, kv.ErrNotFound)
	require.Empty(t, s.Load(ctx))
}
