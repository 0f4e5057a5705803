package rediskv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_NotConfigured(t *testing.T) {
	store := NewStore(nil, WithTTL(time.Hour))

	_, err := store.Get(context.Background(), "cart")
	require.EqualError(t, err, "redis kv store not configured")
	require.Error(t, store.Set(context.Background(), "cart", []byte(`[]`)))
	require.Error(t, store.Delete(context.Background(), "cart"))
	require.Equal(t, time.Hour, store.ttl)
}

func TestDial_EmptyAddress(t *testing.T) {
	_, err := Dial(context.Background(), " ", 0)
	require.Error(t, err)
}
