//go:build integration

package rediskv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

func setupRedisContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), cleanup
}

func TestStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr, cleanup := setupRedisContainer(t)
	defer cleanup()

	ctx := context.Background()
	client, err := Dial(ctx, addr, 0)
	require.NoError(t, err)
	defer client.Close()

	store := NewStore(client)

	_, err = store.Get(ctx, "visitors/v1/cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "visitors/v1/cart", []byte(`[{"quantity":1}]`)))
	got, err := store.Get(ctx, "visitors/v1/cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":1}]`, string(got))

	require.NoError(t, store.Delete(ctx, "visitors/v1/cart"))
	_, err = store.Get(ctx, "visitors/v1/cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_TTLExpiresKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr, cleanup := setupRedisContainer(t)
	defer cleanup()

	ctx := context.Background()
	client, err := Dial(ctx, addr, 0)
	require.NoError(t, err)
	defer client.Close()

	store := NewStore(client, WithTTL(time.Minute))
	require.NoError(t, store.Set(ctx, "favorites", []byte(`[]`)))

	ttl, err := client.TTL(ctx, "favorites").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
