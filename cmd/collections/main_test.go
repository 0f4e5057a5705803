package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cartmapper "github.com/Apurer/go-petfoster-collections/internal/domains/cart/adapters/http/mapper"
	favmapper "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/http/mapper"
)

func runOK(t *testing.T, args ...string) []byte {
	t.Helper()
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), args, &stdout, &stderr), stderr.String())
	return stdout.Bytes()
}

func TestCartCommandsPersistAcrossRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "collections.db")

	runOK(t, "-db", db, "cart", "add", "p1", "Kibble", "100", "2")
	runOK(t, "-db", db, "cart", "add", "p2", "Leash", "50", "1", "50")

	var cart cartmapper.Cart
	require.NoError(t, json.Unmarshal(runOK(t, "-db", db, "cart", "list"), &cart))
	require.Equal(t, 3, cart.TotalItems)
	require.Equal(t, "225", cart.TotalPrice.String())
	require.Equal(t, "p1", cart.Items[0].Product.ID)

	require.NoError(t, json.Unmarshal(runOK(t, "-db", db, "cart", "qty", "p1", "0"), &cart))
	require.Len(t, cart.Items, 1)

	require.NoError(t, json.Unmarshal(runOK(t, "-db", db, "-visitor", "other", "cart", "list"), &cart))
	require.True(t, cart.IsEmpty)

	require.NoError(t, json.Unmarshal(runOK(t, "-db", db, "cart", "clear"), &cart))
	require.True(t, cart.IsEmpty)
}

func TestFavoritesCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "collections.db")

	runOK(t, "-db", db, "favorites", "add", "f1", "Farm stay", "35")
	runOK(t, "-db", db, "favorites", "toggle", "f2", "City sitter")

	var favs favmapper.Favorites
	require.NoError(t, json.Unmarshal(runOK(t, "-db", db, "favorites", "toggle", "f1"), &favs))
	require.Equal(t, 1, favs.TotalItems)
	require.Equal(t, "f2", favs.Items[0].ID)

	require.NoError(t, json.Unmarshal(runOK(t, "-db", db, "favorites", "list"), &favs))
	require.Equal(t, "City sitter", favs.Items[0].Title)
}

func TestUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	db := filepath.Join(t.TempDir(), "collections.db")

	require.ErrorIs(t, run(context.Background(), []string{"-db", db, "cart"}, &stdout, &stderr), errUsage)
	require.ErrorIs(t, run(context.Background(), []string{"-db", db, "wishlist", "list"}, &stdout, &stderr), errUsage)
	require.Error(t, run(context.Background(), []string{"-db", db, "cart", "add", "p1", "Kibble", "cheap"}, &stdout, &stderr))
	require.Error(t, run(context.Background(), []string{"-db", db, "cart", "add", "p1", "Kibble", "1", "-2"}, &stdout, &stderr))
}
