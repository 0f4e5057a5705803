package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/persistence/kvstore"
	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	kvmemory "github.com/Apurer/go-petfoster-collections/internal/platform/kv/memory"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/navigation"
	"github.com/Apurer/go-petfoster-collections/internal/shared/notify"
)

func newService(t *testing.T, store kv.Store, opts ...Option) *Service {
	t.Helper()
	persist, err := kvstore.NewStore(store, slog.Default())
	require.NoError(t, err)
	svc, err := NewService(persist, opts...)
	require.NoError(t, err)
	_, err = svc.Hydrate(context.Background())
	require.NoError(t, err)
	return svc
}

func listing(id string) ports.AddInput {
	return ports.AddInput{ServiceID: id, Title: "Listing " + id, NightlyRate: decimal.NewFromInt(30), Rating: 4.8}
}

func TestFavoritesLifecycle(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())
	ctx := context.Background()

	proj, err := svc.Add(ctx, listing("f1"))
	require.NoError(t, err)
	member, err := svc.IsMember(ctx, "f1")
	require.NoError(t, err)
	require.True(t, member)
	require.Len(t, proj.Entity.Services, 1)

	proj, err = svc.Add(ctx, listing("f1"))
	require.NoError(t, err)
	require.Len(t, proj.Entity.Services, 1)

	proj, err = svc.Remove(ctx, "f1")
	require.NoError(t, err)
	require.Empty(t, proj.Entity.Services)
	member, err = svc.IsMember(ctx, "f1")
	require.NoError(t, err)
	require.False(t, member)
}

func TestAdd_IsIdempotent(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())
	ctx := context.Background()

	once, err := svc.Add(ctx, listing("f1"))
	require.NoError(t, err)
	twice, err := svc.Add(ctx, ports.AddInput{ServiceID: "f1", Title: "renamed"})
	require.NoError(t, err)

	require.Equal(t, once.Entity.Services, twice.Entity.Services)
	require.Equal(t, once.Metadata.Revision, twice.Metadata.Revision)
	require.Equal(t, "Listing f1", twice.Entity.Services[0].Title)
}

func TestAdd_InvalidInput(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())

	_, err := svc.Add(context.Background(), ports.AddInput{ServiceID: " "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingServiceID)

	_, err = svc.Remove(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())
	ctx := context.Background()
	before, err := svc.Add(ctx, listing("f1"))
	require.NoError(t, err)

	after, err := svc.Remove(ctx, "missing")
	require.NoError(t, err)
	require.Equal(t, before.Entity.Services, after.Entity.Services)
}

func TestToggle(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())
	ctx := context.Background()

	member, proj, err := svc.Toggle(ctx, listing("f1"))
	require.NoError(t, err)
	require.True(t, member)
	require.True(t, proj.Entity.Contains("f1"))

	member, proj, err = svc.Toggle(ctx, listing("f1"))
	require.NoError(t, err)
	require.False(t, member)
	require.False(t, proj.Entity.Contains("f1"))
}

func TestGet(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())
	ctx := context.Background()
	in := listing("f1")
	in.Species = []string{"dog", "cat"}
	_, err := svc.Add(ctx, in)
	require.NoError(t, err)

	got, err := svc.Get(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, []string{"dog", "cat"}, got.Species)
	got.Species[0] = "parrot"

	again, err := svc.Get(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, "dog", again.Species[0])

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestReloadKeepsOrder(t *testing.T) {
	store := kvmemory.NewStore()
	ctx := context.Background()
	svc := newService(t, store)
	for _, id := range []string{"f3", "f1", "f2"} {
		_, err := svc.Add(ctx, listing(id))
		require.NoError(t, err)
	}

	reloaded := newService(t, store)
	proj, err := reloaded.Snapshot(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(proj.Entity.Services))
	for _, s := range proj.Entity.Services {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []string{"f3", "f1", "f2"}, ids)
}

func TestClear_PurgesStorage(t *testing.T) {
	store := kvmemory.NewStore()
	ctx := context.Background()
	svc := newService(t, store)
	_, err := svc.Add(ctx, listing("f1"))
	require.NoError(t, err)

	_, err = svc.Clear(ctx)
	require.NoError(t, err)

	_, err = store.Get(ctx, domain.StorageKey)
	require.ErrorIs(t, err, kv.ErrNotFound)
	proj, err := newService(t, store).Snapshot(ctx)
	require.NoError(t, err)
	require.True(t, proj.Entity.IsEmpty())
}

func TestContinueBrowsing(t *testing.T) {
	nav := &navigation.Recorder{}
	svc := newService(t, kvmemory.NewStore(), WithNavigator(nav))
	ctx := context.Background()
	_, err := svc.TogglePanel(ctx)
	require.NoError(t, err)

	location, proj, err := svc.ContinueBrowsing(ctx)

	require.NoError(t, err)
	require.Equal(t, BrowsePath, location)
	require.False(t, proj.Entity.IsOpen)
	require.Equal(t, BrowsePath, nav.Last())
}

func TestToastsOnlyForChanges(t *testing.T) {
	center := notify.NewCenter(notify.WithTTL(0))
	defer center.Close()
	svc := newService(t, kvmemory.NewStore(), WithNotifier(center))
	ctx := context.Background()

	_, _ = svc.Add(ctx, listing("f1"))
	_, _ = svc.Add(ctx, listing("f1"))
	_, _ = svc.Remove(ctx, "f1")
	_, _ = svc.Remove(ctx, "f1")

	toasts := center.List()
	require.Len(t, toasts, 2)
	require.Equal(t, "Listing f1 added to favorites", toasts[0].Message)
	require.Equal(t, "Listing f1 removed from favorites", toasts[1].Message)
}

func TestInvalidAddToastsFailure(t *testing.T) {
	center := notify.NewCenter(notify.WithTTL(0))
	defer center.Close()
	svc := newService(t, kvmemory.NewStore(), WithNotifier(center))

	_, err := svc.Add(context.Background(), ports.AddInput{ServiceID: " "})
	require.ErrorIs(t, err, ErrInvalidInput)

	toasts := center.List()
	require.Len(t, toasts, 1)
	require.Equal(t, notify.LevelError, toasts[0].Level)
	require.Equal(t, "failed to add to favorites", toasts[0].Message)
}

func TestSubscribe(t *testing.T) {
	svc := newService(t, kvmemory.NewStore())
	ctx := context.Background()

	var counts []int
	var actions []collection.Action
	unsubscribe := svc.Subscribe(func(_ context.Context, e ports.Event) {
		counts = append(counts, e.Favorites.Entity.TotalItems())
		actions = append(actions, e.Action)
	})
	defer unsubscribe()

	_, _ = svc.Add(ctx, listing("f1"))
	_, _ = svc.Add(ctx, listing("f2"))
	_, _, _ = svc.Toggle(ctx, listing("f1"))
	_, _ = svc.TogglePanel(ctx)

	require.Equal(t, []int{1, 2, 1, 1}, counts)
	require.Equal(t, []collection.Action{
		collection.ActionAdd, collection.ActionAdd, collection.ActionRemove, collection.ActionPanel,
	}, actions)
}
