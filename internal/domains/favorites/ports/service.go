package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/projection"
)

// ErrNotFound is returned when a listing is not in the favorites.
var ErrNotFound = errors.New("foster service not in favorites")

type FavoritesProjection = projection.Projection[domain.Favorites]

// AddInput carries the listing snapshot to favorite.
type AddInput struct {
	ServiceID    string
	Title        string
	ProviderName string
	Location     string
	ImageURL     string
	Species      []string
	NightlyRate  decimal.Decimal
	Rating       float64
}

// Event is published after every committed favorites change.
type Event struct {
	Action    collection.Action
	ServiceID string
	Favorites *FavoritesProjection
}

// Service is the favorites action surface.
type Service interface {
	Hydrate(ctx context.Context) (*FavoritesProjection, error)
	Add(ctx context.Context, input AddInput) (*FavoritesProjection, error)
	Remove(ctx context.Context, serviceID string) (*FavoritesProjection, error)
	// Toggle adds the listing when absent and removes it when present. It
	// returns the resulting membership.
	Toggle(ctx context.Context, input AddInput) (bool, *FavoritesProjection, error)
	IsMember(ctx context.Context, serviceID string) (bool, error)
	Get(ctx context.Context, serviceID string) (domain.FosterService, error)
	Clear(ctx context.Context) (*FavoritesProjection, error)
	TogglePanel(ctx context.Context) (*FavoritesProjection, error)
	ClosePanel(ctx context.Context) (*FavoritesProjection, error)
	ContinueBrowsing(ctx context.Context) (string, *FavoritesProjection, error)
	Snapshot(ctx context.Context) (*FavoritesProjection, error)
	Subscribe(fn func(ctx context.Context, event Event)) (unsubscribe func())
}
