package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/domain"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/projection"
)

// CartProjection is the cart read model plus collection metadata.
type CartProjection = projection.Projection[domain.Cart]

// AddItemInput carries a product snapshot and the units to add. A zero
// Quantity adds one unit.
type AddItemInput struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Quantity    int
}

// Event is published after every committed cart change.
type Event struct {
	Action    collection.Action
	ProductID string
	Cart      *CartProjection
}

// Service is the cart action surface.
type Service interface {
	Hydrate(ctx context.Context) (*CartProjection, error)
	Add(ctx context.Context, input AddItemInput) (*CartProjection, error)
	Remove(ctx context.Context, productID string) (*CartProjection, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (*CartProjection, error)
	Clear(ctx context.Context) (*CartProjection, error)
	TogglePanel(ctx context.Context) (*CartProjection, error)
	ClosePanel(ctx context.Context) (*CartProjection, error)
	// ContinueShopping closes the panel and navigates back to the store.
	// It returns the location navigated to.
	ContinueShopping(ctx context.Context) (string, *CartProjection, error)
	Snapshot(ctx context.Context) (*CartProjection, error)
	Subscribe(fn func(ctx context.Context, event Event)) (unsubscribe func())
}
