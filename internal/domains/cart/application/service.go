package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/domain"
	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/navigation"
	"github.com/Apurer/go-petfoster-collections/internal/shared/notify"
	"github.com/Apurer/go-petfoster-collections/internal/shared/projection"
)

// StorePath is where ContinueShopping sends the visitor.
const StorePath = "/store"

var _ ports.Service = (*Service)(nil)

// Option configures the cart service.
type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithNavigator(n navigation.Navigator) Option {
	return func(s *Service) {
		if n != nil {
			s.navigator = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service orchestrates the cart use cases on top of a collection manager.
type Service struct {
	manager   *collection.Manager[domain.Entry]
	notifier  notify.Notifier
	navigator navigation.Navigator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the cart with its persister. The cart starts empty; call
// Hydrate to seed it.
func NewService(persist collection.Persister[domain.Entry], opts ...Option) (*Service, error) {
	s := &Service{
		notifier:  notify.Nop{},
		navigator: navigation.Logger{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	managerOpts := []collection.Option[domain.Entry]{
		collection.WithName[domain.Entry]("cart"),
		collection.WithLogger[domain.Entry](s.logger),
		collection.WithFilter(domain.Entry.Valid),
	}
	if s.now != nil {
		managerOpts = append(managerOpts, collection.WithClock[domain.Entry](s.now))
	}
	manager, err := collection.NewManager(domain.EntryKey, persist, managerOpts...)
	if err != nil {
		return nil, fmt.Errorf("cart: %w", err)
	}
	s.manager = manager
	return s, nil
}

// Hydrate seeds the cart from durable storage. Malformed storage yields an empty cart.
func (s *Service) Hydrate(ctx context.Context) (*ports.CartProjection, error) {
	return toProjection(s.manager.Hydrate(ctx)), nil
}

// Add appends the product or, when it is already in the cart, increases its quantity.
func (s *Service) Add(ctx context.Context, input ports.AddItemInput) (*ports.CartProjection, error) {
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	entry, err := domain.NewEntry(domain.Product{
		ID:          strings.TrimSpace(input.ProductID),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Discount:    input.Discount,
	}, quantity)
	if err != nil {
		s.toast(ctx, notify.LevelError, "failed to add to cart")
		return nil, mapError(err)
	}
	var increaseErr error
	state, _ := s.manager.Mutate(ctx, collection.ActionAdd, entry.ID(), func(set *collection.Set[domain.Entry]) bool {
		existing, ok := set.Get(entry.ID())
		if !ok {
			return set.Append(entry)
		}
		increased, err := existing.Increase(entry.Quantity)
		if err != nil {
			increaseErr = err
			return false
		}
		return set.Replace(increased)
	})
	if increaseErr != nil {
		s.toast(ctx, notify.LevelError, "failed to add to cart")
		return nil, mapError(increaseErr)
	}
	s.toast(ctx, notify.LevelSuccess, fmt.Sprintf("%s added to cart", displayName(entry.Product)))
	return toProjection(state), nil
}

// Remove deletes the product line. Removing an absent product is a no-op.
func (s *Service) Remove(ctx context.Context, productID string) (*ports.CartProjection, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, mapError(domain.ErrMissingProductID)
	}
	var removed domain.Entry
	state, changed := s.manager.Mutate(ctx, collection.ActionRemove, productID, func(set *collection.Set[domain.Entry]) bool {
		removed, _ = set.Get(productID)
		return set.Remove(productID)
	})
	if changed {
		s.toast(ctx, notify.LevelInfo, fmt.Sprintf("%s removed from cart", displayName(removed.Product)))
	}
	return toProjection(state), nil
}

// UpdateQuantity sets the quantity of a present product. A quantity below one
// removes the product; an absent product is left alone.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (*ports.CartProjection, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, mapError(domain.ErrMissingProductID)
	}
	if quantity < 1 {
		return s.Remove(ctx, productID)
	}
	if quantity > domain.MaxQuantity {
		return nil, mapError(domain.ErrQuantityLimit)
	}
	state, _ := s.manager.Mutate(ctx, collection.ActionUpdate, productID, func(set *collection.Set[domain.Entry]) bool {
		existing, ok := set.Get(productID)
		if !ok || existing.Quantity == quantity {
			return false
		}
		return set.Replace(existing.WithQuantity(quantity))
	})
	return toProjection(state), nil
}

// Clear empties the cart and purges its durable key.
func (s *Service) Clear(ctx context.Context) (*ports.CartProjection, error) {
	state, _ := s.manager.Clear(ctx)
	return toProjection(state), nil
}

func (s *Service) TogglePanel(ctx context.Context) (*ports.CartProjection, error) {
	return toProjection(s.manager.TogglePanel(ctx)), nil
}

func (s *Service) ClosePanel(ctx context.Context) (*ports.CartProjection, error) {
	state, _ := s.manager.ClosePanel(ctx)
	return toProjection(state), nil
}

// ContinueShopping closes the panel and navigates to the store. A navigation
// failure is logged; the panel stays closed.
func (s *Service) ContinueShopping(ctx context.Context) (string, *ports.CartProjection, error) {
	state, _ := s.manager.ClosePanel(ctx)
	if err := s.navigator.Navigate(ctx, StorePath); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "navigation failed",
			slog.String("location", StorePath),
			slog.String("error", err.Error()),
		)
	}
	return StorePath, toProjection(state), nil
}

func (s *Service) Snapshot(_ context.Context) (*ports.CartProjection, error) {
	return toProjection(s.manager.Snapshot()), nil
}

// Subscribe delivers every committed change to fn in commit order.
func (s *Service) Subscribe(fn func(ctx context.Context, event ports.Event)) func() {
	if fn == nil {
		return func() {}
	}
	return s.manager.Subscribe(func(ctx context.Context, change collection.Change[domain.Entry]) {
		fn(ctx, ports.Event{Action: change.Action, ProductID: change.ID, Cart: toProjection(change.State)})
	})
}

func (s *Service) toast(ctx context.Context, level notify.Level, message string) {
	if _, err := s.notifier.Notify(ctx, level, message); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "cart notification failed",
			slog.String("message", message),
			slog.String("error", err.Error()),
		)
	}
}

func toProjection(state collection.State[domain.Entry]) *ports.CartProjection {
	return projection.New(domain.Cart{Entries: state.Items, IsOpen: state.IsOpen}, state.Metadata)
}

func displayName(p domain.Product) string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.ID
}
