package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
	"github.com/Apurer/go-petfoster-collections/internal/shared/collection"
	"github.com/Apurer/go-petfoster-collections/internal/shared/navigation"
	"github.com/Apurer/go-petfoster-collections/internal/shared/notify"
	"github.com/Apurer/go-petfoster-collections/internal/shared/projection"
)

// BrowsePath is where ContinueBrowsing sends the visitor.
const BrowsePath = "/foster-services"

var _ ports.Service = (*Service)(nil)

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

// Service orchestrates the favorites use cases. Membership is boolean:
// favoriting a listing twice keeps a single entry.
type Service struct {
	manager   *collection.Manager[domain.FosterService]
	notifier  notify.Notifier
	navigator navigation.Navigator
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(persist collection.Persister[domain.FosterService], opts ...Option) (*Service, error) {
	s := &Service{
		notifier:  notify.Nop{},
		navigator: navigation.Logger{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	managerOpts := []collection.Option[domain.FosterService]{
		collection.WithName[domain.FosterService]("favorites"),
		collection.WithLogger[domain.FosterService](s.logger),
		collection.WithFilter(domain.FosterService.Valid),
	}
	if s.now != nil {
		managerOpts = append(managerOpts, collection.WithClock[domain.FosterService](s.now))
	}
	manager, err := collection.NewManager(domain.ServiceKey, persist, managerOpts...)
	if err != nil {
		return nil, fmt.Errorf("favorites: %w", err)
	}
	s.manager = manager
	return s, nil
}

func (s *Service) Hydrate(ctx context.Context) (*ports.FavoritesProjection, error) {
	return toProjection(s.manager.Hydrate(ctx)), nil
}

// Add favorites the listing. Adding a listing that is already a favorite is a no-op.
func (s *Service) Add(ctx context.Context, input ports.AddInput) (*ports.FavoritesProjection, error) {
	service, err := fromInput(input)
	if err != nil {
		s.toast(ctx, notify.LevelError, "failed to add to favorites")
		return nil, mapError(err)
	}
	state, changed := s.manager.Mutate(ctx, collection.ActionAdd, service.ID, func(set *collection.Set[domain.FosterService]) bool {
		return set.Append(service)
	})
	if changed {
		s.toast(ctx, notify.LevelSuccess, fmt.Sprintf("%s added to favorites", displayName(service)))
	}
	return toProjection(state), nil
}

// Remove unfavorites the listing. Removing an absent listing is a no-op.
func (s *Service) Remove(ctx context.Context, serviceID string) (*ports.FavoritesProjection, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, mapError(domain.ErrMissingServiceID)
	}
	var removed domain.FosterService
	state, changed := s.manager.Mutate(ctx, collection.ActionRemove, serviceID, func(set *collection.Set[domain.FosterService]) bool {
		removed, _ = set.Get(serviceID)
		return set.Remove(serviceID)
	})
	if changed {
		s.toast(ctx, notify.LevelInfo, fmt.Sprintf("%s removed from favorites", displayName(removed)))
	}
	return toProjection(state), nil
}

// Toggle flips membership of the listing in one atomic step.
func (s *Service) Toggle(ctx context.Context, input ports.AddInput) (bool, *ports.FavoritesProjection, error) {
	service, err := fromInput(input)
	if err != nil {
		s.toast(ctx, notify.LevelError, "failed to update favorites")
		return false, nil, mapError(err)
	}
	member := false
	action := collection.ActionAdd
	if s.manager.Contains(service.ID) {
		action = collection.ActionRemove
	}
	state, _ := s.manager.Mutate(ctx, action, service.ID, func(set *collection.Set[domain.FosterService]) bool {
		if set.Remove(service.ID) {
			return true
		}
		member = true
		return set.Append(service)
	})
	if member {
		s.toast(ctx, notify.LevelSuccess, fmt.Sprintf("%s added to favorites", displayName(service)))
	} else {
		s.toast(ctx, notify.LevelInfo, fmt.Sprintf("%s removed from favorites", displayName(service)))
	}
	return member, toProjection(state), nil
}

// IsMember reports whether the listing is a favorite.
func (s *Service) IsMember(_ context.Context, serviceID string) (bool, error) {
	return s.manager.Contains(strings.TrimSpace(serviceID)), nil
}

func (s *Service) Get(_ context.Context, serviceID string) (domain.FosterService, error) {
	service, ok := s.manager.Get(strings.TrimSpace(serviceID))
	if !ok {
		return domain.FosterService{}, ports.ErrNotFound
	}
	return service.Clone(), nil
}

// Clear empties the favorites and purges their durable key.
func (s *Service) Clear(ctx context.Context) (*ports.FavoritesProjection, error) {
	state, _ := s.manager.Clear(ctx)
	return toProjection(state), nil
}

func (s *Service) TogglePanel(ctx context.Context) (*ports.FavoritesProjection, error) {
	return toProjection(s.manager.TogglePanel(ctx)), nil
}

func (s *Service) ClosePanel(ctx context.Context) (*ports.FavoritesProjection, error) {
	state, _ := s.manager.ClosePanel(ctx)
	return toProjection(state), nil
}

// ContinueBrowsing closes the panel and navigates to the foster service listings.
func (s *Service) ContinueBrowsing(ctx context.Context) (string, *ports.FavoritesProjection, error) {
	state, _ := s.manager.ClosePanel(ctx)
	if err := s.navigator.Navigate(ctx, BrowsePath); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "navigation failed",
			slog.String("location", BrowsePath),
			slog.String("error", err.Error()),
		)
	}
	return BrowsePath, toProjection(state), nil
}

func (s *Service) Snapshot(_ context.Context) (*ports.FavoritesProjection, error) {
	return toProjection(s.manager.Snapshot()), nil
}

func (s *Service) Subscribe(fn func(ctx context.Context, event ports.Event)) func() {
	if fn == nil {
		return func() {}
	}
	return s.manager.Subscribe(func(ctx context.Context, change collection.Change[domain.FosterService]) {
		fn(ctx, ports.Event{Action: change.Action, ServiceID: change.ID, Favorites: toProjection(change.State)})
	})
}

func (s *Service) toast(ctx context.Context, level notify.Level, message string) {
	if _, err := s.notifier.Notify(ctx, level, message); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "favorites notification failed",
			slog.String("message", message),
			slog.String("error", err.Error()),
		)
	}
}

func fromInput(input ports.AddInput) (domain.FosterService, error) {
	service := domain.FosterService{
		ID:           strings.TrimSpace(input.ServiceID),
		Title:        input.Title,
		ProviderName: input.ProviderName,
		Location:     input.Location,
		ImageURL:     input.ImageURL,
		Species:      input.Species,
		NightlyRate:  input.NightlyRate,
		Rating:       input.Rating,
	}.Clone()
	if err := service.Validate(); err != nil {
		return domain.FosterService{}, err
	}
	return service, nil
}

func toProjection(state collection.State[domain.FosterService]) *ports.FavoritesProjection {
	return projection.New(domain.Favorites{Services: state.Items, IsOpen: state.IsOpen}, state.Metadata)
}

func displayName(f domain.FosterService) string {
	if strings.TrimSpace(f.Title) != "" {
		return f.Title
	}
	return f.ID
}
