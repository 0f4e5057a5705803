// Package session owns the collections of a single visitor and the registry
// that mounts them on first use.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	cartobs "github.com/Apurer/go-petfoster-collections/internal/domains/cart/adapters/observability"
	cartkv "github.com/Apurer/go-petfoster-collections/internal/domains/cart/adapters/persistence/kvstore"
	cartapp "github.com/Apurer/go-petfoster-collections/internal/domains/cart/application"
	cartports "github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
	favobs "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/observability"
	favkv "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/persistence/kvstore"
	favapp "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/application"
	favports "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	"github.com/Apurer/go-petfoster-collections/internal/shared/navigation"
	"github.com/Apurer/go-petfoster-collections/internal/shared/notify"
)

var (
	ErrInvalidVisitor = errors.New("visitor id must be 1-128 characters without '/'")
	ErrNoStore        = errors.New("session store not configured")
)

// Deps are shared by every provider.
type Deps struct {
	Store     kv.Store
	Logger    *slog.Logger
	Tracer    trace.Tracer
	Meter     metric.Meter
	Navigator navigation.Navigator
	ToastTTL  time.Duration
	Now       func() time.Time
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// Provider is the scope a visitor's collections live in. Both collections are
// hydrated from storage when the provider is built.
type Provider struct {
	visitorID string
	cart      cartports.Service
	favorites favports.Service
	toasts    *notify.Center
	mountedAt time.Time
}

// ValidateVisitorID checks id can be used as a storage scope.
func ValidateVisitorID(id string) error {
	if id == "" || len(id) > 128 || strings.Contains(id, "/") || strings.TrimSpace(id) != id {
		return ErrInvalidVisitor
	}
	return nil
}

// NewProvider mounts the collections of visitorID under "visitors/<id>/".
func NewProvider(ctx context.Context, visitorID string, deps Deps) (*Provider, error) {
	if err := ValidateVisitorID(visitorID); err != nil {
		return nil, err
	}
	if deps.Store == nil {
		return nil, ErrNoStore
	}
	logger := deps.logger().With(slog.String("visitor.id", visitorID))
	scope := kv.Namespace(deps.Store, "visitors/"+visitorID)
	ttl := deps.ToastTTL
	if ttl == 0 {
		ttl = notify.DefaultTTL
	}
	toasts := notify.NewCenter(notify.WithTTL(ttl))

	cartStore, err := cartkv.NewStore(scope, logger)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	cartSvc, err := cartapp.NewService(cartStore,
		cartapp.WithLogger(logger),
		cartapp.WithNotifier(toasts),
		cartapp.WithNavigator(deps.Navigator),
		cartapp.WithClock(deps.Now),
	)
	if err != nil {
		return nil, err
	}
	favStore, err := favkv.NewStore(scope, logger)
	if err != nil {
		return nil, fmt.Errorf("favorites store: %w", err)
	}
	favSvc, err := favapp.NewService(favStore,
		favapp.WithLogger(logger),
		favapp.WithNotifier(toasts),
		favapp.WithNavigator(deps.Navigator),
		favapp.WithClock(deps.Now),
	)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		visitorID: visitorID,
		cart:      cartobs.New(cartSvc, cartobs.WithLogger(logger), cartobs.WithTracer(deps.Tracer), cartobs.WithMeter(deps.Meter)),
		favorites: favobs.New(favSvc, favobs.WithLogger(logger), favobs.WithTracer(deps.Tracer), favobs.WithMeter(deps.Meter)),
		toasts:    toasts,
		mountedAt: time.Now(),
	}
	if _, err := p.cart.Hydrate(ctx); err != nil {
		return nil, err
	}
	if _, err := p.favorites.Hydrate(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) VisitorID() string { return p.visitorID }

func (p *Provider) Cart() cartports.Service { return p.cart }

func (p *Provider) Favorites() favports.Service { return p.favorites }

func (p *Provider) Toasts() *notify.Center { return p.toasts }

// Attach makes both collections reachable through cartports.FromContext and
// favports.FromContext.
func (p *Provider) Attach(ctx context.Context) context.Context {
	ctx = cartports.WithService(ctx, p.cart)
	return favports.WithService(ctx, p.favorites)
}

// Reset is the explicit app reset: both collections are cleared, their keys
// purged, panels closed and pending toasts dropped.
func (p *Provider) Reset(ctx context.Context) error {
	if _, err := p.cart.Clear(ctx); err != nil {
		return err
	}
	if _, err := p.cart.ClosePanel(ctx); err != nil {
		return err
	}
	if _, err := p.favorites.Clear(ctx); err != nil {
		return err
	}
	if _, err := p.favorites.ClosePanel(ctx); err != nil {
		return err
	}
	p.toasts.Close()
	return nil
}

// Close stops pending toast timers. Persisted collections are kept.
func (p *Provider) Close() {
	p.toasts.Close()
}
