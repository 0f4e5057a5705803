package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/domain"
	"github.com/Apurer/go-petfoster-collections/internal/domains/favorites/ports"
)

const tracerName = "github.com/Apurer/go-petfoster-collections/internal/domains/favorites/adapters/observability/service"

// Service decorates the favorites port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Hydrate(ctx context.Context) (*ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.Hydrate")
	defer span.End()

	result, err := s.inner.Hydrate(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to hydrate favorites")
	}
	s.annotate(span, result)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorites hydrated", slog.Int("favorites.count", result.Entity.TotalItems()))
	return result, nil
}

func (s *Service) Add(ctx context.Context, input ports.AddInput) (*ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.Add", trace.WithAttributes(attribute.String("foster_service.id", input.ServiceID)))
	defer span.End()

	result, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to add favorite", slog.String("foster_service.id", input.ServiceID))
	}
	s.metrics.add(ctx, s.metrics.added)
	s.annotate(span, result)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite added", slog.String("foster_service.id", input.ServiceID))
	return result, nil
}

func (s *Service) Remove(ctx context.Context, serviceID string) (*ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.Remove", trace.WithAttributes(attribute.String("foster_service.id", serviceID)))
	defer span.End()

	result, err := s.inner.Remove(ctx, serviceID)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to remove favorite", slog.String("foster_service.id", serviceID))
	}
	s.metrics.add(ctx, s.metrics.removed)
	s.annotate(span, result)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite removed", slog.String("foster_service.id", serviceID))
	return result, nil
}

func (s *Service) Toggle(ctx context.Context, input ports.AddInput) (bool, *ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.Toggle", trace.WithAttributes(attribute.String("foster_service.id", input.ServiceID)))
	defer span.End()

	member, result, err := s.inner.Toggle(ctx, input)
	if err != nil {
		return false, nil, s.fail(ctx, span, err, "failed to toggle favorite", slog.String("foster_service.id", input.ServiceID))
	}
	if member {
		s.metrics.add(ctx, s.metrics.added)
	} else {
		s.metrics.add(ctx, s.metrics.removed)
	}
	span.SetAttributes(attribute.Bool("favorites.member", member))
	s.annotate(span, result)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite toggled",
		slog.String("foster_service.id", input.ServiceID),
		slog.Bool("member", member),
	)
	return member, result, nil
}

func (s *Service) IsMember(ctx context.Context, serviceID string) (bool, error) {
	return s.inner.IsMember(ctx, serviceID)
}

func (s *Service) Get(ctx context.Context, serviceID string) (domain.FosterService, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.Get", trace.WithAttributes(attribute.String("foster_service.id", serviceID)))
	defer span.End()

	result, err := s.inner.Get(ctx, serviceID)
	if err != nil {
		return domain.FosterService{}, s.fail(ctx, span, err, "failed to load favorite", slog.String("foster_service.id", serviceID))
	}
	return result, nil
}

func (s *Service) Clear(ctx context.Context) (*ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.Clear")
	defer span.End()

	result, err := s.inner.Clear(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to clear favorites")
	}
	s.metrics.add(ctx, s.metrics.cleared)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorites cleared")
	return result, nil
}

func (s *Service) TogglePanel(ctx context.Context) (*ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.TogglePanel")
	defer span.End()

	result, err := s.inner.TogglePanel(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to toggle favorites panel")
	}
	s.annotate(span, result)
	return result, nil
}

func (s *Service) ClosePanel(ctx context.Context) (*ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.ClosePanel")
	defer span.End()

	result, err := s.inner.ClosePanel(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to close favorites panel")
	}
	s.annotate(span, result)
	return result, nil
}

func (s *Service) ContinueBrowsing(ctx context.Context) (string, *ports.FavoritesProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Favorites.ContinueBrowsing")
	defer span.End()

	location, result, err := s.inner.ContinueBrowsing(ctx)
	if err != nil {
		return "", nil, s.fail(ctx, span, err, "failed to continue browsing")
	}
	span.SetAttributes(attribute.String("navigation.location", location))
	return location, result, nil
}

func (s *Service) Snapshot(ctx context.Context) (*ports.FavoritesProjection, error) {
	return s.inner.Snapshot(ctx)
}

func (s *Service) Subscribe(fn func(ctx context.Context, event ports.Event)) func() {
	return s.inner.Subscribe(fn)
}

func (s *Service) annotate(span trace.Span, result *ports.FavoritesProjection) {
	if result == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("favorites.count", result.Entity.TotalItems()),
		attribute.Bool("favorites.panel.open", result.Entity.IsOpen),
	)
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	added   metric.Int64Counter
	removed metric.Int64Counter
	cleared metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("favorites.service.added", metric.WithDescription("Number of listings favorited"))
	removed, _ := m.Int64Counter("favorites.service.removed", metric.WithDescription("Number of listings unfavorited"))
	cleared, _ := m.Int64Counter("favorites.service.cleared", metric.WithDescription("Number of favorites clears"))
	return serviceMetrics{added: added, removed: removed, cleared: cleared}
}

func (serviceMetrics) add(ctx context.Context, counter metric.Int64Counter) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1)
}

var _ ports.Service = (*Service)(nil)
