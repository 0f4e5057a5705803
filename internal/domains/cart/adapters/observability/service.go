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

	"github.com/Apurer/go-petfoster-collections/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-petfoster-collections/internal/domains/cart/adapters/observability/service"

// Service decorates the cart port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
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
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

// Hydrate seeds the cart from storage.
func (s *Service) Hydrate(ctx context.Context) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.Hydrate")
	defer span.End()

	result, err := s.inner.Hydrate(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to hydrate cart")
	}
	s.annotate(span, result)
	s.logInfo(ctx, "cart hydrated", slog.Int("cart.entries", len(result.Entity.Entries)))
	return result, nil
}

// Add puts a product into the cart.
func (s *Service) Add(ctx context.Context, input ports.AddItemInput) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.Add",
		attribute.String("product.id", input.ProductID),
		attribute.Int("cart.quantity.requested", input.Quantity),
	)
	defer span.End()

	s.logInfo(ctx, "adding product to cart", slog.String("product.id", input.ProductID), slog.Int("quantity", input.Quantity))
	result, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product to cart", slog.String("product.id", input.ProductID))
	}
	s.metrics.recordAdded(ctx)
	s.annotate(span, result)
	s.logInfo(ctx, "product added to cart", slog.String("product.id", input.ProductID), slog.Int("cart.total_items", result.Entity.TotalItems()))
	return result, nil
}

// Remove deletes a product line.
func (s *Service) Remove(ctx context.Context, productID string) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.Remove", attribute.String("product.id", productID))
	defer span.End()

	s.logInfo(ctx, "removing product from cart", slog.String("product.id", productID))
	result, err := s.inner.Remove(ctx, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove product from cart", slog.String("product.id", productID))
	}
	s.metrics.recordRemoved(ctx)
	s.annotate(span, result)
	return result, nil
}

// UpdateQuantity changes the units of a product line.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.UpdateQuantity",
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity.requested", quantity),
	)
	defer span.End()

	s.logInfo(ctx, "updating cart quantity", slog.String("product.id", productID), slog.Int("quantity", quantity))
	result, err := s.inner.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart quantity", slog.String("product.id", productID))
	}
	s.metrics.recordUpdated(ctx)
	s.annotate(span, result)
	return result, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.Clear")
	defer span.End()

	s.logInfo(ctx, "clearing cart")
	result, err := s.inner.Clear(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.metrics.recordCleared(ctx)
	return result, nil
}

func (s *Service) TogglePanel(ctx context.Context) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.TogglePanel")
	defer span.End()

	result, err := s.inner.TogglePanel(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle cart panel")
	}
	s.annotate(span, result)
	return result, nil
}

func (s *Service) ClosePanel(ctx context.Context) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.ClosePanel")
	defer span.End()

	result, err := s.inner.ClosePanel(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to close cart panel")
	}
	s.annotate(span, result)
	return result, nil
}

// ContinueShopping closes the panel and navigates away.
func (s *Service) ContinueShopping(ctx context.Context) (string, *ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.ContinueShopping")
	defer span.End()

	location, result, err := s.inner.ContinueShopping(ctx)
	if err != nil {
		return "", nil, s.handleError(ctx, span, err, "failed to continue shopping")
	}
	span.SetAttributes(attribute.String("navigation.location", location))
	s.logInfo(ctx, "continue shopping", slog.String("location", location))
	return location, result, nil
}

func (s *Service) Snapshot(ctx context.Context) (*ports.CartProjection, error) {
	ctx, span := s.startSpan(ctx, "Cart.Snapshot")
	defer span.End()

	result, err := s.inner.Snapshot(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to read cart")
	}
	s.annotate(span, result)
	return result, nil
}

func (s *Service) Subscribe(fn func(ctx context.Context, event ports.Event)) func() {
	return s.inner.Subscribe(fn)
}

func (s *Service) annotate(span trace.Span, result *ports.CartProjection) {
	if span == nil || result == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("cart.entries", len(result.Entity.Entries)),
		attribute.Int("cart.total_items", result.Entity.TotalItems()),
		attribute.Bool("cart.panel.open", result.Entity.IsOpen),
		attribute.Int64("cart.revision", int64(result.Metadata.Revision)),
	)
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	itemsRemoved metric.Int64Counter
	itemsUpdated metric.Int64Counter
	cleared      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Number of add-to-cart actions"))
	itemsRemoved, _ := m.Int64Counter("cart.service.items_removed", metric.WithDescription("Number of remove-from-cart actions"))
	itemsUpdated, _ := m.Int64Counter("cart.service.quantity_updates", metric.WithDescription("Number of quantity updates"))
	cleared, _ := m.Int64Counter("cart.service.cleared", metric.WithDescription("Number of cart clears"))
	return serviceMetrics{
		itemsAdded:   itemsAdded,
		itemsRemoved: itemsRemoved,
		itemsUpdated: itemsUpdated,
		cleared:      cleared,
	}
}

func (m serviceMetrics) recordAdded(ctx context.Context)   { addCounter(ctx, m.itemsAdded, 1) }
func (m serviceMetrics) recordRemoved(ctx context.Context) { addCounter(ctx, m.itemsRemoved, 1) }
func (m serviceMetrics) recordUpdated(ctx context.Context) { addCounter(ctx, m.itemsUpdated, 1) }
func (m serviceMetrics) recordCleared(ctx context.Context) { addCounter(ctx, m.cleared, 1) }

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
