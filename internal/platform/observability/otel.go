// Package observability wires slog, tracing and metrics for the collection processes.
package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	// MetricReader collects on demand; nothing pushes metrics out of process.
	MetricReader sdkmetric.Reader
}

type settings struct {
	logOutput    io.Writer
	logLevel     slog.Level
	spanExporter sdktrace.SpanExporter
	setGlobals   bool
	environment  string
}

// Option customises Init.
type Option func(*settings)

// WithLogOutput redirects the JSON log stream (stdout by default).
func WithLogOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.logOutput = w
		}
	}
}

// WithSpanExporter bypasses the OTLP/stdout exporter selection.
func WithSpanExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *settings) { s.spanExporter = exporter }
}

// WithoutGlobals keeps the providers out of the otel globals and slog default.
func WithoutGlobals() Option {
	return func(s *settings) { s.setGlobals = false }
}

// Init configures slog, OpenTelemetry tracing, and meters for the process.
// The returned shutdown flushes pending spans and must run on exit.
func Init(ctx context.Context, serviceName string, opts ...Option) (*Instruments, func(context.Context) error, error) {
	cfg := settings{
		logOutput:   os.Stdout,
		logLevel:    ParseLevel(os.Getenv("LOG_LEVEL")),
		setGlobals:  true,
		environment: envOrDefault("ENVIRONMENT", "local"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := slog.New(slog.NewJSONHandler(cfg.logOutput, &slog.HandlerOptions{Level: cfg.logLevel, AddSource: true})).
		With(slog.String("service", serviceName))

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("deployment.environment", cfg.environment),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	spanExporter := cfg.spanExporter
	if spanExporter == nil {
		if spanExporter, err = newSpanExporter(ctx, logger); err != nil {
			return nil, nil, err
		}
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExporter),
	)
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)

	if cfg.setGlobals {
		slog.SetDefault(logger)
		otel.SetTracerProvider(tracerProvider)
		otel.SetMeterProvider(meterProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	instruments := &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		MetricReader:   reader,
	}
	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	return instruments, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// ParseLevel maps LOG_LEVEL values onto slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newSpanExporter(ctx context.Context, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	if strings.EqualFold(os.Getenv("OTEL_TRACES_EXPORTER"), "console") {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	opts := []otlptracehttp.Option{}
	if endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
