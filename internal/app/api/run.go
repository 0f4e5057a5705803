package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	fosterserver "github.com/Apurer/go-petfoster-collections/go"
	"github.com/Apurer/go-petfoster-collections/internal/app/session"
	platformobservability "github.com/Apurer/go-petfoster-collections/internal/platform/observability"
	"github.com/Apurer/go-petfoster-collections/internal/shared/navigation"
)

const serviceName = "petfoster-collections"

// Run boots the collections HTTP API and blocks until ctx is cancelled or
// the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, cleanupStore := BuildStore(ctx, cfg, logger)
	defer cleanupStore()

	registry, err := session.NewRegistry(session.Deps{
		Store:     store,
		Logger:    logger,
		Tracer:    instruments.Tracer("internal.collections.application"),
		Meter:     instruments.Meter("internal.collections.application"),
		Navigator: navigation.Logger{Log: logger},
		ToastTTL:  cfg.ToastTTL,
	})
	if err != nil {
		return err
	}
	defer registry.Close()

	router := NewRouter(cfg, registry, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go evictIdleVisitors(ctx, registry, cfg.VisitorIdle(), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("collections API listening", slog.String("addr", srv.Addr), slog.String("backend", cfg.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("collections API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down collections API")
	return srv.Shutdown(shutdownCtx)
}

// NewRouter assembles the gin engine: tracing, panic recovery and the
// visitor session middleware in front of every collection route.
func NewRouter(cfg Config, sessions fosterserver.SessionSource, logger *slog.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		otelgin.Middleware(serviceName),
		fosterserver.Responder().Recovery(logger),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handlers := fosterserver.ApiHandleFunctions{
		CartAPI:      fosterserver.NewCartAPI(),
		FavoritesAPI: fosterserver.NewFavoritesAPI(),
		SessionAPI:   fosterserver.NewSessionAPI(),
	}
	return fosterserver.NewRouterWithGinEngine(router, handlers, fosterserver.VisitorSession(sessions, cfg.VisitorHeader))
}

func evictIdleVisitors(ctx context.Context, registry *session.Registry, idle time.Duration, logger *slog.Logger) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if dropped := registry.EvictIdle(now.Add(-idle)); dropped > 0 {
				logger.Info("evicted idle visitor sessions", slog.Int("count", dropped))
			}
		}
	}
}
