package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/firestorekv"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/gormkv"
	kvmemory "github.com/Apurer/go-petfoster-collections/internal/platform/kv/memory"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/rediskv"
	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/sqlitekv"
	"github.com/Apurer/go-petfoster-collections/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-petfoster-collections/internal/platform/postgres"
)

// BuildStore opens the configured backend. Any failure is logged and the
// collections fall back to process memory so the API stays available.
func BuildStore(ctx context.Context, cfg Config, logger *slog.Logger) (kv.Store, func()) {
	store, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Warn("collection store unavailable, falling back to memory",
			slog.String("backend", cfg.Backend),
			slog.String("error", err.Error()),
		)
		return kvmemory.NewStore(), func() {}
	}
	logger.Info("collection store configured", slog.String("backend", kv.BackendName(store)))
	return store, cleanup
}

func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.Backend {
	case BackendMemory:
		return kvmemory.NewStore(), func() {}, nil
	case BackendPostgres:
		db, cleanup := platformpostgres.ConnectOrWarn(ctx, cfg.PostgresDSN, logger)
		if db == nil {
			return nil, nil, fmt.Errorf("postgres unavailable")
		}
		if cfg.AutoMigrate {
			if err := migrations.Run(db); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("migrate collection_entries: %w", err)
			}
		}
		return gormkv.NewStore(db), cleanup, nil
	case BackendSQLite:
		store, err := sqlitekv.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case BackendRedis:
		client, err := rediskv.Dial(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rediskv.NewStore(client, rediskv.WithTTL(cfg.RedisTTL)), func() { _ = client.Close() }, nil
	case BackendFirestore:
		client, err := firestorekv.Dial(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentials)
		if err != nil {
			return nil, nil, err
		}
		return firestorekv.NewStore(client, cfg.FirestoreCollection), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
