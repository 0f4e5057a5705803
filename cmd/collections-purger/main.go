package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv/gormkv"
	platformpostgres "github.com/Apurer/go-petfoster-collections/internal/platform/postgres"
)

// DefaultVisitorTTL is how long an untouched cart or favorites row survives.
const DefaultVisitorTTL = 30 * 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOrWarn(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge collections")
	}

	ttl := visitorTTLFromEnv()
	purged, err := gormkv.NewStore(db).PurgeStale(ctx, time.Now().Add(-ttl))
	if err != nil {
		log.Fatalf("failed to purge stale collections: %v", err)
	}
	logger.Info("collection purge completed", slog.Int64("rows", purged), slog.Duration("ttl", ttl))
}

func visitorTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("VISITOR_TTL_HOURS"))
	if raw == "" {
		return DefaultVisitorTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return DefaultVisitorTTL
	}
	return time.Duration(hours) * time.Hour
}
