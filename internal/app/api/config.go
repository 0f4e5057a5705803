package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	fosterserver "github.com/Apurer/go-petfoster-collections/go"
	"github.com/Apurer/go-petfoster-collections/internal/shared/notify"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendMemory    = "memory"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port    string
	Backend string

	PostgresDSN string
	SQLitePath  string

	RedisAddr string
	RedisDB   int
	RedisTTL  time.Duration

	FirestoreProjectID   string
	FirestoreCollection  string
	FirestoreCredentials string

	ToastTTL           time.Duration
	VisitorHeader      string
	VisitorIdleMinutes int
	AutoMigrate        bool
	Debug              bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		Backend:              strings.ToLower(envDefault("STORAGE_BACKEND", "")),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLitePath:           envDefault("SQLITE_PATH", "collections.db"),
		RedisAddr:            strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		FirestoreProjectID:   strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID")),
		FirestoreCollection:  strings.TrimSpace(os.Getenv("FIRESTORE_COLLECTION")),
		FirestoreCredentials: strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		ToastTTL:             notify.DefaultTTL,
		VisitorHeader:        envDefault("VISITOR_HEADER", fosterserver.DefaultVisitorHeader),
		VisitorIdleMinutes:   30,
		AutoMigrate:          !isFalsy(os.Getenv("AUTO_MIGRATE")),
		Debug:                isTruthy(os.Getenv("GIN_DEBUG")),
	}
	if cfg.Backend == "" {
		cfg.Backend = inferBackend(cfg)
	}
	switch cfg.Backend {
	case BackendMemory, BackendPostgres, BackendSQLite, BackendRedis, BackendFirestore:
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND %q is not one of memory, postgres, sqlite, redis, firestore", cfg.Backend)
	}

	var err error
	if cfg.RedisDB, err = nonNegativeInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	hours, err := nonNegativeInt("REDIS_TTL_HOURS", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.RedisTTL = time.Duration(hours) * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOAST_TTL_MS")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("TOAST_TTL_MS must be a positive integer")
		}
		cfg.ToastTTL = time.Duration(ms) * time.Millisecond
	}
	if raw := strings.TrimSpace(os.Getenv("VISITOR_IDLE_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("VISITOR_IDLE_MINUTES must be a positive integer")
		}
		cfg.VisitorIdleMinutes = minutes
	}
	return cfg, nil
}

// VisitorIdle is how long a mounted visitor may stay unused before eviction.
func (c Config) VisitorIdle() time.Duration {
	return time.Duration(c.VisitorIdleMinutes) * time.Minute
}

// inferBackend keeps the zero-config behaviour: a configured DSN or address
// selects its backend, otherwise collections live in memory.
func inferBackend(cfg Config) string {
	switch {
	case cfg.PostgresDSN != "":
		return BackendPostgres
	case cfg.RedisAddr != "":
		return BackendRedis
	case cfg.FirestoreProjectID != "":
		return BackendFirestore
	default:
		return BackendMemory
	}
}

func nonNegativeInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func isFalsy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "0" || value == "false" || value == "no"
}
