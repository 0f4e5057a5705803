// Package rediskv stores collection documents in Redis.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

var _ kv.Store = (*Store)(nil)

// Store implements kv.Store on a Redis client. Caller owns the client lifecycle.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// Option configures the Redis store.
type Option func(*Store)

// WithTTL expires keys after ttl of inactivity. Zero keeps keys forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewStore(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string, db int) (*redis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis address is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Del(ctx, key).Err()
}

func (s *Store) Backend() string { return "redis" }

func (s *Store) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis kv store not configured")
	}
	return nil
}
