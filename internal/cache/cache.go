// Package cache provides a small TTL key-value store used for
// short-lived markers such as the verification resend window.
package cache

import (
	"context"
	"time"

	"github.com/gymsuite/backend/internal/config"
	"github.com/gymsuite/backend/pkg/logger"
)

// Store is a TTL key-value store.
type Store interface {
	// Set stores a value under key for the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value and whether the key exists and has not expired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases underlying resources.
	Close() error
}

// New returns a Redis-backed store when Redis is enabled and reachable,
// otherwise an in-process store.
func New(cfg *config.RedisConfig) Store {
	if cfg != nil && cfg.Enabled {
		store, err := NewRedisStore(cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
			return NewMemoryStore()
		}
		logger.Infof("cache: redis store initialized at %s", cfg.Addr)
		return store
	}
	return NewMemoryStore()
}
