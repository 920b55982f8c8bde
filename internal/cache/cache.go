// Package cache provides a time-boxed key-value cache used to avoid
// redundant external AI lookups. Entries carry their write timestamp and
// are treated as absent once older than the TTL. Store failures are logged
// and surface as cache misses; the cache is a pure optimization and never
// fails a workflow.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	// KeyPrefix namespaces every cache key in the backing store.
	KeyPrefix = "storm-notes-app-"
	// DefaultTTL is the lifetime of a cache entry.
	DefaultTTL = 10 * time.Minute
)

// ErrNotFound is returned by stores when a key is absent.
var ErrNotFound = errors.New("cache: key not found")

// Store is the raw backing storage for cache entries.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Entry wraps cached data with its write timestamp.
type Entry struct {
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	Data      json.RawMessage `json:"data"`
}

// Cache is a TTL cache over a Store. Keys are used verbatim (plus the
// fixed prefix); normalization is the caller's responsibility.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// New creates a cache over store with the given TTL. A zero ttl uses
// DefaultTTL.
func New(store Store, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Set stores data under key with the current timestamp. Failures are
// logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("cache_marshal_failed", zap.String("key", key), zap.Error(err))
		return
	}

	entry := Entry{
		Timestamp: c.now().UnixMilli(),
		Data:      raw,
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("cache_marshal_failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, KeyPrefix+key, string(encoded)); err != nil {
		c.logger.Warn("cache_write_failed", zap.String("key", key), zap.Error(err))
	}
}

// Get loads the entry under key into out and reports whether a fresh entry
// was found. Stale entries are evicted and reported as misses, as are
// store errors and undecodable entries.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	stored, err := c.store.Get(ctx, KeyPrefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cache_read_failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(stored), &entry); err != nil {
		c.logger.Warn("cache_decode_failed", zap.String("key", key), zap.Error(err))
		c.evict(ctx, key)
		return false
	}

	age := c.now().UnixMilli() - entry.Timestamp
	if age > c.ttl.Milliseconds() {
		c.evict(ctx, key)
		return false
	}

	if err := json.Unmarshal(entry.Data, out); err != nil {
		c.logger.Warn("cache_decode_failed", zap.String("key", key), zap.Error(err))
		c.evict(ctx, key)
		return false
	}
	return true
}

func (c *Cache) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, KeyPrefix+key); err != nil {
		c.logger.Warn("cache_evict_failed", zap.String("key", key), zap.Error(err))
	}
}
