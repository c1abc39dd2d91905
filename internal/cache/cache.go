// Package cache keeps computed dashboard views in Redis.
//
// Every method is safe on a nil *Cache, which behaves as an always-missing
// cache. Redis errors are logged and reported as misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kbradar/internal/logger"
	"kbradar/internal/metrics"
	"kbradar/internal/util"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kbradar:v1"

// client is the subset of *redis.Client the cache uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type Cache struct {
	rdb client
	ttl time.Duration
	log *logger.Logger
}

// New connects to url. An empty url disables caching and returns nil.
func New(url string, ttl time.Duration, log *logger.Logger) (*Cache, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewWithClient(redis.NewClient(opts), ttl, log), nil
}

func NewWithClient(rdb client, ttl time.Duration, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

// Key builds "kbradar:v1:<view>:<parts...>". Parts keep their case, since
// IDs match case-sensitively; callers fold parts that do not. Parts that are
// not plain identifiers are replaced by a short hash.
func Key(view string, parts ...string) string {
	b := strings.Builder{}
	b.WriteString(keyPrefix)
	b.WriteByte(':')
	b.WriteString(view)
	for _, p := range parts {
		b.WriteByte(':')
		p = strings.TrimSpace(p)
		if isPlain(p) {
			b.WriteString(p)
		} else {
			b.WriteString("h" + util.ShortHash(p))
		}
	}
	return b.String()
}

func isPlain(s string) bool {
	if len(s) > 64 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// Get decodes the value at key into dest and reports whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("cache get failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("cache decode failed", "key", key, "error", err)
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

// Set stores v under key with the configured TTL and reports success.
func (c *Cache) Set(ctx context.Context, key string, v any) bool {
	if c == nil {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", "key", key, "error", err)
		return false
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return util.ErrCacheDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
