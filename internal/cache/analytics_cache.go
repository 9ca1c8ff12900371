// internal/cache/analytics_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/udyamhq/udyam-backend/internal/config"
)

const (
	analyticsKeyPrefix     = "analytics"
	analyticsScanBatchSize = 100

	defaultCacheTTL = time.Minute
	dialTimeout     = 5 * time.Second
)

// AnalyticsCache stores serialized analytics responses keyed by endpoint,
// tenant and query parameters. Computed responses are expensive but only
// valid briefly, so entries carry a short TTL and readers tolerate misses.
type AnalyticsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	InvalidateTenant(ctx context.Context, tenantID int64) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

// NewAnalyticsCache returns the redis-backed cache, or a no-op cache when
// caching is disabled. The connection is verified with a ping so a
// misconfigured redis fails at startup, not on the first request.
func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.AnalyticsTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &redisAnalyticsCache{client: client, ttl: ttl}, nil
}

// clientOptions prefers a full redis URL and falls back to host/port parts.
func clientOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// NewNoopAnalyticsCache returns a cache that never hits.
func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

func (c *redisAnalyticsCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateTenant drops every cached response for one tenant, leaving
// other tenants' entries alone.
func (c *redisAnalyticsCache) InvalidateTenant(ctx context.Context, tenantID int64) error {
	pattern := fmt.Sprintf("%s:%d:*", analyticsKeyPrefix, tenantID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, analyticsScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (n *noopAnalyticsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) Set(ctx context.Context, key string, payload []byte) error {
	return nil
}

func (n *noopAnalyticsCache) InvalidateTenant(ctx context.Context, tenantID int64) error {
	return nil
}

// Key builds a cache key for one endpoint response. Parameters are
// normalized and sorted before hashing so equivalent requests share an
// entry.
func Key(tenantID int64, endpoint string, params map[string]string) string {
	return fmt.Sprintf("%s:%d:%s:%s", analyticsKeyPrefix, tenantID, endpoint, paramsHash(params))
}

func paramsHash(params map[string]string) string {
	if len(params) == 0 {
		return "default"
	}

	parts := make([]string, 0, len(params))
	for k, v := range params {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		parts = append(parts, k+"="+v)
	}
	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
