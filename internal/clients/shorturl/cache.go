package shorturl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"newsletter-server/internal/observability"
)

const (
	cacheKeyPrefix = "shorturl:"
	cacheTTL       = 30 * 24 * time.Hour
)

// Cache stores long URL -> short URL answers.
type Cache interface {
	Get(ctx context.Context, longURL string) (string, bool, error)
	Set(ctx context.Context, longURL, shortURL string) error
}

// RedisCache keeps mappings in redis so they survive restarts and are shared
// between processes.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(longURL string) string {
	sum := sha256.Sum256([]byte(longURL))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, longURL string) (string, bool, error) {
	v, err := c.client.Get(ctx, cacheKey(longURL)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, longURL, shortURL string) error {
	return c.client.Set(ctx, cacheKey(longURL), shortURL, cacheTTL).Err()
}

// MemoryCache is the in-process fallback when redis is disabled.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, longURL string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[longURL]
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, longURL, shortURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[longURL] = shortURL
	return nil
}

// CachedShortener decorates a Shortener with a cache. Cache errors are logged
// and treated as misses.
type CachedShortener struct {
	next    Shortener
	cache   Cache
	results *prometheus.CounterVec
	logger  *observability.Logger
}

// NewCachedShortener wraps next. results may be nil.
func NewCachedShortener(next Shortener, cache Cache, results *prometheus.CounterVec, logger *observability.Logger) *CachedShortener {
	return &CachedShortener{
		next:    next,
		cache:   cache,
		results: results,
		logger:  logger,
	}
}

func (s *CachedShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "url", Value: longURL})

	short, ok, err := s.cache.Get(ctx, longURL)
	if err != nil {
		s.logger.WarnWithError(ctx, "short url cache read failed", err)
	}
	if ok {
		s.record("hit")
		return short, nil
	}

	short, err = s.next.Shorten(ctx, longURL)
	if err != nil {
		s.record("error")
		return "", err
	}
	s.record("miss")

	if err := s.cache.Set(ctx, longURL, short); err != nil {
		s.logger.WarnWithError(ctx, "short url cache write failed", err)
	}
	return short, nil
}

// GetClicks is never cached.
func (s *CachedShortener) GetClicks(ctx context.Context, shortURL string) (uint64, error) {
	return s.next.GetClicks(ctx, shortURL)
}

func (s *CachedShortener) record(result string) {
	if s.results != nil {
		s.results.WithLabelValues(result).Inc()
	}
}
