// Package ratelimit throttles the public forms per client IP.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"newsletter-server/internal/clients/redis"
	"newsletter-server/internal/observability"
)

const (
	window          = time.Minute
	keyPrefix       = "rl:"
	maxLocalBuckets = 10000
)

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service limits requests per key within a sliding one minute window. With
// redis it is shared across processes, otherwise each process keeps its own
// token buckets.
type Service struct {
	redis  *redis.Client
	limit  int
	logger *observability.Logger
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewService creates a limiter allowing limit requests per minute. rdb may
// be nil.
func NewService(rdb *redis.Client, limit int, logger *observability.Logger) *Service {
	if limit < 1 {
		limit = 1
	}
	return &Service{
		redis:   rdb,
		limit:   limit,
		logger:  logger,
		now:     time.Now,
		buckets: make(map[string]*rate.Limiter),
	}
}

// CheckRateLimit records one request for key. Redis failures let the request
// through.
func (s *Service) CheckRateLimit(ctx context.Context, key string) RateLimitResult {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_key", Value: key},
		observability.Field{Key: "rate_limit", Value: s.limit},
	)

	if s.redis.IsEnabled() {
		result, err := s.checkRateLimitRedis(ctx, key)
		if err != nil {
			s.logger.WarnWithError(ctx, "redis rate limit check failed, allowing request", err)
			return RateLimitResult{
				Allowed:   true,
				Limit:     s.limit,
				Remaining: s.limit,
				ResetAt:   s.now().Add(window),
			}
		}
		return result
	}

	return s.checkRateLimitLocal(key)
}

// checkRateLimitRedis keeps one sorted set per key whose members are request
// timestamps in milliseconds.
func (s *Service) checkRateLimitRedis(ctx context.Context, key string) (RateLimitResult, error) {
	client := s.redis.GetClient()
	redisKey := keyPrefix + key
	now := s.now()
	windowStartMs := now.Add(-window).UnixMilli()

	var card *goredis.IntCmd
	_, err := client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStartMs, 10))
		card = pipe.ZCard(ctx, redisKey)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to count requests: %w", err)
	}
	count := int(card.Val())

	if count >= s.limit {
		resetAt := now.Add(window)
		oldest, err := client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			resetAt = time.UnixMilli(int64(oldest[0].Score)).Add(window)
		}
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return RateLimitResult{
			Allowed:      false,
			Limit:        s.limit,
			Remaining:    0,
			ResetAt:      resetAt,
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	// Members must be unique or requests in the same millisecond collapse.
	_, err = client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZAdd(ctx, redisKey, goredis.Z{
			Score:  float64(now.UnixMilli()),
			Member: strconv.FormatInt(now.UnixMilli(), 10) + "-" + uuid.NewString(),
		})
		pipe.Expire(ctx, redisKey, 2*window)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to add request: %w", err)
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - count - 1,
		ResetAt:   now.Add(window),
	}, nil
}

func (s *Service) checkRateLimitLocal(key string) RateLimitResult {
	now := s.now()
	lim := s.bucket(key, now)

	if lim.AllowN(now, 1) {
		return RateLimitResult{
			Allowed:   true,
			Limit:     s.limit,
			Remaining: int(lim.TokensAt(now)),
			ResetAt:   now.Add(window),
		}
	}

	r := lim.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return RateLimitResult{
		Allowed:      false,
		Limit:        s.limit,
		Remaining:    0,
		ResetAt:      now.Add(delay),
		RetryAfterMs: int(delay.Milliseconds()),
	}
}

func (s *Service) bucket(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lim, ok := s.buckets[key]; ok {
		return lim
	}
	if len(s.buckets) >= maxLocalBuckets {
		// Full buckets carry no state worth keeping.
		for k, lim := range s.buckets {
			if lim.TokensAt(now) >= float64(s.limit) {
				delete(s.buckets, k)
			}
		}
	}
	lim := rate.NewLimiter(rate.Every(window/time.Duration(s.limit)), s.limit)
	s.buckets[key] = lim
	return lim
}
