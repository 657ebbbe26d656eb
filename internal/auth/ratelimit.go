package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "wapptv:login_attempts:"

// RateLimiter throttles failed logins per client IP with a Redis counter
// that expires after the configured window.
type RateLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRateLimiter creates a limiter allowing maxAttempts failed logins per IP
// within the window.
func NewRateLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

// RateLimitResult holds the result of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	RetryAt   time.Time
}

// Check reports whether the given IP may attempt a login.
func (rl *RateLimiter) Check(ctx context.Context, ip string) (*RateLimitResult, error) {
	key := rateLimitKeyPrefix + ip

	count, err := rl.rdb.Get(ctx, key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	if count >= rl.maxAttempts {
		ttl, err := rl.rdb.TTL(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		return &RateLimitResult{RetryAt: time.Now().Add(ttl)}, nil
	}

	return &RateLimitResult{Allowed: true, Remaining: rl.maxAttempts - count}, nil
}

// Record counts one failed login attempt for the IP. The window starts on
// the first failure.
func (rl *RateLimiter) Record(ctx context.Context, ip string) error {
	key := rateLimitKeyPrefix + ip

	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if incr.Val() == 1 {
		return rl.rdb.Expire(ctx, key, rl.window).Err()
	}
	return nil
}

// Reset clears the counter after a successful login.
func (rl *RateLimiter) Reset(ctx context.Context, ip string) error {
	return rl.rdb.Del(ctx, rateLimitKeyPrefix+ip).Err()
}
