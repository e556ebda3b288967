// Package ratelimit implements a fixed-window, per-IP rate limiter backed by
// Redis, keyed by request purpose so limits for different endpoints do not
// interfere.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ipLimit requests per ipWindow, per IP and purpose
	ipLimit  = 10
	ipWindow = 15 * time.Minute
)

// Limiter tracks request counts in Redis
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

func ipKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:ip:%s:%s", purpose, ip)
}

// CheckIPRateLimitWithPurpose reports whether the IP has exceeded the request
// limit for the given purpose within the current window.
func (l *Limiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	count, err := l.client.Get(ctx, ipKey(ip, purpose)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get rate limit count: %w", err)
	}

	return count >= ipLimit, nil
}

// RecordIPRequestWithPurpose increments the request counter for the IP and
// purpose, starting the window on the first request. The increment and the
// expiry travel in one pipeline, so the counter can never outlive its window.
func (l *Limiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	key := ipKey(ip, purpose)

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ipWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record rate limit request: %w", err)
	}

	return nil
}
