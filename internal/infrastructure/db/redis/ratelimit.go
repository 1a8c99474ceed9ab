package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLimit = 10

// AttemptLimiter counts credential attempts per client key in Redis.
// Key format: login_attempts:<key>, expiring after the window.
type AttemptLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewAttemptLimiter creates an AttemptLimiter allowing limit attempts per
// window. If limit <= 0, defaultLimit is used.
func NewAttemptLimiter(client *redis.Client, limit int, window time.Duration) *AttemptLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &AttemptLimiter{client: client, limit: limit, window: window}
}

// Allow increments the counter for key and reports whether the client is
// still within budget. The window starts at the first attempt.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *AttemptLimiter) key(key string) string {
	return "login_attempts:" + key
}
