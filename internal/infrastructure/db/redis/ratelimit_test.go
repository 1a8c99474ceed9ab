package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testLimiter(t *testing.T, limit int, window time.Duration) (*AttemptLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewAttemptLimiter(client, limit, window), mr
}

func TestAttemptLimiter_UnderBudget(t *testing.T) {
	limiter, _ := testLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
}

func TestAttemptLimiter_OverBudget(t *testing.T) {
	limiter, _ := testLimiter(t, 2, time.Minute)

	_, _ = limiter.Allow(context.Background(), "10.0.0.1")
	_, _ = limiter.Allow(context.Background(), "10.0.0.1")

	allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if allowed {
		t.Fatalf("third attempt should be blocked")
	}

	// Another client is unaffected.
	allowed, _ = limiter.Allow(context.Background(), "10.0.0.2")
	if !allowed {
		t.Fatalf("other client should be allowed")
	}
}

func TestAttemptLimiter_WindowResets(t *testing.T) {
	limiter, mr := testLimiter(t, 1, time.Minute)

	_, _ = limiter.Allow(context.Background(), "10.0.0.1")
	if allowed, _ := limiter.Allow(context.Background(), "10.0.0.1"); allowed {
		t.Fatalf("second attempt should be blocked")
	}

	mr.FastForward(2 * time.Minute)

	allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("allow after window: %v", err)
	}
	if !allowed {
		t.Fatalf("attempt after window should be allowed")
	}
}
