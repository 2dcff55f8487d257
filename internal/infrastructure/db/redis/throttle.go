package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle bounds login attempts per account with a fixed window counter.
// Key format: login:<email>
type Throttle struct {
	client *redis.Client
	window time.Duration
	limit  int
}

// NewThrottle creates a Throttle allowing at most limit attempts per window.
func NewThrottle(client *redis.Client, window time.Duration, limit int) *Throttle {
	if window <= 0 {
		window = 5 * time.Minute
	}
	if limit <= 0 {
		limit = 10
	}
	return &Throttle{client: client, window: window, limit: limit}
}

// Allow records one attempt for email and reports whether it is still
// within the window limit. The first attempt opens the window.
func (t *Throttle) Allow(ctx context.Context, email string) (bool, error) {
	key := t.key(email)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return false, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n <= int64(t.limit), nil
}

func (t *Throttle) key(email string) string {
	return fmt.Sprintf("login:%s", email)
}
