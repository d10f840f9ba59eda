package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles credential checks per login name using a rolling
// redis counter. A nil limiter permits everything.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginLimiter builds a limiter; returns nil when no client is available
// or the limit is disabled.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if client == nil || limit <= 0 {
		return nil
	}
	return &LoginLimiter{client: client, limit: limit, window: window}
}

// Allow records one attempt for the login name and reports whether it is
// still within the limit. Redis being unreachable fails open; throttling is
// protection, not a correctness dependency.
func (l *LoginLimiter) Allow(ctx context.Context, username string) bool {
	if l == nil {
		return true
	}
	key := fmt.Sprintf("login_attempts:%s", username)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}
	return count <= int64(l.limit)
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if l == nil {
		return
	}
	l.client.Del(ctx, fmt.Sprintf("login_attempts:%s", username))
}
