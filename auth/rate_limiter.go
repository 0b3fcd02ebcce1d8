package auth

import (
	"context"
	"time"
)

// RateLimiter bounds how often a client can request a new login link.
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, key string, limit int, window time.Duration) error
}
