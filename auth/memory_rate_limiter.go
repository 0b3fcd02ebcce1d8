package auth

import (
	"context"
	"sync"
	"time"
)

type MemoryRateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*clientLimit
}

type clientLimit struct {
	count     int
	windowEnd time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		clients: make(map[string]*clientLimit),
	}
}

func (r *MemoryRateLimiter) CheckAndIncrement(ctx context.Context, key string, limit int, window time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cl, exists := r.clients[key]

	if !exists || now.After(cl.windowEnd) {
		r.clients[key] = &clientLimit{
			count:     1,
			windowEnd: now.Add(window),
		}
		return nil
	}

	if cl.count >= limit {
		return ErrRateLimitExceeded
	}

	cl.count++
	return nil
}
