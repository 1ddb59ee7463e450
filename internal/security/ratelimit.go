package security

import (
	"context"
	"sync"
	"time"
)

// RateLimiter allows each client a fixed number of requests per window
type RateLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	rate    int
	window  time.Duration
	now     func() time.Time
}

type client struct {
	remaining   int
	windowStart time.Time
}

// NewRateLimiter creates a limiter granting rate requests per window to each client key
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
}

// Allow consumes one request for key and reports whether it is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.clients[key]
	if !ok || now.Sub(c.windowStart) >= rl.window {
		c = &client{remaining: rl.rate, windowStart: now}
		rl.clients[key] = c
	}

	if c.remaining == 0 {
		return false
	}
	c.remaining--
	return true
}

// RetryAfter returns how long key has to wait for its window to reset
func (rl *RateLimiter) RetryAfter(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		return 0
	}
	if wait := rl.window - rl.now().Sub(c.windowStart); wait > 0 {
		return wait
	}
	return 0
}

// Cleanup drops clients whose window ended more than one window ago
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, c := range rl.clients {
		if now.Sub(c.windowStart) > rl.window*2 {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done
func (rl *RateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
