package handlers

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyThrottle keeps one token bucket per account
type KeyThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewKeyThrottle allows perMinute requests per account with an equal burst
func NewKeyThrottle(perMinute int) *KeyThrottle {
	return &KeyThrottle{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// Allow reports whether the account may make another request now
func (t *KeyThrottle) Allow(account string) bool {
	t.mu.Lock()
	limiter, ok := t.limiters[account]
	if !ok {
		limiter = rate.NewLimiter(t.limit, t.burst)
		t.limiters[account] = limiter
	}
	t.mu.Unlock()
	return limiter.Allow()
}
