package rate_limiter

import (
	"sync"
	"time"
)

// RateLimiter is a sliding-window per-key limiter used to guard the login
// endpoint.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
}

func New(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	go rl.cleanupLoop()

	return rl
}

// cleanupLoop drops keys whose attempts have all aged out of the window.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		windowStart := time.Now().Add(-rl.window)
		for key, times := range rl.attempts {
			valid := prune(times, windowStart)
			if len(valid) == 0 {
				delete(rl.attempts, key)
			} else {
				rl.attempts[key] = valid
			}
		}
		rl.mu.Unlock()
	}
}

// IsAllowed records an attempt for the key and reports whether it stays
// within the limit.
func (rl *RateLimiter) IsAllowed(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := time.Now().Add(-rl.window)
	rl.attempts[key] = prune(rl.attempts[key], windowStart)

	if len(rl.attempts[key]) >= rl.limit {
		return false
	}

	rl.attempts[key] = append(rl.attempts[key], time.Now())
	return true
}

// Remaining reports how many attempts the key has left in the window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := time.Now().Add(-rl.window)
	return rl.limit - len(prune(rl.attempts[key], windowStart))
}

func prune(times []time.Time, windowStart time.Time) []time.Time {
	var valid []time.Time
	for _, t := range times {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}
