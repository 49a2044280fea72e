package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window rate limiter keyed by an arbitrary string,
// typically a client IP.
type Limiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	window  time.Duration
	maxHits int
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		hits:    make(map[string][]time.Time),
		window:  window,
		maxHits: maxHits,
	}
}

// Allow records a hit for key and reports whether it stays within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.window)

	// Drop hits that have aged out of the window
	valid := l.hits[key][:0]
	for _, hit := range l.hits[key] {
		if hit.After(windowStart) {
			valid = append(valid, hit)
		}
	}

	if len(valid) >= l.maxHits {
		l.hits[key] = valid
		return false
	}

	l.hits[key] = append(valid, now)
	return true
}

// Reset clears recorded hits for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}
