// Package ratelimit provides a small token bucket guarding the manual
// run trigger. A screen run is expensive, so triggers are throttled per
// process, not per caller.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // tokens per second
	last     time.Time
	now      func() time.Time
}

// New builds a bucket that refills `capacity` tokens over `per`.
func New(capacity int, per time.Duration) *Limiter {
	return &Limiter{
		tokens:   float64(capacity),
		capacity: float64(capacity),
		rate:     float64(capacity) / per.Seconds(),
		last:     time.Now(),
		now:      time.Now,
	}
}

// Allow consumes one token if available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.tokens += now.Sub(l.last).Seconds() * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.last = now

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}
