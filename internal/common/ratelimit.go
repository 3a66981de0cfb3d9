package common

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per key. Buckets that have not been
// used for the idle TTL are evicted, so the number of tracked keys stays
// bounded by recent traffic.
type RateLimiter struct {
	limiters *cache.Cache
	rps      rate.Limit
	burst    int
	ttl      time.Duration
}

func NewRateLimiter(rps float64, burst int, ttl time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(ttl, ttl),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

// Allow reports whether one more event for key may happen now.
func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Get(key); ok {
		lim := v.(*rate.Limiter)
		// touch to extend the idle ttl
		l.limiters.Set(key, lim, l.ttl)
		return lim
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	// Add fails when a concurrent request won the race, use theirs then.
	if err := l.limiters.Add(key, lim, l.ttl); err != nil {
		if v, ok := l.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}

	return lim
}

// Len returns the number of keys currently tracked.
func (l *RateLimiter) Len() int {
	return l.limiters.ItemCount()
}
