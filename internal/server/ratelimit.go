package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter is a token bucket per client key. Keys idle for two windows are dropped.
type ipLimiter struct {
	requests int
	window   time.Duration

	mu       sync.Mutex
	limiters map[string]*keyedLimiter
	ops      uint64
	now      func() time.Time
}

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(requests int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		requests: requests,
		window:   window,
		limiters: make(map[string]*keyedLimiter),
		now:      time.Now,
	}
}

// Allow reports whether key may make another request now.
func (l *ipLimiter) Allow(key string) bool {
	if l == nil || l.requests <= 0 || l.window <= 0 {
		return true
	}
	if key == "" {
		key = "__empty__"
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	k, ok := l.limiters[key]
	if !ok {
		rps := float64(l.requests) / l.window.Seconds()
		k = &keyedLimiter{limiter: rate.NewLimiter(rate.Limit(rps), l.requests)}
		l.limiters[key] = k
	}
	k.lastSeen = now

	l.ops++
	if l.ops%1024 == 0 {
		cutoff := now.Add(-2 * l.window)
		for id, v := range l.limiters {
			if v.lastSeen.Before(cutoff) {
				delete(l.limiters, id)
			}
		}
	}

	return k.limiter.AllowN(now, 1)
}
