package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenBucketLimiter gives every key its own token bucket refilled at r per second.
type TokenBucketLimiter struct {
	mu       sync.Mutex
	r        rate.Limit
	burst    int
	visitors map[string]*clientLimiter
}

func NewTokenBucketLimiter(perSecond float64, burst int) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		r:        rate.Limit(perSecond),
		burst:    burst,
		visitors: make(map[string]*clientLimiter),
	}
}

func (l *TokenBucketLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.visitor(key).Allow(), nil
}

func (l *TokenBucketLimiter) visitor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(l.r, l.burst)
		l.visitors[key] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartVisitorCleanupLoop forgets keys idle for longer than idle until ctx is done.
func (l *TokenBucketLimiter) StartVisitorCleanupLoop(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			for key, v := range l.visitors {
				if time.Since(v.lastSeen) > idle {
					delete(l.visitors, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *TokenBucketLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visitors = make(map[string]*clientLimiter)
}
