package rate_limiter

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more request for key fits its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// WindowLimiter admits at most limit requests per key in each fixed window.
// State is per process and is lost on restart.
type WindowLimiter struct {
	mu      sync.Mutex
	limit   int
	size    time.Duration
	windows map[string]*window
	now     func() time.Time
}

func NewWindowLimiter(limit int, size time.Duration) *WindowLimiter {
	return &WindowLimiter{
		limit:   limit,
		size:    size,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *WindowLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.windows[key]
	if !exists || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.size)}
		return true, nil
	}

	w.count++
	return w.count <= l.limit, nil
}

// Sweep drops keys whose window has closed.
func (l *WindowLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

// Reset forgets every key.
func (l *WindowLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string]*window)
}

// StartCleanupLoop sweeps expired keys every interval until ctx is done.
func (l *WindowLimiter) StartCleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
