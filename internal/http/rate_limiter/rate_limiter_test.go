package rate_limiter

import (
	"context"
	"testing"
	"time"
)

func TestWindowLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewWindowLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 1; i <= 3; i++ {
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("call %d should be admitted", i)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("4th call within the window should be rejected")
	}

	t.Run("Other keys are independent", func(t *testing.T) {
		if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
			t.Error("expected a fresh key to be admitted")
		}
	})

	t.Run("Window elapses", func(t *testing.T) {
		now = now.Add(time.Minute)
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatal("expected admission after the window elapsed")
		}
		if got := l.windows["1.2.3.4"].count; got != 1 {
			t.Errorf("expected fresh count of 1, got %d", got)
		}
	})

	t.Run("Sweep drops closed windows", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		l.Sweep()
		if len(l.windows) != 0 {
			t.Errorf("expected no keys after sweep, got %d", len(l.windows))
		}
	})
}

func TestTokenBucketLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewTokenBucketLimiter(0.001, 2)

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "k"); !ok {
			t.Fatalf("burst call %d should be admitted", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "k"); ok {
		t.Error("expected rejection once the burst is spent")
	}
	l.Reset()
	if ok, _ := l.Allow(ctx, "k"); !ok {
		t.Error("expected admission after reset")
	}
}
