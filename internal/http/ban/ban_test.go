package ban

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSummarize(t *testing.T) {
	now := time.Now()
	s := Summarize([]StrikeEntry{
		{Target: "1.1.1.1", Route: "/products", Time: now},
		{Target: "1.1.1.1", Route: "/products", Time: now},
		{Target: "2.2.2.2", Route: "/login", Time: now},
	})

	if s.Total != 3 {
		t.Errorf("expected total 3, got %d", s.Total)
	}
	if s.ByRoute[0] != (Count{Key: "/products", Count: 2}) {
		t.Errorf("expected /products first, got %+v", s.ByRoute)
	}
	if s.ByTarget[1] != (Count{Key: "2.2.2.2", Count: 1}) {
		t.Errorf("unexpected target ordering %+v", s.ByTarget)
	}
}

func TestLogDailySummaryDrains(t *testing.T) {
	ctx := context.Background()
	rec := NewMemoryRecorder()
	_ = rec.Record(ctx, StrikeEntry{Target: "1.1.1.1", Route: "/products"})

	core, logs := observer.New(zap.InfoLevel)
	LogDailySummary(ctx, rec, zap.New(core))

	if logs.Len() != 1 {
		t.Fatalf("expected one summary log, got %d", logs.Len())
	}
	if left, _ := rec.Drain(ctx); len(left) != 0 {
		t.Errorf("expected the log to be drained, got %d entries", len(left))
	}

	LogDailySummary(ctx, rec, zap.New(core))
	if logs.Len() != 1 {
		t.Errorf("expected no log for an empty day, got %d", logs.Len())
	}
}
