package ban

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DailyStrikeLogKey holds the JSON strike entries collected since the last summary.
const DailyStrikeLogKey = "ratelimit:rejections:daily"

// StrikeEntry is one rate-limit rejection.
type StrikeEntry struct {
	Target string    `json:"target"`
	Route  string    `json:"route"`
	Scope  string    `json:"scope"`
	Time   time.Time `json:"time"`
}

// Recorder stores strikes and drains them for the periodic summary.
type Recorder interface {
	Record(ctx context.Context, e StrikeEntry) error
	Drain(ctx context.Context) ([]StrikeEntry, error)
}

type RedisRecorder struct {
	rdb *redis.Client
}

func NewRedisRecorder(rdb *redis.Client) *RedisRecorder {
	return &RedisRecorder{rdb: rdb}
}

func (r *RedisRecorder) Record(ctx context.Context, e StrikeEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.rdb.RPush(ctx, DailyStrikeLogKey, data).Err()
}

// Drain reads and clears the list in one transaction.
func (r *RedisRecorder) Drain(ctx context.Context) ([]StrikeEntry, error) {
	var lrange *redis.StringSliceCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, DailyStrikeLogKey, 0, -1)
		pipe.Del(ctx, DailyStrikeLogKey)
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]StrikeEntry, 0, len(lrange.Val()))
	for _, item := range lrange.Val() {
		var e StrikeEntry
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type MemoryRecorder struct {
	mu      sync.Mutex
	entries []StrikeEntry
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Record(_ context.Context, e StrikeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *MemoryRecorder) Drain(_ context.Context) ([]StrikeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.entries
	m.entries = nil
	return out, nil
}

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Summary struct {
	Total    int     `json:"total"`
	ByRoute  []Count `json:"by_route"`
	ByTarget []Count `json:"by_target"`
}

func Summarize(entries []StrikeEntry) Summary {
	routes := map[string]int{}
	targets := map[string]int{}
	for _, e := range entries {
		routes[e.Route]++
		targets[e.Target]++
	}
	return Summary{Total: len(entries), ByRoute: sortedCounts(routes), ByTarget: sortedCounts(targets)}
}

// sortedCounts orders by count descending, then key.
func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// LogDailySummary drains rec and logs the aggregated strikes. Nothing is logged when there are none.
func LogDailySummary(ctx context.Context, rec Recorder, logger *zap.Logger) {
	entries, err := rec.Drain(ctx)
	if err != nil {
		logger.Error("reading strike log", zap.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}

	s := Summarize(entries)
	logger.Info("daily rate limit summary",
		zap.Int("total", s.Total),
		zap.Any("by_route", s.ByRoute),
		zap.Any("by_target", s.ByTarget),
	)
}

// StartDailySummary logs a summary every day at 23:59 local time until ctx is done.
func StartDailySummary(ctx context.Context, rec Recorder, logger *zap.Logger) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if !now.Before(next) {
			next = next.AddDate(0, 0, 1)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			LogDailySummary(ctx, rec, logger)
		}
	}
}
