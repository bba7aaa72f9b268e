package rate_limiter

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis answers transactions in-process through a go-redis hook, so no server is dialed.
type fakeRedis struct {
	mu      sync.Mutex
	counts  map[string]int64
	batches [][]redis.Cmder
	err     error
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return next
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.batches = append(f.batches, cmds)
		if f.err != nil {
			for _, cmd := range cmds {
				cmd.SetErr(f.err)
			}
			return f.err
		}
		for _, cmd := range cmds {
			if incr, ok := cmd.(*redis.IntCmd); ok && cmd.Name() == "incr" {
				key := cmd.Args()[1].(string)
				f.counts[key]++
				incr.SetVal(f.counts[key])
			}
		}
		return nil
	}
}

func newFakeRedisLimiter(limit int) (*RedisWindowLimiter, *fakeRedis) {
	fake := &fakeRedis{counts: map[string]int64{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	rdb.AddHook(fake)
	return NewRedisWindowLimiter(rdb, limit, time.Minute), fake
}

func TestRedisWindowLimiter(t *testing.T) {
	ctx := context.Background()
	l, fake := newFakeRedisLimiter(3)

	for i := 1; i <= 3; i++ {
		ok, err := l.Allow(ctx, "read:1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("call %d should be admitted, got ok=%v err=%v", i, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, "read:1.2.3.4"); ok {
		t.Fatal("4th call within the window should be rejected")
	}

	t.Run("Counter and expiry share one transaction", func(t *testing.T) {
		for i, batch := range fake.batches {
			var names []string
			for _, cmd := range batch {
				names = append(names, cmd.Name())
			}
			if got := strings.Join(names, ","); got != "multi,incr,expire,exec" {
				t.Fatalf("batch %d: expected multi,incr,expire,exec, got %s", i, got)
			}
			args := batch[2].Args()
			if len(args) != 4 || args[2] != int64(60) || args[3] != "NX" {
				t.Errorf("batch %d: expected EXPIRE key 60 NX, got %v", i, args)
			}
		}
	})

	t.Run("Transaction failure is returned", func(t *testing.T) {
		fake.err = errors.New("connection reset")
		if _, err := l.Allow(ctx, "read:5.6.7.8"); err == nil {
			t.Error("expected an error when the transaction fails")
		}
	})
}
