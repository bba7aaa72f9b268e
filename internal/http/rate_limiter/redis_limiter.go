package rate_limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:window:"

// RedisWindowLimiter applies the same fixed window as WindowLimiter on a shared redis counter.
type RedisWindowLimiter struct {
	rdb   *redis.Client
	limit int
	size  time.Duration
}

func NewRedisWindowLimiter(rdb *redis.Client, limit int, size time.Duration) *RedisWindowLimiter {
	return &RedisWindowLimiter{rdb: rdb, limit: limit, size: size}
}

// Allow counts the request and sets the window expiry in one MULTI/EXEC. EXPIRE NX only
// applies to a key without a TTL, so a lost expiry is repaired on the next hit.
func (l *RedisWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := redisKeyPrefix + key

	var count *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.size)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("counting request in rate window: %w", err)
	}
	return count.Val() <= int64(l.limit), nil
}
