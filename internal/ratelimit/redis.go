package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Limiter = (*RedisLimiter)(nil)

var errUnexpectedReply = errors.New("unexpected redis reply")

// KEYS[1] counter key, ARGV[1] window in ms. The first hit of a window sets the
// expiry; later hits never extend it. Returns {count, remaining window ms}.
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisLimiter shares the attempt counters between instances through redis. It
// uses the same fixed window as MemoryLimiter: the first attempt opens the window
// and every attempt past the limit is refused until the window expires.
type RedisLimiter struct {
	rdb       redis.Scripter
	keyPrefix string
	attempts  int
	window    time.Duration
}

func NewRedisLimiter(rdb redis.Scripter, attempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:       rdb,
		keyPrefix: "ratelimit:",
		attempts:  attempts,
		window:    window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	reply, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.keyPrefix + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return Result{}, fmt.Errorf("redis rate limit [%s]: %w", key, err)
	}

	count, ttlMs, err := parseWindowReply(reply)
	if err != nil {
		return Result{}, fmt.Errorf("redis rate limit [%s]: %w", key, err)
	}

	if count > int64(l.attempts) {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: time.Duration(ttlMs) * time.Millisecond,
		}, nil
	}

	return Result{
		Allowed:   true,
		Remaining: l.attempts - int(count),
	}, nil
}

func parseWindowReply(reply interface{}) (int64, int64, error) {
	values, ok := reply.([]interface{})
	if !ok || len(values) != 2 {
		return 0, 0, fmt.Errorf("%w: %v", errUnexpectedReply, reply)
	}
	count, ok := values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("%w: count %v", errUnexpectedReply, values[0])
	}
	ttlMs, ok := values[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("%w: ttl %v", errUnexpectedReply, values[1])
	}
	return count, ttlMs, nil
}
