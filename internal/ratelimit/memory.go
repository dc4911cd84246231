package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Limiter = (*MemoryLimiter)(nil)

type attemptWindow struct {
	start time.Time
	count int
}

// MemoryLimiter allows at most `attempts` requests per key within a fixed window
// that starts with the first request. Counters live in process memory only: they
// are lost on restart and not shared between instances.
type MemoryLimiter struct {
	mutex    sync.Mutex
	windows  *cache.Cache
	attempts int
	window   time.Duration
	// ability to inject the clock (for unit tests)
	NowFunc func() time.Time
}

func NewMemoryLimiter(attempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		// expired windows are only evicted to free memory, the window check itself uses NowFunc
		windows:  cache.New(window, 2*window),
		attempts: attempts,
		window:   window,
		NowFunc:  time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.NowFunc()

	var w *attemptWindow
	if cached, found := l.windows.Get(key); found {
		w = cached.(*attemptWindow)
	}
	windowEnd := time.Time{}
	if w != nil {
		windowEnd = w.start.Add(l.window)
	}
	if w == nil || !now.Before(windowEnd) {
		w = &attemptWindow{start: now}
		windowEnd = now.Add(l.window)
		l.windows.Set(key, w, l.window)
	}

	w.count++
	if w.count > l.attempts {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: windowEnd.Sub(now),
		}, nil
	}

	return Result{
		Allowed:   true,
		Remaining: l.attempts - w.count,
	}, nil
}
