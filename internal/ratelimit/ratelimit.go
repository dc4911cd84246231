package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultAttempts = 10
	DefaultWindow   = 15 * time.Minute
)

type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is set when the request is not allowed
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
