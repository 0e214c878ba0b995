package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// SourceLimiter throttles outbound fetches per fare source, so one run
// never hammers an airline's availability endpoint.
type SourceLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 2,
		Burst:             4,
	}
}

func NewSourceLimiter(defaults Config) *SourceLimiter {
	return &SourceLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

func (l *SourceLimiter) SetSourceLimit(source string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[source] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *SourceLimiter) Wait(ctx context.Context, source string) error {
	return l.limiterFor(source).Wait(ctx)
}

func (l *SourceLimiter) limiterFor(source string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[source]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.Burst)
		l.limiters[source] = limiter
	}
	return limiter
}
