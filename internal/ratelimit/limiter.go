package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RouteLimiter throttles provider queries per origin-destination route, so a
// hub sweep re-querying the same provider stays under its tolerance.
type RouteLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 2,
		BurstSize:         4,
	}
}

func NewRouteLimiter(config RateLimitConfig) *RouteLimiter {
	return &RouteLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewRouteLimiterWithDefaults() *RouteLimiter {
	return NewRouteLimiter(DefaultConfig())
}

func (l *RouteLimiter) GetLimiter(route string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[route]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[route]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[route] = limiter
	return limiter
}

func (l *RouteLimiter) SetRouteLimit(route string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[route] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *RouteLimiter) Wait(ctx context.Context, route string) error {
	return l.GetLimiter(route).Wait(ctx)
}
