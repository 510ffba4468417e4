// Package orchestrator turns raw provider calls into validated offer lists:
// bounded retries for transient failures, rate limiting per route, and an
// optional cache in front of the provider.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dharmasatrya/farescout/internal/cache"
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/provider"
	"github.com/dharmasatrya/farescout/internal/ratelimit"
)

type Config struct {
	// MaxAttempts is the total number of provider calls per fetch.
	// Defaults to 3.
	MaxAttempts int
	// RetryDelay is the fixed wait between attempts. Defaults to 5s.
	RetryDelay time.Duration
	// Timeout bounds a single provider call. Zero means no per-call bound
	// beyond the caller's context.
	Timeout time.Duration
	// RateLimiter, when set, is waited on before every attempt.
	RateLimiter *ratelimit.RouteLimiter
	// Cache, when set, is consulted before the provider and updated after a
	// successful fetch.
	Cache cache.Cache
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		RetryDelay:  5 * time.Second,
	}
}

type Orchestrator struct {
	provider provider.Provider
	config   Config
}

func New(p provider.Provider, config Config) *Orchestrator {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &Orchestrator{
		provider: p,
		config:   config,
	}
}

// Fetch runs one leg query against the provider. An empty offer list is a
// valid result, not a failure; retries cover transient provider errors only.
// When all attempts fail the returned error wraps provider.ErrUnavailable —
// no partial or fabricated list is ever returned.
func (o *Orchestrator) Fetch(ctx context.Context, q provider.Query) ([]models.Offer, error) {
	if o.config.Cache != nil {
		if offers, found := o.config.Cache.Get(ctx, q); found {
			return offers, nil
		}
	}

	route := q.Origin + "-" + q.Destination

	var lastErr error
	for attempt := 0; attempt < o.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(o.config.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if o.config.RateLimiter != nil {
			if err := o.config.RateLimiter.Wait(ctx, route); err != nil {
				return nil, err
			}
		}

		offers, err := o.search(ctx, q)
		if err == nil {
			for i := range offers {
				offers[i].Normalize()
			}
			if o.config.Cache != nil {
				_ = o.config.Cache.Set(ctx, q, offers)
			}
			return offers, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		log.Printf("Provider %s attempt %d failed for %s: %v", o.provider.Name(), attempt+1, route, err)
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %v",
		provider.ErrUnavailable, route, o.config.MaxAttempts, lastErr)
}

func (o *Orchestrator) search(ctx context.Context, q provider.Query) ([]models.Offer, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}
	return o.provider.Search(ctx, q)
}
