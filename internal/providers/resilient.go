package providers

import (
	"context"
	"errors"
	"log"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"roamio/internal/models/provider_models"
)

// ResilientClient wraps a ProviderClient with a client-side pacer and a
// circuit breaker. The pacer smooths bursts below the provider's contractual
// requests-per-second; the breaker stops hammering an upstream that is down.
// Both conditions surface as RateLimited results so the orchestrator absorbs
// them like any other provider failure.
type ResilientClient struct {
	inner   ProviderClient
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[provider_models.Result]
}

func NewResilientClient(inner ProviderClient, requestsPerSecond float64) *ResilientClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	cb := gobreaker.NewCircuitBreaker[provider_models.Result](gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CIRCUIT BREAKER] %s: %s -> %s", name, from, to)
		},
	})

	return &ResilientClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond)+1),
		cb:      cb,
	}
}

func (r *ResilientClient) Name() string { return r.inner.Name() }

func (r *ResilientClient) Search(ctx context.Context, lat, lng, radius float64, keyword string) provider_models.Result {
	return r.execute(ctx, func() provider_models.Result {
		return r.inner.Search(ctx, lat, lng, radius, keyword)
	})
}

func (r *ResilientClient) SearchByText(ctx context.Context, query string, lat, lng float64, priceLevels []int) provider_models.Result {
	return r.execute(ctx, func() provider_models.Result {
		return r.inner.SearchByText(ctx, query, lat, lng, priceLevels)
	})
}

func (r *ResilientClient) execute(ctx context.Context, call func() provider_models.Result) provider_models.Result {
	if err := r.limiter.Wait(ctx); err != nil {
		return provider_models.Timeout(r.Name())
	}

	result, err := r.cb.Execute(func() (provider_models.Result, error) {
		res := call()
		// Upstream failures feed the breaker; business outcomes do not.
		switch res.Status {
		case provider_models.StatusTimeout, provider_models.StatusNetworkError, provider_models.StatusError:
			return res, errors.New(res.Status.String())
		default:
			return res, nil
		}
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return provider_models.RateLimited(r.Name(), "circuit open", 0)
		}
		// The breaker returned the original failed result alongside the error.
		return result
	}
	return result
}
