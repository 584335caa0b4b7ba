package providers

import (
	"context"

	"roamio/internal/models/provider_models"
)

// ProviderClient wraps one upstream place-search API. Implementations never
// return Go errors for upstream conditions; every outcome is a Result variant
// so the orchestrator can branch exhaustively.
type ProviderClient interface {
	Name() string
	Search(ctx context.Context, lat, lng, radius float64, keyword string) provider_models.Result
	SearchByText(ctx context.Context, query string, lat, lng float64, priceLevels []int) provider_models.Result
}

// ClientConfig is the static configuration for a single provider client.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	HTTPTimeout int // seconds, 0 means default
}
