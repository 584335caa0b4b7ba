package providers_fx

import (
	"os"

	"go.uber.org/fx"

	"roamio/internal/providers"
	"roamio/pkg/utils"
)

// Set carries the two provider clients in their orchestration roles.
type Set struct {
	Primary   providers.ProviderClient
	Secondary providers.ProviderClient
}

var Module = fx.Provide(
	provideProviders)

// provideProviders builds the Google (primary) and Foursquare (secondary)
// clients, each wrapped with a client-side rate limiter and circuit breaker.
func provideProviders() *Set {
	google := providers.NewGooglePlacesClient(providers.ClientConfig{
		APIKey:      os.Getenv("GOOGLE_PLACES_API_KEY"),
		BaseURL:     utils.EnvString("GOOGLE_PLACES_BASE_URL", ""),
		HTTPTimeout: utils.EnvInt("PROVIDER_HTTP_TIMEOUT_SECONDS", 10),
	})
	foursquare := providers.NewFoursquareClient(providers.ClientConfig{
		APIKey:      os.Getenv("FOURSQUARE_API_KEY"),
		BaseURL:     utils.EnvString("FOURSQUARE_BASE_URL", ""),
		HTTPTimeout: utils.EnvInt("PROVIDER_HTTP_TIMEOUT_SECONDS", 10),
	})

	rps := utils.EnvFloat("PROVIDER_REQUESTS_PER_SECOND", 5)
	return &Set{
		Primary:   providers.NewResilientClient(google, rps),
		Secondary: providers.NewResilientClient(foursquare, rps),
	}
}
