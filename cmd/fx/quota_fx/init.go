package quota_fx

import (
	"go.uber.org/fx"

	"roamio/internal/providers"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

var Module = fx.Provide(
	provideQuotaGuard)

func provideQuotaGuard() services.QuotaGuardInterface {
	limits := map[string]services.ProviderLimits{
		providers.GoogleProviderName: {
			DailyCap:          utils.EnvInt("GOOGLE_DAILY_CAP", 1000),
			RequestsPerMinute: utils.EnvInt("GOOGLE_RPM", 60),
			DegradeThreshold:  utils.EnvFloat("GOOGLE_DEGRADE_THRESHOLD", 0.8),
		},
		providers.FoursquareProviderName: {
			DailyCap:          utils.EnvInt("FOURSQUARE_DAILY_CAP", 500),
			RequestsPerMinute: utils.EnvInt("FOURSQUARE_RPM", 30),
			DegradeThreshold:  utils.EnvFloat("FOURSQUARE_DEGRADE_THRESHOLD", 0.8),
		},
	}
	return services.NewQuotaGuard(limits, nil)
}
