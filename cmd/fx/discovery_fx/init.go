package discovery_fx

import (
	"go.uber.org/fx"

	"roamio/cmd/fx/providers_fx"
	"roamio/internal/providers"
	"roamio/internal/services"
	"roamio/pkg/cache"
	"roamio/pkg/utils"
)

var Module = fx.Provide(
	provideMerger,
	provideBaselineRanker,
	provideDiscoveryService)

func provideMerger() services.MergerInterface {
	return services.NewMerger(services.MergeConfig{
		NameSimilarityRatio: utils.EnvFloat("DEDUP_NAME_SIMILARITY_RATIO", 0.30),
	})
}

func provideBaselineRanker() services.BaselineRankerInterface {
	return services.NewBaselineRanker(providers.GoogleProviderName, nil)
}

func provideDiscoveryService(
	set *providers_fx.Set,
	guard services.QuotaGuardInterface,
	merger services.MergerInterface,
	ranker services.BaselineRankerInterface,
	scorer services.HybridScorerInterface,
	placeCache cache.PlaceCache,
) services.DiscoveryServiceInterface {
	cfg := services.DefaultDiscoveryConfig()
	cfg.PrimaryTake = utils.EnvInt("PRIMARY_TAKE", cfg.PrimaryTake)
	cfg.MinPrimaryResults = utils.EnvInt("MIN_PRIMARY_RESULTS", cfg.MinPrimaryResults)
	cfg.MaxRadiusMeters = utils.EnvFloat("MAX_RADIUS_METERS", cfg.MaxRadiusMeters)
	cfg.DedupDistanceMeters = utils.EnvFloat("DEDUP_DISTANCE_METERS", cfg.DedupDistanceMeters)
	cfg.MaxResults = utils.EnvInt("MAX_RESULTS", cfg.MaxResults)
	cfg.NearbyTTL = utils.EnvDuration("CACHE_NEARBY_TTL", cfg.NearbyTTL)
	cfg.TextTTL = utils.EnvDuration("CACHE_TEXT_TTL", cfg.TextTTL)
	cfg.EmptyTTL = utils.EnvDuration("CACHE_EMPTY_TTL", cfg.EmptyTTL)
	cfg.ForceSupplement = utils.EnvBool("FORCE_SUPPLEMENT", cfg.ForceSupplement)

	return services.NewDiscoveryService(
		set.Primary,
		set.Secondary,
		guard,
		merger,
		ranker,
		scorer,
		placeCache,
		cfg,
		nil,
	)
}
