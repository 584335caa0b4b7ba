package cache_fx

import (
	"go.uber.org/fx"

	"roamio/internal/infra"
	"roamio/pkg/cache"
	"roamio/pkg/utils"
)

var Module = fx.Provide(
	provideCache)

// provideCache uses Redis when REDIS_ADDR is configured, otherwise the
// in-process store.
func provideCache() cache.PlaceCache {
	client := infra.InitRedis()
	if client == nil {
		return cache.NewMemoryCache()
	}
	return cache.NewRedisCache(client, utils.EnvString("CACHE_PREFIX", "places"))
}
