package cache

import (
	"context"
	"time"

	"roamio/internal/models/domain_models"
)

// PlaceCache stores ranked place lists keyed by canonical query strings.
// TTL is chosen per entry by the caller because empty results are cached
// much shorter than real ones.
type PlaceCache interface {
	Get(ctx context.Context, key string) ([]domain_models.Place, bool)
	Set(ctx context.Context, key string, places []domain_models.Place, ttl time.Duration)
	GetOrSet(ctx context.Context, key string, ttl time.Duration, factory func(context.Context) ([]domain_models.Place, error)) ([]domain_models.Place, error)
	Remove(ctx context.Context, key string)
}
