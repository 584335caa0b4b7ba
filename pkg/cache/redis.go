package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"roamio/internal/models/domain_models"
)

// RedisCache stores place lists as JSON values with per-entry TTLs. Redis
// errors degrade to cache misses; discovery still works without the cache.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "places"
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]domain_models.Place, bool) {
	raw, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Redis get error for %s: %v", key, err)
		return nil, false
	}

	var places []domain_models.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		log.Printf("Failed to unmarshal cached places for %s: %v", key, err)
		return nil, false
	}
	return places, true
}

func (r *RedisCache) Set(ctx context.Context, key string, places []domain_models.Place, ttl time.Duration) {
	raw, err := json.Marshal(places)
	if err != nil {
		log.Printf("Failed to marshal places for %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, r.key(key), raw, ttl).Err(); err != nil {
		log.Printf("Redis set error for %s: %v", key, err)
	}
}

func (r *RedisCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, factory func(context.Context) ([]domain_models.Place, error)) ([]domain_models.Place, error) {
	if places, ok := r.Get(ctx, key); ok {
		return places, nil
	}
	places, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	r.Set(ctx, key, places, ttl)
	return places, nil
}

func (r *RedisCache) Remove(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		log.Printf("Redis del error for %s: %v", key, err)
	}
}
