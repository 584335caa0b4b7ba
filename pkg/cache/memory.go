package cache

import (
	"context"
	"sync"
	"time"

	"roamio/internal/models/domain_models"
)

type memoryEntry struct {
	places    []domain_models.Place
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded in-process cache, the default when no Redis
// address is configured. Expired entries are removed lazily on read.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

// NewMemoryCacheWithClock is used by tests to control expiry.
func NewMemoryCacheWithClock(now func() time.Time) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]domain_models.Place, bool) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.places, true
}

func (m *MemoryCache) Set(_ context.Context, key string, places []domain_models.Place, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = memoryEntry{
		places:    places,
		expiresAt: m.now().Add(ttl),
	}
}

func (m *MemoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, factory func(context.Context) ([]domain_models.Place, error)) ([]domain_models.Place, error) {
	if places, ok := m.Get(ctx, key); ok {
		return places, nil
	}
	places, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	m.Set(ctx, key, places, ttl)
	return places, nil
}

func (m *MemoryCache) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
