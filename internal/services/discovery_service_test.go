package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/domain_models"
	"roamio/internal/models/provider_models"
	"roamio/internal/models/request_models"
	"roamio/pkg/cache"
)

type providerCall struct {
	Radius  float64
	Keyword string
	Query   string
}

type fakeProvider struct {
	name string

	mu      sync.Mutex
	results []provider_models.Result
	calls   []providerCall
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, _, _, radius float64, keyword string) provider_models.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, providerCall{Radius: radius, Keyword: keyword})
	return f.next()
}

func (f *fakeProvider) SearchByText(_ context.Context, query string, _, _ float64, _ []int) provider_models.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, providerCall{Query: query})
	return f.next()
}

func (f *fakeProvider) next() provider_models.Result {
	if len(f.results) == 0 {
		return provider_models.NoResults(f.name)
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) call(i int) providerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

type fakeGuard struct {
	mu       sync.Mutex
	blocked  map[string]bool
	notified []string
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{blocked: make(map[string]bool)}
}

func (g *fakeGuard) CanCall(provider string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.blocked[provider]
}

func (g *fakeGuard) NotifyCall(provider string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notified = append(g.notified, provider)
}

func (g *fakeGuard) ShouldDegrade(string) bool { return false }

func (g *fakeGuard) GetDegradedRadius(_ string, radius float64) float64 { return radius }

func (g *fakeGuard) GetUsageStats() map[string]ProviderUsageStats { return nil }

func (g *fakeGuard) notifyCount(provider string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, p := range g.notified {
		if p == provider {
			n++
		}
	}
	return n
}

func nearbyPlaces(source string, n int) []domain_models.Place {
	out := make([]domain_models.Place, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, place(
			fmt.Sprintf("%s place %d", source, i),
			10.7770+float64(i)*0.01,
			106.7009,
			source,
		))
	}
	return out
}

type discoveryFixture struct {
	primary   *fakeProvider
	secondary *fakeProvider
	guard     *fakeGuard
	clock     *fakeClock
	cache     *cache.MemoryCache
	service   DiscoveryServiceInterface
}

func newDiscoveryFixture(t *testing.T, scorer HybridScorerInterface, mutate func(*DiscoveryConfig)) *discoveryFixture {
	t.Helper()

	f := &discoveryFixture{
		primary:   &fakeProvider{name: "google"},
		secondary: &fakeProvider{name: "foursquare"},
		guard:     newFakeGuard(),
		clock:     newFakeClock(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)),
	}
	f.cache = cache.NewMemoryCacheWithClock(f.clock.Now)

	cfg := DefaultDiscoveryConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	f.service = NewDiscoveryService(
		f.primary, f.secondary, f.guard,
		NewMerger(DefaultMergeConfig()),
		NewBaselineRanker("google", f.clock.Now),
		scorer,
		f.cache,
		cfg,
		f.clock.Now,
	)
	return f
}

func nearbyRequest(radius float64, keyword string) request_models.SearchPlacesRequest {
	return request_models.SearchPlacesRequest{
		Latitude:  10.7769,
		Longitude: 106.7009,
		Radius:    radius,
		Keyword:   keyword,
	}
}

func TestDiscoveryPrimaryEnoughSkipsFallback(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 8)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 8)
	assert.Equal(t, 1, f.primary.callCount())
	assert.Equal(t, 0, f.secondary.callCount(), "fallback not consulted")
	assert.Equal(t, 1, f.guard.notifyCount("google"))
}

func TestDiscoveryThinPrimaryTriggersFallback(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 3)),
	}
	f.secondary.results = []provider_models.Result{
		provider_models.Success("foursquare", nearbyPlaces("foursquare", 4)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 7, "union of both providers")
	assert.Equal(t, 1, f.secondary.callCount())
}

func TestDiscoveryPrimaryFailureTriggersFallback(t *testing.T) {
	for _, result := range []provider_models.Result{
		provider_models.RateLimited("google", "quota", 429),
		provider_models.APIKeyInvalid("google", 403),
		provider_models.Timeout("google"),
		provider_models.NetworkError("google", "conn refused"),
		provider_models.Error("google", "boom", 500),
	} {
		t.Run(result.Status.String(), func(t *testing.T) {
			f := newDiscoveryFixture(t, nil, nil)
			f.primary.results = []provider_models.Result{result}
			f.secondary.results = []provider_models.Result{
				provider_models.Success("foursquare", nearbyPlaces("foursquare", 2)),
			}

			places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
			require.NoError(t, err)
			assert.Len(t, places, 2)
		})
	}
}

func TestDiscoveryWidensOnceWhenEmpty(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.NoResults("google"),
		provider_models.Success("google", nearbyPlaces("google", 6)),
	}
	f.secondary.results = []provider_models.Result{
		provider_models.NoResults("foursquare"),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 6)

	require.Equal(t, 2, f.primary.callCount())
	widened := f.primary.call(1)
	assert.Equal(t, 6000.0, widened.Radius, "radius doubled")
	assert.Equal(t, "cafe point_of_interest", widened.Keyword, "generic broadening appended")
}

func TestDiscoveryWideningCapsRadiusAndBroadensTourism(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.NoResults("google"),
		provider_models.NoResults("google"),
	}

	_, err := f.service.FindPlaces(context.Background(), nearbyRequest(8000, "museum"))
	require.NoError(t, err)

	require.Equal(t, 2, f.primary.callCount(), "exactly one widening retry")
	widened := f.primary.call(1)
	assert.Equal(t, 12000.0, widened.Radius, "capped at 12km")
	assert.Equal(t, "museum restaurant cafe tourist_attraction", widened.Keyword)
}

func TestDiscoveryNoWideningWhenAlreadyMaximal(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.NoResults("google"),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(12000, "point_of_interest"))
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, 1, f.primary.callCount(), "widening would repeat the same call")
}

func TestDiscoveryQuotaSkipDoesNotNotify(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.guard.blocked["google"] = true
	f.secondary.results = []provider_models.Result{
		provider_models.Success("foursquare", nearbyPlaces("foursquare", 3)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 3)

	assert.Equal(t, 0, f.primary.callCount(), "blocked provider never dispatched")
	assert.Equal(t, 0, f.guard.notifyCount("google"), "skips consume no budget")
	assert.Equal(t, 1, f.guard.notifyCount("foursquare"))
}

func TestDiscoveryCancelledContextSkipsDispatch(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	places, err := f.service.FindPlaces(ctx, nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, 0, f.primary.callCount())
	assert.Equal(t, 0, f.guard.notifyCount("google"))
}

func TestDiscoveryCachesResults(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 8)),
	}

	req := nearbyRequest(3000, "cafe")
	first, err := f.service.FindPlaces(context.Background(), req)
	require.NoError(t, err)

	// Within the TTL the providers are not consulted again.
	f.clock.Advance(1 * time.Minute)
	second, err := f.service.FindPlaces(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.primary.callCount())

	// A different radius is a different key.
	_, err = f.service.FindPlaces(context.Background(), nearbyRequest(4000, "cafe"))
	require.NoError(t, err)
	assert.Equal(t, 2, f.primary.callCount())
}

func TestDiscoveryEmptyResultShortTTL(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.NoResults("google"),
		provider_models.NoResults("google"),
		provider_models.NoResults("google"),
		provider_models.NoResults("google"),
	}

	req := nearbyRequest(3000, "cafe")
	_, err := f.service.FindPlaces(context.Background(), req)
	require.NoError(t, err)
	callsAfterFirst := f.primary.callCount()

	// Still cached a few seconds later.
	f.clock.Advance(10 * time.Second)
	_, err = f.service.FindPlaces(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, f.primary.callCount())

	// The empty entry expires quickly and the providers are retried.
	f.clock.Advance(25 * time.Second)
	_, err = f.service.FindPlaces(context.Background(), req)
	require.NoError(t, err)
	assert.Greater(t, f.primary.callCount(), callsAfterFirst)
}

func TestDiscoveryCapsResultCount(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 60)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 50)
}

func TestDiscoveryForceSupplement(t *testing.T) {
	f := newDiscoveryFixture(t, nil, func(cfg *DiscoveryConfig) { cfg.ForceSupplement = true })
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 8)),
	}
	f.secondary.results = []provider_models.Result{
		provider_models.Success("foursquare", nearbyPlaces("fsq", 2)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 10)
	assert.Equal(t, 1, f.secondary.callCount())
}

func TestDiscoveryTourismKeywordForcesSupplement(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 10)),
	}
	f.secondary.results = []provider_models.Result{
		provider_models.Success("foursquare", nearbyPlaces("foursquare", 3)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "history museum"))
	require.NoError(t, err)
	assert.Len(t, places, 13, "secondary consulted despite enough primary results")
	assert.Equal(t, 1, f.secondary.callCount())
}

func TestDiscoveryPrimaryTakeTruncates(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 30)),
	}

	places, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)
	assert.Len(t, places, 20, "primary list truncated to the configured take")
}

func TestDiscoveryTextSearchUsesQuery(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 8)),
	}

	req := nearbyRequest(3000, "")
	req.Query = "best pho in district 1"

	_, err := f.service.FindPlaces(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, f.primary.callCount())
	assert.Equal(t, "best pho in district 1", f.primary.call(0).Query)
}

func TestDiscoveryInvalidRequest(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)

	_, err := f.service.FindPlaces(context.Background(), nearbyRequest(0, "cafe"))
	assert.Error(t, err)

	bad := nearbyRequest(3000, "cafe")
	bad.Latitude = 123
	_, err = f.service.FindPlaces(context.Background(), bad)
	assert.Error(t, err)
	assert.Equal(t, 0, f.primary.callCount())
}

func TestDiscoveryRecentAttempts(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)
	f.guard.blocked["foursquare"] = true
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 3)),
	}

	_, err := f.service.FindPlaces(context.Background(), nearbyRequest(3000, "cafe"))
	require.NoError(t, err)

	attempts := f.service.RecentAttempts()
	require.Len(t, attempts, 2)
	assert.Equal(t, "google", attempts[0].Provider)
	assert.Equal(t, "success", attempts[0].Status)
	assert.Equal(t, 3, attempts[0].Count)
	assert.Equal(t, "foursquare", attempts[1].Provider)
	assert.Equal(t, "skipped_quota", attempts[1].Status)
}

func TestDiscoveryPersonalizedWithoutScorer(t *testing.T) {
	f := newDiscoveryFixture(t, nil, nil)

	_, err := f.service.FindPlacesPersonalized(context.Background(), "user-1", nearbyRequest(3000, "cafe"), testScoringContext())
	assert.Error(t, err)
}

func TestDiscoveryPersonalizedReranks(t *testing.T) {
	scorer := newTestScorer(t,
		stubScorer{score: 0.9}, stubScorer{score: 0.2}, stubScorer{score: 0.5},
		stubContextEngine{}, stubProfileRepo{}, false)

	f := newDiscoveryFixture(t, scorer, nil)
	f.primary.results = []provider_models.Result{
		provider_models.Success("google", nearbyPlaces("google", 8)),
	}

	scored, err := f.service.FindPlacesPersonalized(context.Background(), "user-1", nearbyRequest(3000, "cafe"), testScoringContext())
	require.NoError(t, err)
	require.Len(t, scored, 8)
	for _, s := range scored {
		assert.GreaterOrEqual(t, len(s.Reasons), 2)
	}

	_, err = f.service.FindPlacesPersonalized(context.Background(), "", nearbyRequest(3000, "cafe"), testScoringContext())
	assert.Error(t, err)
}
