package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"roamio/internal/models/domain_models"
	"roamio/internal/models/provider_models"
	"roamio/internal/models/request_models"
	"roamio/internal/providers"
	"roamio/pkg/cache"
	"roamio/pkg/utils"
)

// DiscoveryConfig tunes the provider orchestration.
type DiscoveryConfig struct {
	// PrimaryTake truncates the primary provider's result list before
	// anything else looks at it.
	PrimaryTake int
	// MinPrimaryResults is the supplement trigger: fewer primary hits than
	// this pulls in the fallback provider.
	MinPrimaryResults int
	// MaxRadiusMeters caps the single widening step.
	MaxRadiusMeters     float64
	DedupDistanceMeters float64
	MaxResults          int
	NearbyTTL           time.Duration
	TextTTL             time.Duration
	EmptyTTL            time.Duration
	// ForceSupplement always consults the fallback provider, even when the
	// primary returned enough.
	ForceSupplement bool
	TourismKeywords []string
}

func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		PrimaryTake:         20,
		MinPrimaryResults:   5,
		MaxRadiusMeters:     12000,
		DedupDistanceMeters: 100,
		MaxResults:          50,
		NearbyTTL:           5 * time.Minute,
		TextTTL:             10 * time.Minute,
		EmptyTTL:            30 * time.Second,
		TourismKeywords:     []string{"tourist", "museum", "historic", "temple", "attraction", "landmark", "gallery", "monument", "palace", "shrine"},
	}
}

// ProviderAttempt is one entry of the recent-attempt log exposed for
// operations.
type ProviderAttempt struct {
	Provider     string    `json:"provider"`
	Stage        string    `json:"stage"`
	Status       string    `json:"status"`
	Count        int       `json:"count"`
	RadiusMeters float64   `json:"radius_meters"`
	At           time.Time `json:"at"`
}

const attemptLogSize = 100

const (
	stagePrimary  = "primary"
	stageFallback = "fallback"
	stageWidened  = "widened"

	statusSkippedQuota     = "skipped_quota"
	statusSkippedCancelled = "skipped_cancelled"
)

type DiscoveryServiceInterface interface {
	FindPlaces(ctx context.Context, req request_models.SearchPlacesRequest) ([]domain_models.Place, error)
	FindPlacesPersonalized(ctx context.Context, userID string, req request_models.SearchPlacesRequest, sctx domain_models.ScoringContext) ([]domain_models.ScoredPlace, error)
	RecentAttempts() []ProviderAttempt
}

// DiscoveryService runs the primary -> fallback -> widening state machine,
// merges and ranks the unions, and caches the user-independent baseline
// list. Personalization re-ranks those cached candidates per user so the
// cache stays shareable.
type DiscoveryService struct {
	primary   providers.ProviderClient
	secondary providers.ProviderClient
	guard     QuotaGuardInterface
	merger    MergerInterface
	ranker    BaselineRankerInterface
	scorer    HybridScorerInterface
	cache     cache.PlaceCache
	cfg       DiscoveryConfig
	now       func() time.Time

	attemptMu sync.Mutex
	attempts  []ProviderAttempt
}

func NewDiscoveryService(
	primary providers.ProviderClient,
	secondary providers.ProviderClient,
	guard QuotaGuardInterface,
	merger MergerInterface,
	ranker BaselineRankerInterface,
	scorer HybridScorerInterface,
	placeCache cache.PlaceCache,
	cfg DiscoveryConfig,
	now func() time.Time,
) DiscoveryServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &DiscoveryService{
		primary:   primary,
		secondary: secondary,
		guard:     guard,
		merger:    merger,
		ranker:    ranker,
		scorer:    scorer,
		cache:     placeCache,
		cfg:       cfg,
		now:       now,
	}
}

func (s *DiscoveryService) FindPlaces(ctx context.Context, req request_models.SearchPlacesRequest) ([]domain_models.Place, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := s.cacheKey(req)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	primaryUnion, secondaryUnion := s.gather(ctx, req)

	merged := s.merger.Merge(primaryUnion, secondaryUnion, s.cfg.DedupDistanceMeters)
	ranked := s.ranker.Rank(merged, req.Latitude, req.Longitude)
	if len(ranked) > s.cfg.MaxResults {
		ranked = ranked[:s.cfg.MaxResults]
	}

	s.cache.Set(ctx, key, ranked, s.ttlFor(req, ranked))
	return ranked, nil
}

// gather runs the state machine: primary, fallback when the primary came up
// short, then one widened retry of the whole sequence when both unions are
// still empty.
func (s *DiscoveryService) gather(ctx context.Context, req request_models.SearchPlacesRequest) (primaryUnion, secondaryUnion []domain_models.Place) {
	primaryUnion, needFallback := s.callPrimary(ctx, req, stagePrimary)

	// Tourism-intent queries always get the open-data supplement: the
	// secondary provider covers long-tail sights the primary misses.
	if needFallback || s.cfg.ForceSupplement || s.isTourismQuery(req) {
		secondaryUnion = s.callSecondary(ctx, req, stageFallback)
	}

	if len(primaryUnion) > 0 || len(secondaryUnion) > 0 {
		return primaryUnion, secondaryUnion
	}

	widened, ok := s.widen(req)
	if !ok {
		return primaryUnion, secondaryUnion
	}
	log.Printf("Widening search: radius %.0f -> %.0f, keyword %q -> %q",
		req.Radius, widened.Radius, req.Keyword, widened.Keyword)

	primaryUnion, needFallback = s.callPrimary(ctx, widened, stageWidened)
	if needFallback {
		secondaryUnion = s.callSecondary(ctx, widened, stageWidened)
	}
	return primaryUnion, secondaryUnion
}

// callPrimary returns the primary places and whether the fallback provider
// should be consulted.
func (s *DiscoveryService) callPrimary(ctx context.Context, req request_models.SearchPlacesRequest, stage string) ([]domain_models.Place, bool) {
	result, dispatched := s.attempt(ctx, s.primary, req, stage)
	if !dispatched {
		return nil, true
	}

	switch result.Status {
	case provider_models.StatusSuccess:
		taken := result.Places
		if s.cfg.PrimaryTake > 0 && len(taken) > s.cfg.PrimaryTake {
			taken = taken[:s.cfg.PrimaryTake]
		}
		return taken, len(taken) < s.cfg.MinPrimaryResults
	case provider_models.StatusNoResults:
		return nil, true
	case provider_models.StatusRateLimited,
		provider_models.StatusAPIKeyInvalid,
		provider_models.StatusTimeout,
		provider_models.StatusNetworkError,
		provider_models.StatusError:
		log.Printf("Primary provider failed: %s", result)
		return nil, true
	default:
		log.Printf("Primary provider returned unknown status: %s", result)
		return nil, true
	}
}

func (s *DiscoveryService) callSecondary(ctx context.Context, req request_models.SearchPlacesRequest, stage string) []domain_models.Place {
	result, dispatched := s.attempt(ctx, s.secondary, req, stage)
	if !dispatched {
		return nil
	}
	if result.Status != provider_models.StatusSuccess {
		if result.Status != provider_models.StatusNoResults {
			log.Printf("Fallback provider failed: %s", result)
		}
		return nil
	}
	return result.Places
}

// attempt runs one guarded provider call. The quota guard is consulted
// before dispatch and notified only for dispatched calls; a skip never
// consumes budget. The per-provider degraded radius is applied here so each
// provider shrinks independently.
func (s *DiscoveryService) attempt(ctx context.Context, client providers.ProviderClient, req request_models.SearchPlacesRequest, stage string) (provider_models.Result, bool) {
	name := client.Name()

	if ctx.Err() != nil {
		s.record(name, stage, statusSkippedCancelled, 0, req.Radius)
		return provider_models.Result{}, false
	}
	if !s.guard.CanCall(name) {
		s.record(name, stage, statusSkippedQuota, 0, req.Radius)
		log.Printf("Skipping %s (%s): quota exhausted", name, stage)
		return provider_models.Result{}, false
	}

	radius := s.guard.GetDegradedRadius(name, req.Radius)
	if radius != req.Radius {
		log.Printf("Degrading %s radius %.0f -> %.0f", name, req.Radius, radius)
	}

	var result provider_models.Result
	if req.IsTextSearch() {
		result = client.SearchByText(ctx, req.Query, req.Latitude, req.Longitude, req.PriceLevels)
	} else {
		result = client.Search(ctx, req.Latitude, req.Longitude, radius, req.Keyword)
	}
	s.guard.NotifyCall(name)

	s.record(name, stage, result.Status.String(), result.Count, radius)
	return result, true
}

// widen produces the single widened retry: radius doubled and capped, the
// keyword broadened. Returns false when the radius is already at the cap and
// the keyword cannot broaden further, so widening would repeat the same call.
func (s *DiscoveryService) widen(req request_models.SearchPlacesRequest) (request_models.SearchPlacesRequest, bool) {
	widened := req
	widened.Radius = req.Radius * 2
	if widened.Radius > s.cfg.MaxRadiusMeters {
		widened.Radius = s.cfg.MaxRadiusMeters
	}
	widened.Keyword = s.broadenKeyword(req.Keyword)

	if widened.Radius == req.Radius && widened.Keyword == req.Keyword {
		return req, false
	}
	return widened, true
}

// broadenKeyword appends generic categories so the widened retry stops
// filtering on a narrow term. Idempotent: a keyword that already carries the
// broadening comes back unchanged.
func (s *DiscoveryService) broadenKeyword(keyword string) string {
	addition := "point_of_interest"
	if s.isTourismKeyword(keyword) {
		addition = "restaurant cafe tourist_attraction"
	}
	if strings.Contains(strings.ToLower(keyword), addition) {
		return keyword
	}
	if keyword == "" {
		return addition
	}
	return keyword + " " + addition
}

func (s *DiscoveryService) isTourismKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, t := range s.cfg.TourismKeywords {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func (s *DiscoveryService) isTourismQuery(req request_models.SearchPlacesRequest) bool {
	return s.isTourismKeyword(req.Keyword) || s.isTourismKeyword(req.Query)
}

func (s *DiscoveryService) FindPlacesPersonalized(ctx context.Context, userID string, req request_models.SearchPlacesRequest, sctx domain_models.ScoringContext) ([]domain_models.ScoredPlace, error) {
	if s.scorer == nil {
		return nil, utils.ErrPersonalizationUnavailable
	}
	if userID == "" {
		return nil, utils.ErrMissingUserIdentity
	}

	candidates, err := s.FindPlaces(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.scorer.ScoreAndExplain(ctx, userID, candidates, sctx)
}

// cacheKey is {operation}:{providerScope}:{keyword|queryHash}:{lat}:{lng}:{radius}.
// Free-text queries are hashed so arbitrary user text never lands in a key.
func (s *DiscoveryService) cacheKey(req request_models.SearchPlacesRequest) string {
	op := "nearby"
	term := req.Keyword
	if req.IsTextSearch() {
		op = "text"
		sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(req.Query))))
		term = hex.EncodeToString(sum[:])[:16]
	}
	if term == "" {
		term = "any"
	}
	return fmt.Sprintf("%s:hybrid:%s:%.4f:%.4f:%.0f", op, term, req.Latitude, req.Longitude, req.Radius)
}

// ttlFor keeps empty outcomes barely cached so transient provider trouble
// does not pin an empty list for minutes.
func (s *DiscoveryService) ttlFor(req request_models.SearchPlacesRequest, places []domain_models.Place) time.Duration {
	if len(places) == 0 {
		return s.cfg.EmptyTTL
	}
	if req.IsTextSearch() {
		return s.cfg.TextTTL
	}
	return s.cfg.NearbyTTL
}

func (s *DiscoveryService) record(provider, stage, status string, count int, radius float64) {
	s.attemptMu.Lock()
	defer s.attemptMu.Unlock()

	s.attempts = append(s.attempts, ProviderAttempt{
		Provider:     provider,
		Stage:        stage,
		Status:       status,
		Count:        count,
		RadiusMeters: radius,
		At:           s.now(),
	})
	if len(s.attempts) > attemptLogSize {
		s.attempts = s.attempts[len(s.attempts)-attemptLogSize:]
	}
}

func (s *DiscoveryService) RecentAttempts() []ProviderAttempt {
	s.attemptMu.Lock()
	defer s.attemptMu.Unlock()

	out := make([]ProviderAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}
