package services

import (
	"sort"
	"time"

	"roamio/internal/models/domain_models"
	"roamio/pkg/utils"
)

// Baseline ranking weights. Proximity dominates; the fixed baseline stands in
// for review volume until that signal is measured.
const (
	proximityCutoffMeters = 5000.0
	proximityWeight       = 0.4
	ratingWeight          = 0.2
	fixedBaseline         = 0.1
	primarySourceBonus    = 0.25
	secondarySourceBonus  = 0.15
	sponsoredBonus        = 0.1
	unsponsoredBonus      = 0.05
)

type BaselineRankerInterface interface {
	Rank(places []domain_models.Place, originLat, originLng float64) []domain_models.Place
}

// BaselineRanker orders places by distance, rating, source trust and
// sponsorship. Used whenever no personalization context exists.
type BaselineRanker struct {
	primaryProvider string
	now             func() time.Time
}

func NewBaselineRanker(primaryProvider string, now func() time.Time) BaselineRankerInterface {
	if now == nil {
		now = time.Now
	}
	return &BaselineRanker{primaryProvider: primaryProvider, now: now}
}

// Rank is pure and deterministic for a fixed input: the stable sort keeps
// equal-score places in input order.
func (r *BaselineRanker) Rank(places []domain_models.Place, originLat, originLng float64) []domain_models.Place {
	now := r.now()

	ranked := make([]domain_models.Place, len(places))
	copy(ranked, places)

	scores := make(map[int]float64, len(ranked))
	for i, p := range ranked {
		scores[i] = r.score(p, originLat, originLng, now)
	}

	indexed := make([]int, len(ranked))
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return scores[indexed[a]] > scores[indexed[b]]
	})

	out := make([]domain_models.Place, len(ranked))
	for i, idx := range indexed {
		out[i] = ranked[idx]
	}
	return out
}

func (r *BaselineRanker) score(p domain_models.Place, originLat, originLng float64, now time.Time) float64 {
	score := fixedBaseline

	dist := utils.HaversineMeters(originLat, originLng, p.Latitude, p.Longitude)
	proximity := 1 - dist/proximityCutoffMeters
	if proximity < 0 {
		proximity = 0
	}
	score += proximity * proximityWeight

	if p.Rating != nil {
		score += (*p.Rating / 5) * ratingWeight
	}

	if p.Source == r.primaryProvider {
		score += primarySourceBonus
	} else {
		score += secondarySourceBonus
	}

	if p.IsSponsoredAt(now) {
		score += sponsoredBonus
	} else {
		score += unsponsoredBonus
	}

	return score
}
