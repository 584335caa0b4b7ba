package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"roamio/internal/models/domain_models"
	"roamio/internal/repositories"
	"roamio/pkg/utils"
)

// Collaborator contracts for the personalized scorer. Each returns a score
// normalized to [0,1]; the context engine returns the matched contextual
// reasons instead, which the scorer maps into a score.
type ImplicitScorerInterface interface {
	Score(ctx context.Context, userID string, place domain_models.Place) (float64, error)
}

type ExplicitScorerInterface interface {
	Score(ctx context.Context, userID string, place domain_models.Place) (float64, error)
}

type NoveltyScorerInterface interface {
	Score(ctx context.Context, userID string, place domain_models.Place) (float64, error)
}

type ContextEngineInterface interface {
	MatchReasons(ctx context.Context, place domain_models.Place, sctx domain_models.ScoringContext) ([]string, error)
}

// ScoringWeights configures the five hybrid dimensions. They need not sum to
// 1, but must be consistent across the process.
type ScoringWeights struct {
	Implicit float64
	Explicit float64
	Novelty  float64
	Context  float64
	Quality  float64
}

func (w ScoringWeights) Validate() error {
	for name, v := range map[string]float64{
		"implicit": w.Implicit,
		"explicit": w.Explicit,
		"novelty":  w.Novelty,
		"context":  w.Context,
		"quality":  w.Quality,
	} {
		if v <= 0 {
			return fmt.Errorf("scoring weight %q missing or non-positive: %f", name, v)
		}
	}
	return nil
}

func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Implicit: 0.25,
		Explicit: 0.25,
		Novelty:  0.15,
		Context:  0.15,
		Quality:  0.20,
	}
}

// QualityConfig tunes the locally computed quality dimension.
type QualityConfig struct {
	ReviewSmoothing        float64
	NoPenaltyRadiusMeters  float64
	MaxPenaltyRadiusMeters float64
}

func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		ReviewSmoothing:        20,
		NoPenaltyRadiusMeters:  1000,
		MaxPenaltyRadiusMeters: 5000,
	}
}

type HybridScorerInterface interface {
	ScoreAndExplain(ctx context.Context, userID string, candidates []domain_models.Place, sctx domain_models.ScoringContext) ([]domain_models.ScoredPlace, error)
}

type HybridScorer struct {
	implicit      ImplicitScorerInterface
	explicit      ExplicitScorerInterface
	novelty       NoveltyScorerInterface
	contextEngine ContextEngineInterface
	profileRepo   repositories.TasteProfileRepository
	explainer     ExplainerInterface
	weights       ScoringWeights
	quality       QualityConfig
	debug         bool
}

func NewHybridScorer(
	implicit ImplicitScorerInterface,
	explicit ExplicitScorerInterface,
	novelty NoveltyScorerInterface,
	contextEngine ContextEngineInterface,
	profileRepo repositories.TasteProfileRepository,
	explainer ExplainerInterface,
	weights ScoringWeights,
	quality QualityConfig,
	debug bool,
) (HybridScorerInterface, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if quality.ReviewSmoothing <= 0 || quality.MaxPenaltyRadiusMeters <= quality.NoPenaltyRadiusMeters {
		return nil, fmt.Errorf("invalid quality config: %+v", quality)
	}
	return &HybridScorer{
		implicit:      implicit,
		explicit:      explicit,
		novelty:       novelty,
		contextEngine: contextEngine,
		profileRepo:   profileRepo,
		explainer:     explainer,
		weights:       weights,
		quality:       quality,
		debug:         debug,
	}, nil
}

func (h *HybridScorer) ScoreAndExplain(ctx context.Context, userID string, candidates []domain_models.Place, sctx domain_models.ScoringContext) ([]domain_models.ScoredPlace, error) {
	if userID == "" {
		return nil, utils.ErrMissingUserIdentity
	}

	profile, err := h.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("Error loading taste profile for %s: %v", userID, err)
		profile = nil
	}

	scored := make([]domain_models.ScoredPlace, 0, len(candidates))
	for _, place := range candidates {
		breakdown, contextReasons := h.scorePlace(ctx, userID, place, sctx)
		reasons := h.explainer.BuildReasons(place, breakdown, profile, sctx, contextReasons)

		sp := domain_models.ScoredPlace{
			Place:      place,
			FinalScore: breakdown.FinalScore(),
			Reasons:    reasons,
		}
		if h.debug {
			b := breakdown
			sp.Breakdown = &b
		}
		scored = append(scored, sp)
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].FinalScore > scored[b].FinalScore
	})

	return scored, nil
}

// scorePlace consults each collaborator; a failing collaborator contributes
// zero rather than failing the request.
func (h *HybridScorer) scorePlace(ctx context.Context, userID string, place domain_models.Place, sctx domain_models.ScoringContext) (domain_models.ScoreBreakdown, []string) {
	implicit := h.collaboratorScore(ctx, "implicit", userID, place, h.implicit.Score)
	explicit := h.collaboratorScore(ctx, "explicit", userID, place, h.explicit.Score)
	novelty := h.collaboratorScore(ctx, "novelty", userID, place, h.novelty.Score)

	contextReasons, err := h.contextEngine.MatchReasons(ctx, place, sctx)
	if err != nil {
		log.Printf("Context engine error for %s: %v", place.Name, err)
		contextReasons = nil
	}
	contextScore := utils.Clamp01(0.5 + 0.1*float64(len(contextReasons)))
	if len(contextReasons) == 0 {
		contextScore = 0.5
	}

	breakdown := domain_models.ScoreBreakdown{
		Implicit: domain_models.ScoreComponent{Score: implicit, Weight: h.weights.Implicit},
		Explicit: domain_models.ScoreComponent{Score: explicit, Weight: h.weights.Explicit},
		Novelty:  domain_models.ScoreComponent{Score: novelty, Weight: h.weights.Novelty},
		Context:  domain_models.ScoreComponent{Score: contextScore, Weight: h.weights.Context},
		Quality:  domain_models.ScoreComponent{Score: h.qualityScore(place, sctx), Weight: h.weights.Quality},
	}
	return breakdown, contextReasons
}

func (h *HybridScorer) collaboratorScore(ctx context.Context, name, userID string, place domain_models.Place, fn func(context.Context, string, domain_models.Place) (float64, error)) float64 {
	score, err := fn(ctx, userID, place)
	if err != nil {
		log.Printf("%s scorer error for %s: %v", name, place.Name, err)
		return 0
	}
	return utils.Clamp01(score)
}

// qualityScore combines rating confidence and distance decay. The review
// count shrinks the rating's influence so a 5.0 with three reviews does not
// outrank a 4.6 with a thousand.
func (h *HybridScorer) qualityScore(place domain_models.Place, sctx domain_models.ScoringContext) float64 {
	normalizedRating := 0.0
	if place.Rating != nil {
		normalizedRating = *place.Rating / 5
	}
	reviewConfidence := float64(place.UserRatingsTotal) / (float64(place.UserRatingsTotal) + h.quality.ReviewSmoothing)

	dist := utils.HaversineMeters(sctx.UserLat, sctx.UserLng, place.Latitude, place.Longitude)
	decay := h.distanceDecay(dist)

	return utils.Clamp01(0.5 + 0.4*(normalizedRating*reviewConfidence) + 0.6*decay)
}

func (h *HybridScorer) distanceDecay(dist float64) float64 {
	switch {
	case dist <= h.quality.NoPenaltyRadiusMeters:
		return 1
	case dist >= h.quality.MaxPenaltyRadiusMeters:
		return 0
	default:
		span := h.quality.MaxPenaltyRadiusMeters - h.quality.NoPenaltyRadiusMeters
		return 1 - (dist-h.quality.NoPenaltyRadiusMeters)/span
	}
}
