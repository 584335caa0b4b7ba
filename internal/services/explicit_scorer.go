package services

import (
	"context"
	"log"
	"strings"

	"roamio/internal/models/domain_models"
	"roamio/internal/repositories"
	"roamio/pkg/utils"
)

// ExplicitScorer matches a place against the user's declared taste profile.
// When an embedding client is wired it additionally checks the place's
// categories against the user's stored interest embeddings, which catches
// matches keyword overlap misses ("izakaya" vs "japanese food").
type ExplicitScorer struct {
	profiles   repositories.TasteProfileRepository
	embeddings repositories.InterestEmbeddingRepository
	embedder   utils.EmbeddingClientInterface
}

func NewExplicitScorer(
	profiles repositories.TasteProfileRepository,
	embeddings repositories.InterestEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
) ExplicitScorerInterface {
	return &ExplicitScorer{profiles: profiles, embeddings: embeddings, embedder: embedder}
}

func (s *ExplicitScorer) Score(ctx context.Context, userID string, place domain_models.Place) (float64, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, nil
	}

	score := s.keywordScore(place, profile)

	// Embedding lookup failures only cost the semantic boost, never the call.
	if boost := s.embeddingBoost(ctx, userID, place); boost > score {
		score = boost
	}

	return utils.Clamp01(score), nil
}

// keywordScore averages the weights of interests that match the place by
// name or category substring.
func (s *ExplicitScorer) keywordScore(place domain_models.Place, profile *domain_models.TasteProfile) float64 {
	total := 0.0
	matched := 0
	for interest, weight := range profile.Interests {
		if matchesPlace(place, interest) {
			total += weight
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return total / float64(matched)
}

func (s *ExplicitScorer) embeddingBoost(ctx context.Context, userID string, place domain_models.Place) float64 {
	if s.embedder == nil || s.embeddings == nil || len(place.Categories) == 0 {
		return 0
	}

	text := strings.Join(place.Categories, " ")
	vector, err := s.embedder.GetEmbedding(ctx, text)
	if err != nil {
		log.Printf("Embedding failed for categories %q: %v", text, err)
		return 0
	}

	nearest, err := s.embeddings.GetNearestByVector(userID, vector, 3)
	if err != nil {
		log.Printf("Nearest-interest lookup failed for %s: %v", userID, err)
		return 0
	}

	best := 0.0
	for _, e := range nearest {
		if e.Weight > best {
			best = e.Weight
		}
	}
	return best
}
