package services

import (
	"context"

	"roamio/internal/models/domain_models"
	"roamio/internal/repositories"
	"roamio/pkg/utils"
)

const (
	repeatVisitPenalty   = 0.5
	sameCategoryPenalty  = 0.05
	noveltyHistoryWindow = 50
)

// NoveltyScorer rewards places the user has not been to. Direct repeat
// visits cost the most; recent visits to the same kind of place cost a
// little each, so a run of coffee shops pushes yet another cafe down.
type NoveltyScorer struct {
	visits repositories.VisitHistoryRepository
}

func NewNoveltyScorer(visits repositories.VisitHistoryRepository) NoveltyScorerInterface {
	return &NoveltyScorer{visits: visits}
}

func (s *NoveltyScorer) Score(ctx context.Context, userID string, place domain_models.Place) (float64, error) {
	repeats, err := s.visits.CountByUserAndPlace(ctx, userID, place.ProviderPlaceID)
	if err != nil {
		return 0, err
	}

	recent, err := s.visits.ListRecentByUser(ctx, userID, noveltyHistoryWindow)
	if err != nil {
		return 0, err
	}
	sameCategory := 0
	for _, v := range recent {
		if categoriesOverlap(place.Categories, v.Categories) {
			sameCategory++
		}
	}

	score := 1.0 - repeatVisitPenalty*float64(repeats) - sameCategoryPenalty*float64(sameCategory)
	return utils.Clamp01(score), nil
}
