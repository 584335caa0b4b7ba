package services

import (
	"context"
	"strings"

	"roamio/internal/models/domain_models"
	"roamio/internal/repositories"
	"roamio/pkg/utils"
)

// visit-history smoothing: three overlapping visits already reach 0.5.
const implicitSmoothing = 3.0

// ImplicitScorer derives affinity from the user's visit history. A place
// scores high when its categories overlap what the user actually goes to.
type ImplicitScorer struct {
	visits repositories.VisitHistoryRepository
	limit  int
}

func NewImplicitScorer(visits repositories.VisitHistoryRepository) ImplicitScorerInterface {
	return &ImplicitScorer{visits: visits, limit: 100}
}

func (s *ImplicitScorer) Score(ctx context.Context, userID string, place domain_models.Place) (float64, error) {
	visits, err := s.visits.ListRecentByUser(ctx, userID, s.limit)
	if err != nil {
		return 0, err
	}
	if len(visits) == 0 {
		return 0, nil
	}

	overlap := 0.0
	for _, v := range visits {
		if categoriesOverlap(place.Categories, v.Categories) {
			overlap++
		}
	}

	return utils.Clamp01(overlap / (overlap + implicitSmoothing)), nil
}

func categoriesOverlap(a, b []string) bool {
	for _, ca := range a {
		for _, cb := range b {
			la, lb := strings.ToLower(ca), strings.ToLower(cb)
			if la == lb || strings.Contains(la, lb) || strings.Contains(lb, la) {
				return true
			}
		}
	}
	return false
}
