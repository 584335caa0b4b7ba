package services

import (
	"fmt"
	"sort"
	"strings"

	"roamio/internal/models/domain_models"
	"roamio/pkg/utils"
)

const (
	minReasons              = 2
	maxReasons              = 4
	contributionFloor       = 0.05
	strongInterestThreshold = 0.6
	genericReason           = "Recommended based on your overall preferences"
)

type ExplainerInterface interface {
	BuildReasons(place domain_models.Place, breakdown domain_models.ScoreBreakdown, profile *domain_models.TasteProfile, sctx domain_models.ScoringContext, contextReasons []string) []string
}

// Explainer turns a score breakdown into 2-4 human readable reasons. Only
// dimensions that actually moved the score get a voice; ties are broken by
// the breakdown's fixed dimension order so output stays deterministic.
type Explainer struct{}

func NewExplainer() ExplainerInterface {
	return &Explainer{}
}

func (e *Explainer) BuildReasons(place domain_models.Place, breakdown domain_models.ScoreBreakdown, profile *domain_models.TasteProfile, sctx domain_models.ScoringContext, contextReasons []string) []string {
	components := breakdown.Components()
	sort.SliceStable(components, func(a, b int) bool {
		return components[a].Component.Contribution() > components[b].Component.Contribution()
	})

	reasons := make([]string, 0, maxReasons)
	seen := make(map[string]bool)
	add := func(r string) {
		if r == "" || seen[r] || len(reasons) >= maxReasons {
			return
		}
		seen[r] = true
		reasons = append(reasons, r)
	}

	dims := 0
	for _, nc := range components {
		if nc.Component.Contribution() <= contributionFloor || dims >= maxReasons {
			continue
		}
		dims++
		switch nc.Name {
		case "implicit":
			add(e.implicitReason(place, nc.Component.Score, profile))
		case "explicit":
			for _, r := range e.explicitReasons(place, profile) {
				add(r)
			}
		case "novelty":
			add(e.noveltyReason(nc.Component.Score))
		case "context":
			for _, r := range contextReasons {
				add(r)
			}
		case "quality":
			for _, r := range e.qualityReasons(place, sctx) {
				add(r)
			}
		}
	}

	for len(reasons) < minReasons {
		if seen[genericReason] {
			add("Popular with visitors in this area")
			break
		}
		add(genericReason)
	}

	return reasons
}

func (e *Explainer) implicitReason(place domain_models.Place, score float64, profile *domain_models.TasteProfile) string {
	if score > 0.7 {
		return "Similar to places you have visited before"
	}
	if profile == nil {
		return ""
	}
	for _, cuisine := range profile.FavoriteCuisines {
		if matchesPlace(place, cuisine) {
			return fmt.Sprintf("You often go for %s spots", strings.ToLower(cuisine))
		}
	}
	for _, activity := range profile.FavoriteActivities {
		if matchesPlace(place, activity) {
			return fmt.Sprintf("Fits your taste for %s", strings.ToLower(activity))
		}
	}
	return ""
}

func (e *Explainer) explicitReasons(place domain_models.Place, profile *domain_models.TasteProfile) []string {
	if profile == nil {
		return nil
	}
	var out []string

	interests := make([]string, 0, len(profile.Interests))
	for interest := range profile.Interests {
		interests = append(interests, interest)
	}
	sort.Strings(interests)
	for _, interest := range interests {
		if profile.Interests[interest] > strongInterestThreshold && matchesPlace(place, interest) {
			out = append(out, fmt.Sprintf("Matches your interest in %s", strings.ToLower(interest)))
			break
		}
	}

	if profile.QualityPreference > strongInterestThreshold && place.Rating != nil && *place.Rating >= 4.5 {
		out = append(out, "Meets your bar for highly rated spots")
	}
	if profile.CalmnessPreference > strongInterestThreshold && isCalmVenue(place) {
		out = append(out, "A quiet spot, the way you like it")
	}
	return out
}

func (e *Explainer) noveltyReason(score float64) string {
	if score > 0.7 {
		return "Somewhere new for you to try"
	}
	if score > 0.5 {
		return "A chance to explore beyond your usual spots"
	}
	return ""
}

func (e *Explainer) qualityReasons(place domain_models.Place, sctx domain_models.ScoringContext) []string {
	var out []string
	if place.Rating != nil && *place.Rating >= 4.5 {
		if place.UserRatingsTotal >= 100 {
			out = append(out, "Highly rated and popular")
		} else {
			out = append(out, "Highly rated")
		}
	}
	dist := utils.HaversineMeters(sctx.UserLat, sctx.UserLng, place.Latitude, place.Longitude)
	switch {
	case dist < 500:
		out = append(out, "Very close to you")
	case dist < 1000:
		out = append(out, "Close by")
	}
	return out
}

func matchesPlace(place domain_models.Place, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false
	}
	if strings.Contains(strings.ToLower(place.Name), keyword) {
		return true
	}
	return place.HasCategory(keyword)
}

var calmCategories = []string{"park", "garden", "library", "museum", "temple", "gallery", "spa"}

func isCalmVenue(place domain_models.Place) bool {
	for _, c := range calmCategories {
		if place.HasCategory(c) {
			return true
		}
	}
	return false
}
