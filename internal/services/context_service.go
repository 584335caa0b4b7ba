package services

import (
	"context"
	"strings"

	"roamio/internal/models/domain_models"
)

// contextRule fires a human-readable reason when the request-time signals
// and the place's categories line up.
type contextRule struct {
	matches func(place domain_models.Place, sctx domain_models.ScoringContext) bool
	reason  string
}

// ContextEngine is a pure rule matcher over time of day, weather and season.
// Weather and season come from the caller; the engine never does lookups.
type ContextEngine struct {
	rules []contextRule
}

func NewContextEngine() ContextEngineInterface {
	return &ContextEngine{rules: defaultContextRules()}
}

func (e *ContextEngine) MatchReasons(ctx context.Context, place domain_models.Place, sctx domain_models.ScoringContext) ([]string, error) {
	var reasons []string
	for _, rule := range e.rules {
		if rule.matches(place, sctx) {
			reasons = append(reasons, rule.reason)
		}
	}
	return reasons, nil
}

func defaultContextRules() []contextRule {
	anyCategory := func(place domain_models.Place, categories ...string) bool {
		for _, c := range categories {
			if place.HasCategory(c) {
				return true
			}
		}
		return false
	}
	weatherIs := func(sctx domain_models.ScoringContext, kinds ...string) bool {
		w := strings.ToLower(sctx.Weather)
		for _, k := range kinds {
			if strings.Contains(w, k) {
				return true
			}
		}
		return false
	}

	return []contextRule{
		{
			reason: "Great for a morning coffee",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				return s.TimeOfDay == "morning" && anyCategory(p, "cafe", "coffee", "bakery")
			},
		},
		{
			reason: "Good lunch option right now",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				return s.TimeOfDay == "lunch" && anyCategory(p, "restaurant", "food")
			},
		},
		{
			reason: "Nice way to spend the afternoon",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				return s.TimeOfDay == "afternoon" && anyCategory(p, "museum", "gallery", "park", "attraction")
			},
		},
		{
			reason: "Nice for the evening",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				return s.TimeOfDay == "evening" && anyCategory(p, "bar", "pub", "restaurant", "night")
			},
		},
		{
			reason: "A good indoor option for today's weather",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				return weatherIs(s, "rain", "snow", "storm") &&
					anyCategory(p, "museum", "gallery", "mall", "cinema", "cafe", "restaurant", "library")
			},
		},
		{
			reason: "Great weather to be outdoors",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				return weatherIs(s, "clear", "sun") &&
					anyCategory(p, "park", "garden", "beach", "trail", "viewpoint", "outdoor")
			},
		},
		{
			reason: "In season right now",
			matches: func(p domain_models.Place, s domain_models.ScoringContext) bool {
				season := strings.ToLower(s.Season)
				switch season {
				case "summer":
					return anyCategory(p, "beach", "ice cream", "pool")
				case "winter":
					return anyCategory(p, "hot pot", "sauna", "ski")
				default:
					return false
				}
			},
		},
	}
}
