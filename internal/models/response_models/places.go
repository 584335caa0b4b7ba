package response_models

import "roamio/internal/models/domain_models"

type PlaceResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Categories     []string `json:"categories,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	PriceLevel     *int     `json:"price_level,omitempty"`
	Source         string   `json:"source"`
	Sponsored      bool     `json:"sponsored,omitempty"`
	PhotoReference string   `json:"photo_reference,omitempty"`
	Address        string   `json:"address,omitempty"`
}

type ScoredPlaceResponse struct {
	PlaceResponse
	FinalScore float64                        `json:"final_score"`
	Reasons    []string                       `json:"reasons"`
	Breakdown  *domain_models.ScoreBreakdown  `json:"breakdown,omitempty"`
}

func BuildPlaceResponse(p domain_models.Place) PlaceResponse {
	return PlaceResponse{
		ID:             p.ID,
		Name:           p.Name,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Categories:     p.Categories,
		Rating:         p.Rating,
		PriceLevel:     p.PriceLevel,
		Source:         p.Source,
		Sponsored:      p.Sponsored,
		PhotoReference: p.PhotoReference,
		Address:        p.Address,
	}
}

func BuildPlaceResponses(places []domain_models.Place) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		out = append(out, BuildPlaceResponse(p))
	}
	return out
}

func BuildScoredPlaceResponses(scored []domain_models.ScoredPlace) []ScoredPlaceResponse {
	out := make([]ScoredPlaceResponse, 0, len(scored))
	for _, s := range scored {
		out = append(out, ScoredPlaceResponse{
			PlaceResponse: BuildPlaceResponse(s.Place),
			FinalScore:    s.FinalScore,
			Reasons:       s.Reasons,
			Breakdown:     s.Breakdown,
		})
	}
	return out
}
