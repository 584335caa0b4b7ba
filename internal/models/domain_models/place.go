package domain_models

import (
	"strconv"
	"strings"
	"time"
)

// Place is a point of interest discovered through one of the upstream
// providers. Coordinates are always populated; rating, categories and price
// may be absent and scoring must degrade gracefully when they are.
type Place struct {
	ID              string     `json:"id"`
	ProviderPlaceID string     `json:"provider_place_id"`
	Name            string     `json:"name"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	Categories      []string   `json:"categories,omitempty"`
	RatingText      string     `json:"rating_text,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	UserRatingsTotal int       `json:"user_ratings_total,omitempty"`
	PriceLevel      *int       `json:"price_level,omitempty"`
	Source          string     `json:"source"`
	Sponsored       bool       `json:"sponsored,omitempty"`
	SponsoredUntil  *time.Time `json:"sponsored_until,omitempty"`
	PhotoReference  string     `json:"photo_reference,omitempty"`
	Address         string     `json:"address,omitempty"`
}

// IsSponsoredAt reports whether the sponsorship flag is currently active.
func (p Place) IsSponsoredAt(now time.Time) bool {
	if !p.Sponsored {
		return false
	}
	if p.SponsoredUntil == nil {
		return true
	}
	return now.Before(*p.SponsoredUntil)
}

// HasCategory reports whether any category contains the given keyword.
func (p Place) HasCategory(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), keyword) {
			return true
		}
	}
	return false
}

// ParseRating converts the textual rating field providers return into a
// number. Returns nil when the field is empty or unparseable.
func ParseRating(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}
