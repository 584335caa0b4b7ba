package provider_models

// Wire types for the Google Places REST API. Nearby and text search share the
// same response envelope.

type GooglePlacesResponse struct {
	HTMLAttributions []string            `json:"html_attributions"`
	NextPageToken    string              `json:"next_page_token"`
	Results          []GooglePlaceResult `json:"results"`
	Status           string              `json:"status"`
	ErrorMessage     string              `json:"error_message,omitempty"`
}

type GooglePlaceResult struct {
	BusinessStatus   *string             `json:"business_status,omitempty"`
	Geometry         GoogleGeometry      `json:"geometry"`
	Name             string              `json:"name"`
	OpeningHours     *GoogleOpeningHours `json:"opening_hours,omitempty"`
	Photos           []GooglePhoto       `json:"photos,omitempty"`
	PlaceID          string              `json:"place_id"`
	PriceLevel       *int                `json:"price_level,omitempty"`
	Rating           *float64            `json:"rating,omitempty"`
	Types            []string            `json:"types"`
	UserRatingsTotal *int                `json:"user_ratings_total,omitempty"`
	Vicinity         *string             `json:"vicinity,omitempty"`
	FormattedAddress *string             `json:"formatted_address,omitempty"`
}

type GoogleGeometry struct {
	Location GoogleLocation `json:"location"`
}

type GoogleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GoogleOpeningHours struct {
	OpenNow bool `json:"open_now"`
}

type GooglePhoto struct {
	Height         int    `json:"height"`
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
}
