package request_models

import "roamio/pkg/utils"

// SearchPlacesRequest carries the query parameters for both the baseline and
// the personalized discovery paths. Keyword drives nearby search; Query, when
// set, switches the primary provider to text search.
type SearchPlacesRequest struct {
	Latitude    float64
	Longitude   float64
	Radius      float64
	Keyword     string
	Query       string
	PriceLevels []int
	Debug       bool
}

func (r SearchPlacesRequest) Validate() error {
	if !utils.ValidCoordinates(r.Latitude, r.Longitude) {
		return utils.ErrInvalidCoordinates
	}
	if r.Radius <= 0 {
		return utils.ErrInvalidInput
	}
	return nil
}

// IsTextSearch reports whether the request should hit the text-search
// endpoint of the primary provider.
func (r SearchPlacesRequest) IsTextSearch() bool {
	return r.Query != ""
}
