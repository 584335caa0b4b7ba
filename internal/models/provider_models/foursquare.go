package provider_models

// Wire types for the Foursquare Places v3 search API.

type FoursquareSearchResponse struct {
	Results []FoursquarePlace `json:"results"`
}

type FoursquarePlace struct {
	FsqID      string                `json:"fsq_id"`
	Name       string                `json:"name"`
	Geocodes   FoursquareGeocodes    `json:"geocodes"`
	Categories []FoursquareCategory  `json:"categories"`
	Distance   int                   `json:"distance"`
	Location   FoursquareLocation    `json:"location"`
	Rating     *float64              `json:"rating,omitempty"`
	Price      *int                  `json:"price,omitempty"`
	Stats      *FoursquarePlaceStats `json:"stats,omitempty"`
	Photos     []FoursquarePhoto     `json:"photos,omitempty"`
}

type FoursquareGeocodes struct {
	Main FoursquarePoint `json:"main"`
}

type FoursquarePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type FoursquareCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type FoursquareLocation struct {
	FormattedAddress string `json:"formatted_address"`
}

type FoursquarePlaceStats struct {
	TotalRatings int `json:"total_ratings"`
}

type FoursquarePhoto struct {
	ID     string `json:"id"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}
