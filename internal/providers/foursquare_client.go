package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"roamio/internal/models/domain_models"
	"roamio/internal/models/provider_models"
)

const (
	FoursquareProviderName   = "foursquare"
	defaultFoursquareBaseURL = "https://api.foursquare.com/v3/places"
)

type FoursquareClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewFoursquareClient(cfg ClientConfig) *FoursquareClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultFoursquareBaseURL
	}
	timeout := 10 * time.Second
	if cfg.HTTPTimeout > 0 {
		timeout = time.Duration(cfg.HTTPTimeout) * time.Second
	}
	return &FoursquareClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *FoursquareClient) Name() string { return FoursquareProviderName }

func (c *FoursquareClient) Search(ctx context.Context, lat, lng, radius float64, keyword string) provider_models.Result {
	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", strconv.Itoa(int(radius)))
	if keyword != "" {
		params.Set("query", keyword)
	}
	params.Set("limit", "50")

	return c.doSearch(ctx, params)
}

func (c *FoursquareClient) SearchByText(ctx context.Context, query string, lat, lng float64, priceLevels []int) provider_models.Result {
	params := url.Values{}
	params.Set("query", query)
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("limit", "50")
	if len(priceLevels) > 0 {
		minPrice, maxPrice := priceLevels[0], priceLevels[0]
		for _, p := range priceLevels[1:] {
			if p < minPrice {
				minPrice = p
			}
			if p > maxPrice {
				maxPrice = p
			}
		}
		params.Set("min_price", strconv.Itoa(minPrice))
		params.Set("max_price", strconv.Itoa(maxPrice))
	}

	return c.doSearch(ctx, params)
}

func (c *FoursquareClient) doSearch(ctx context.Context, params url.Values) provider_models.Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return provider_models.Error(c.Name(), err.Error(), 0)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(c.Name(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return provider_models.RateLimited(c.Name(), "http 429", resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized:
		return provider_models.APIKeyInvalid(c.Name(), resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return provider_models.Error(c.Name(), fmt.Sprintf("unexpected http status %d", resp.StatusCode), resp.StatusCode)
	}

	var body provider_models.FoursquareSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return provider_models.Error(c.Name(), "invalid response body: "+err.Error(), resp.StatusCode)
	}

	if len(body.Results) == 0 {
		return provider_models.NoResults(c.Name())
	}
	return provider_models.Success(c.Name(), c.mapResults(body.Results))
}

func (c *FoursquareClient) mapResults(results []provider_models.FoursquarePlace) []domain_models.Place {
	places := make([]domain_models.Place, 0, len(results))
	for _, r := range results {
		place := domain_models.Place{
			ProviderPlaceID: r.FsqID,
			Name:            r.Name,
			Latitude:        r.Geocodes.Main.Latitude,
			Longitude:       r.Geocodes.Main.Longitude,
			PriceLevel:      r.Price,
			Source:          c.Name(),
			Address:         r.Location.FormattedAddress,
		}
		for _, cat := range r.Categories {
			place.Categories = append(place.Categories, cat.Name)
		}
		if r.Rating != nil {
			// Foursquare rates 0-10; normalize to the 0-5 scale Google uses.
			place.RatingText = strconv.FormatFloat(*r.Rating/2, 'f', 1, 64)
			place.Rating = domain_models.ParseRating(place.RatingText)
		}
		if r.Stats != nil {
			place.UserRatingsTotal = r.Stats.TotalRatings
		}
		if len(r.Photos) > 0 {
			place.PhotoReference = r.Photos[0].Prefix + "original" + r.Photos[0].Suffix
		}
		places = append(places, place)
	}
	return places
}
