package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"roamio/internal/models/domain_models"
	"roamio/internal/models/provider_models"
)

const (
	GoogleProviderName   = "google"
	defaultGoogleBaseURL = "https://maps.googleapis.com/maps/api/place"
)

type GooglePlacesClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewGooglePlacesClient(cfg ClientConfig) *GooglePlacesClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	timeout := 10 * time.Second
	if cfg.HTTPTimeout > 0 {
		timeout = time.Duration(cfg.HTTPTimeout) * time.Second
	}
	return &GooglePlacesClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *GooglePlacesClient) Name() string { return GoogleProviderName }

func (c *GooglePlacesClient) Search(ctx context.Context, lat, lng, radius float64, keyword string) provider_models.Result {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", strconv.Itoa(int(radius)))
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	params.Set("key", c.apiKey)

	return c.doSearch(ctx, c.baseURL+"/nearbysearch/json?"+params.Encode())
}

func (c *GooglePlacesClient) SearchByText(ctx context.Context, query string, lat, lng float64, priceLevels []int) provider_models.Result {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("key", c.apiKey)
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
		params.Set("minprice", strconv.Itoa(minPrice))
		params.Set("maxprice", strconv.Itoa(maxPrice))
	}

	return c.doSearch(ctx, c.baseURL+"/textsearch/json?"+params.Encode())
}

func (c *GooglePlacesClient) doSearch(ctx context.Context, fullURL string) provider_models.Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return provider_models.Error(c.Name(), err.Error(), 0)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(c.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return provider_models.RateLimited(c.Name(), "http 429", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return provider_models.APIKeyInvalid(c.Name(), resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return provider_models.Error(c.Name(), fmt.Sprintf("unexpected http status %d", resp.StatusCode), resp.StatusCode)
	}

	var body provider_models.GooglePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return provider_models.Error(c.Name(), "invalid response body: "+err.Error(), resp.StatusCode)
	}

	switch body.Status {
	case "OK":
		return provider_models.Success(c.Name(), c.mapResults(body.Results))
	case "ZERO_RESULTS":
		return provider_models.NoResults(c.Name())
	case "OVER_QUERY_LIMIT":
		return provider_models.RateLimited(c.Name(), body.ErrorMessage, resp.StatusCode)
	case "REQUEST_DENIED":
		return provider_models.APIKeyInvalid(c.Name(), resp.StatusCode)
	default:
		return provider_models.Error(c.Name(), fmt.Sprintf("status %s: %s", body.Status, body.ErrorMessage), resp.StatusCode)
	}
}

func (c *GooglePlacesClient) mapResults(results []provider_models.GooglePlaceResult) []domain_models.Place {
	places := make([]domain_models.Place, 0, len(results))
	for _, r := range results {
		place := domain_models.Place{
			ProviderPlaceID: r.PlaceID,
			Name:            r.Name,
			Latitude:        r.Geometry.Location.Lat,
			Longitude:       r.Geometry.Location.Lng,
			Categories:      r.Types,
			PriceLevel:      r.PriceLevel,
			Source:          c.Name(),
		}
		if r.Rating != nil {
			place.RatingText = strconv.FormatFloat(*r.Rating, 'f', 1, 64)
			place.Rating = domain_models.ParseRating(place.RatingText)
		}
		if r.UserRatingsTotal != nil {
			place.UserRatingsTotal = *r.UserRatingsTotal
		}
		if len(r.Photos) > 0 {
			place.PhotoReference = r.Photos[0].PhotoReference
		}
		if r.Vicinity != nil {
			place.Address = *r.Vicinity
		} else if r.FormattedAddress != nil {
			place.Address = *r.FormattedAddress
		}
		places = append(places, place)
	}
	return places
}

// classifyTransportError splits transport failures into the timeout and
// network variants of the result protocol.
func classifyTransportError(provider string, err error) provider_models.Result {
	if errors.Is(err, context.DeadlineExceeded) {
		return provider_models.Timeout(provider)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return provider_models.Timeout(provider)
	}
	return provider_models.NetworkError(provider, err.Error())
}
