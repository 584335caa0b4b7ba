package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/domain_models"
	"roamio/internal/models/request_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type stubDiscovery struct {
	places   []domain_models.Place
	scored   []domain_models.ScoredPlace
	err      error
	lastReq  request_models.SearchPlacesRequest
	attempts []services.ProviderAttempt
}

func (s *stubDiscovery) FindPlaces(_ context.Context, req request_models.SearchPlacesRequest) ([]domain_models.Place, error) {
	s.lastReq = req
	return s.places, s.err
}

func (s *stubDiscovery) FindPlacesPersonalized(_ context.Context, userID string, req request_models.SearchPlacesRequest, _ domain_models.ScoringContext) ([]domain_models.ScoredPlace, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.scored, nil
}

func (s *stubDiscovery) RecentAttempts() []services.ProviderAttempt { return s.attempts }

func placesRouter(stub *stubDiscovery) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewPlacesController(stub)
	r.GET("/places/search", controller.SearchPlaces)
	return r
}

func TestSearchPlacesOK(t *testing.T) {
	stub := &stubDiscovery{places: []domain_models.Place{
		{ID: "1", Name: "Cafe Istanbul", Latitude: 41.0, Longitude: 28.97, Source: "google"},
	}}
	router := placesRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/places/search?lat=41.0&lng=28.97&radius=2500&keyword=cafe&price_levels=1,2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)

	assert.Equal(t, 2500.0, stub.lastReq.Radius)
	assert.Equal(t, "cafe", stub.lastReq.Keyword)
	assert.Equal(t, []int{1, 2}, stub.lastReq.PriceLevels)
}

func TestSearchPlacesDefaultsRadius(t *testing.T) {
	stub := &stubDiscovery{}
	router := placesRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?lat=41.0&lng=28.97", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3000.0, stub.lastReq.Radius)
}

func TestSearchPlacesRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"missing lat":      "/places/search?lng=28.97",
		"bad lat":          "/places/search?lat=abc&lng=28.97",
		"out of range lat": "/places/search?lat=123&lng=28.97",
		"bad radius":       "/places/search?lat=41.0&lng=28.97&radius=-5",
		"bad price level":  "/places/search?lat=41.0&lng=28.97&price_levels=9",
	}

	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			router := placesRouter(&stubDiscovery{})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSearchPlacesServiceError(t *testing.T) {
	stub := &stubDiscovery{err: utils.ErrInvalidCoordinates}
	router := placesRouter(stub)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?lat=41.0&lng=28.97", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
