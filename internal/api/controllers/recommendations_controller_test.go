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

func recommendationsRouter(stub services.DiscoveryServiceInterface, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	controller := NewRecommendationsController(stub)
	r.GET("/recommendations", controller.GetRecommendations)
	return r
}

func TestGetRecommendationsPersonalized(t *testing.T) {
	breakdown := &domain_models.ScoreBreakdown{}
	stub := &stubDiscovery{scored: []domain_models.ScoredPlace{
		{
			Place:      domain_models.Place{ID: "1", Name: "Cafe", Source: "google"},
			FinalScore: 0.8,
			Reasons:    []string{"Highly rated", "Close by"},
			Breakdown:  breakdown,
		},
	}}
	router := recommendationsRouter(stub, "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations?lat=41.0&lng=28.97", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "personalized", data["mode"])

	// Breakdown is stripped outside debug mode.
	places := data["places"].([]interface{})
	first := places[0].(map[string]interface{})
	_, hasBreakdown := first["breakdown"]
	assert.False(t, hasBreakdown)
}

func TestGetRecommendationsDebugKeepsBreakdown(t *testing.T) {
	stub := &stubDiscovery{scored: []domain_models.ScoredPlace{
		{
			Place:      domain_models.Place{ID: "1", Name: "Cafe", Source: "google"},
			FinalScore: 0.8,
			Reasons:    []string{"Highly rated", "Close by"},
			Breakdown:  &domain_models.ScoreBreakdown{},
		},
	}}
	router := recommendationsRouter(stub, "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations?lat=41.0&lng=28.97&debug=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data := resp.Data.(map[string]interface{})
	places := data["places"].([]interface{})
	first := places[0].(map[string]interface{})
	_, hasBreakdown := first["breakdown"]
	assert.True(t, hasBreakdown)
}

func TestGetRecommendationsFallsBackToBaseline(t *testing.T) {
	stub := &stubDiscovery{
		err:    utils.ErrPersonalizationUnavailable,
		places: []domain_models.Place{{ID: "1", Name: "Cafe", Source: "google"}},
	}
	// FindPlaces must succeed even though the personalized path is unavailable.
	router := recommendationsRouter(&fallbackDiscovery{stub}, "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations?lat=41.0&lng=28.97", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "baseline", data["mode"])
}

func TestGetRecommendationsWithoutIdentity(t *testing.T) {
	router := recommendationsRouter(&stubDiscovery{}, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recommendations?lat=41.0&lng=28.97", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// fallbackDiscovery fails only the personalized path.
type fallbackDiscovery struct {
	*stubDiscovery
}

func (f *fallbackDiscovery) FindPlacesPersonalized(ctx context.Context, userID string, req request_models.SearchPlacesRequest, sctx domain_models.ScoringContext) ([]domain_models.ScoredPlace, error) {
	return nil, utils.ErrPersonalizationUnavailable
}

func (f *fallbackDiscovery) FindPlaces(ctx context.Context, req request_models.SearchPlacesRequest) ([]domain_models.Place, error) {
	return f.stubDiscovery.places, nil
}
