package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"roamio/internal/models/domain_models"
	"roamio/internal/models/response_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type RecommendationsController struct {
	discoveryService services.DiscoveryServiceInterface
}

func NewRecommendationsController(discoveryService services.DiscoveryServiceInterface) *RecommendationsController {
	return &RecommendationsController{
		discoveryService: discoveryService,
	}
}

// GetRecommendations handles GET /recommendations: the personalized path.
// Requires the JWT middleware to have resolved user_id; degrades to the
// baseline list when personalization is not wired.
func (r *RecommendationsController) GetRecommendations(c *gin.Context) {
	req, ok := parseSearchRequest(c)
	if !ok {
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.HandleServiceError(c, utils.ErrMissingUserIdentity)
		return
	}

	now := time.Now()
	sctx := domain_models.ScoringContext{
		UserLat:   req.Latitude,
		UserLng:   req.Longitude,
		TimeOfDay: utils.TimeOfDayBucket(now),
		Weather:   c.Query("weather"),
		Season:    c.Query("season"),
		LocalTime: now,
	}

	scored, err := r.discoveryService.FindPlacesPersonalized(c.Request.Context(), userID, req, sctx)
	if errors.Is(err, utils.ErrPersonalizationUnavailable) {
		places, err := r.discoveryService.FindPlaces(c.Request.Context(), req)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondSuccess(c, gin.H{
			"mode":   domain_models.ScoringModeBaseline.String(),
			"places": response_models.BuildPlaceResponses(places),
		}, "Recommendations fetched (baseline mode)")
		return
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !req.Debug {
		for i := range scored {
			scored[i].Breakdown = nil
		}
	}

	utils.RespondSuccess(c, gin.H{
		"mode":   domain_models.ScoringModePersonalized.String(),
		"places": response_models.BuildScoredPlaceResponses(scored),
	}, "Recommendations fetched successfully")
}
