package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

const defaultRadiusMeters = 3000

type PlacesController struct {
	discoveryService services.DiscoveryServiceInterface
}

func NewPlacesController(discoveryService services.DiscoveryServiceInterface) *PlacesController {
	return &PlacesController{
		discoveryService: discoveryService,
	}
}

// SearchPlaces handles GET /places/search: the baseline, user-independent
// discovery path.
func (p *PlacesController) SearchPlaces(c *gin.Context) {
	req, ok := parseSearchRequest(c)
	if !ok {
		return
	}

	places, err := p.discoveryService.FindPlaces(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.BuildPlaceResponses(places), "Places fetched successfully")
}

func parseSearchRequest(c *gin.Context) (request_models.SearchPlacesRequest, bool) {
	var req request_models.SearchPlacesRequest

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid or missing lat")
		return req, false
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid or missing lng")
		return req, false
	}

	radius := float64(defaultRadiusMeters)
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "Invalid radius")
			return req, false
		}
	}

	var priceLevels []int
	if raw := c.Query("price_levels"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			level, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || level < 0 || level > 4 {
				utils.RespondError(c, http.StatusBadRequest, "Invalid price_levels (comma-separated 0-4)")
				return req, false
			}
			priceLevels = append(priceLevels, level)
		}
	}

	req = request_models.SearchPlacesRequest{
		Latitude:    lat,
		Longitude:   lng,
		Radius:      radius,
		Keyword:     c.Query("keyword"),
		Query:       c.Query("query"),
		PriceLevels: priceLevels,
		Debug:       c.Query("debug") == "true",
	}

	if err := req.Validate(); err != nil {
		utils.HandleServiceError(c, err)
		return req, false
	}
	return req, true
}
