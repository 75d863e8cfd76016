package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/domain_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type PlacesController struct {
	searchService    services.PlaceSearchServiceInterface
	discoveryService services.DiscoveryServiceInterface
}

func NewPlacesController(
	searchService services.PlaceSearchServiceInterface,
	discoveryService services.DiscoveryServiceInterface,
) *PlacesController {
	return &PlacesController{
		searchService:    searchService,
		discoveryService: discoveryService,
	}
}

// SearchPlaces godoc
// @Summary Search places
// @Description Search places across the configured providers, optionally scored by preferences and filtered by radius
// @Tags Places
// @Produce json
// @Param query query string true "Search text"
// @Param lat query number false "Reference latitude"
// @Param lng query number false "Reference longitude"
// @Param radius query number false "Radius in km (needs lat/lng)"
// @Param preferences query string false "Comma separated preferences, e.g. 맛집,자연"
// @Success 200 {object} response_models.PlacesResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /places/search [get]
func (p *PlacesController) SearchPlaces(c *gin.Context) {
	var q request_models.SearchPlacesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid search parameters: "+err.Error())
		return
	}
	if (q.Lat == nil) != (q.Lng == nil) {
		utils.RespondError(c, http.StatusBadRequest, "lat and lng must be given together")
		return
	}

	opts := services.SearchOptions{
		Preferences: splitPreferences(q.Preferences),
		Radius:      q.Radius,
	}
	if q.Lat != nil {
		opts.Location = &domain_models.LatLng{Lat: *q.Lat, Lng: *q.Lng}
	}

	places, err := p.searchService.Search(c.Request.Context(), q.Query, opts)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PlacesResponse{
		Query:  q.Query,
		Count:  len(places),
		Places: nonNilPlaces(places),
	}, "Places fetched successfully")
}

// GetPopularPlacesByRegion godoc
// @Summary Popular places in a region
// @Description Run the regional discovery battery and return the ranked, de-duplicated pool
// @Tags Places
// @Produce json
// @Param region path string true "Region name, e.g. 제주도"
// @Param preferences query string false "Comma separated preferences"
// @Param limit query int false "Max places" default(10) minimum(1) maximum(100)
// @Success 200 {object} response_models.PlacesResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /regions/{region}/places [get]
func (p *PlacesController) GetPopularPlacesByRegion(c *gin.Context) {
	region := strings.TrimSpace(c.Param("region"))
	if region == "" {
		utils.RespondError(c, http.StatusBadRequest, "Region is required")
		return
	}

	var q request_models.RegionPlacesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	places, err := p.discoveryService.Discover(c.Request.Context(), region, splitPreferences(q.Preferences), q.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.PlacesResponse{
		Region: region,
		Count:  len(places),
		Places: nonNilPlaces(places),
	}, "Popular places fetched successfully")
}

func splitPreferences(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nonNilPlaces(places []domain_models.RecommendedPlace) []domain_models.RecommendedPlace {
	if places == nil {
		return []domain_models.RecommendedPlace{}
	}
	return places
}
