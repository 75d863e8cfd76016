package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/domain_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/config"
	"tripmate/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	defaultTransport domain_models.TransportType
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, cfg *config.Config) *ItineraryController {
	mode := domain_models.TransportType(cfg.Planner.DefaultTransport)
	if !mode.Valid() {
		mode = domain_models.TransportWalking
	}
	return &ItineraryController{
		itineraryService: itineraryService,
		defaultTransport: mode,
	}
}

// CreateItinerary godoc
// @Summary Generate an itinerary
// @Description Build a day-by-day plan for a destination, optimize each day's route and store it
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.CreateItineraryRequest true "Itinerary request"
// @Success 201 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /itineraries [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in := services.BuildItineraryInput{
		Destination:   req.Destination,
		Preferences:   req.Preferences,
		Days:          req.Days,
		TransportType: i.defaultTransport,
	}
	if req.TransportType != "" {
		in.TransportType = domain_models.TransportType(req.TransportType)
	}
	if req.StartLocation != nil {
		in.StartLocation = &domain_models.LatLng{Lat: req.StartLocation.Lat, Lng: req.StartLocation.Lng}
	}

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), in)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	msg := "Itinerary generated successfully"
	if itinerary.Degraded {
		msg = "No plan could be generated for this destination"
	}
	utils.RespondCreated(c, itinerary, msg)
}

// GetItineraryById godoc
// @Summary Get an itinerary
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [get]
func (i *ItineraryController) GetItineraryById(c *gin.Context) {
	itinerary, err := i.itineraryService.GetItineraryById(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

// GetDayMetrics godoc
// @Summary Time and cost totals for one day
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param day path int true "Zero-based day index"
// @Success 200 {object} response_models.DayMetricsResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id}/days/{day}/metrics [get]
func (i *ItineraryController) GetDayMetrics(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day index")
		return
	}

	metrics, err := i.itineraryService.GetDayMetrics(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, metrics, "Day metrics fetched successfully")
}
