package response_models

import "tripmate/internal/models/domain_models"

type DayPlanResponse struct {
	Day       int                                `json:"day"`
	Places    []domain_models.RecommendedPlace   `json:"places"`
	TimeStats domain_models.ItineraryTimeSummary `json:"time_stats"`
	CostStats domain_models.ItineraryCostSummary `json:"cost_stats"`
}

type ItineraryResponse struct {
	ID            string            `json:"id,omitempty"`
	Destination   string            `json:"destination"`
	Preferences   []string          `json:"preferences"`
	TransportType string            `json:"transport_type"`
	Days          []DayPlanResponse `json:"days"`
	// Degraded marks a build that could not assemble a plan; Days is empty.
	Degraded  bool  `json:"degraded"`
	CreatedAt int64 `json:"created_at,omitempty"`
}

type DayMetricsResponse struct {
	ItineraryID string                             `json:"itinerary_id"`
	Day         int                                `json:"day"`
	TimeStats   domain_models.ItineraryTimeSummary `json:"time_stats"`
	CostStats   domain_models.ItineraryCostSummary `json:"cost_stats"`
	// Human readable travel-only duration.
	FormattedTravelTime string `json:"formatted_travel_time"`
}
