package domain_models

type ItineraryTimeSummary struct {
	TotalTravelTime    int    `json:"total_travel_time"`
	TotalVisitTime     int    `json:"total_visit_time"`
	TotalTime          int    `json:"total_time"`
	FormattedTotalTime string `json:"formatted_total_time"`
}

type ItineraryCostSummary struct {
	TotalTravelCost    int                   `json:"total_travel_cost"`
	FormattedTotalCost string                `json:"formatted_total_cost"`
	CostByTransport    map[TransportType]int `json:"cost_by_transport"`
}
