package services

import (
	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

// CalculateItineraryTotalTime sums arrival legs and, when includeVisitTime is
// set, suggested visit durations over one day.
func CalculateItineraryTotalTime(places []domain_models.RecommendedPlace, includeVisitTime bool) domain_models.ItineraryTimeSummary {
	var travel, visit int
	for _, p := range places {
		if p.TravelTimeFromPrevious != nil {
			travel += p.TravelTimeFromPrevious.DurationMinutes
		}
		if includeVisitTime && p.SuggestedVisitDuration != nil {
			visit += *p.SuggestedVisitDuration
		}
	}
	total := travel + visit
	return domain_models.ItineraryTimeSummary{
		TotalTravelTime:    travel,
		TotalVisitTime:     visit,
		TotalTime:          total,
		FormattedTotalTime: utils.FormatTravelTime(total),
	}
}

// CalculateItineraryCost sums leg costs, skipping legs without a cost, and
// breaks the total down by transport mode.
func CalculateItineraryCost(places []domain_models.RecommendedPlace) domain_models.ItineraryCostSummary {
	total := 0
	byTransport := make(map[domain_models.TransportType]int)
	for _, p := range places {
		tt := p.TravelTimeFromPrevious
		if tt == nil || tt.EstimatedCost == nil || *tt.EstimatedCost == 0 {
			continue
		}
		total += *tt.EstimatedCost
		byTransport[tt.TransportType] += *tt.EstimatedCost
	}
	return domain_models.ItineraryCostSummary{
		TotalTravelCost:    total,
		FormattedTotalCost: utils.FormatTravelCost(total),
		CostByTransport:    byTransport,
	}
}
