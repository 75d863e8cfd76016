package domain_models

import "sort"

// Itinerary maps a zero-based day index to that day's places in visiting order.
type Itinerary map[int][]RecommendedPlace

// Days returns the day indexes in ascending order.
func (it Itinerary) Days() []int {
	days := make([]int, 0, len(it))
	for d := range it {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// RouteStop is one destination handed to a RouteOptimizer. Index is the
// position of the source place in the caller's slice and is carried through
// the optimizer so results can be re-associated without relying on names.
type RouteStop struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// RouteResult is what a RouteOptimizer returns. TravelSegments[k] is the leg
// from OptimizedRoute[k] to OptimizedRoute[k+1].
type RouteResult struct {
	OptimizedRoute  []RouteStop      `json:"optimized_route"`
	TravelSegments  []TravelTimeInfo `json:"travel_segments"`
	TotalTravelTime int              `json:"total_travel_time"`
	TotalDistance   float64          `json:"total_distance"`
}
