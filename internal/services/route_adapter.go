package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

// RouteOptimizer orders stops starting from start and reports the legs
// between consecutive stops.
type RouteOptimizer interface {
	Optimize(ctx context.Context, start domain_models.LatLng, stops []domain_models.RouteStop, mode domain_models.TransportType) (domain_models.RouteResult, error)
}

type DayRouteAdapterInterface interface {
	OptimizeDay(ctx context.Context, places []domain_models.RecommendedPlace, start *domain_models.LatLng, mode domain_models.TransportType) ([]domain_models.RecommendedPlace, error)
}

type DayRouteAdapter struct {
	optimizer RouteOptimizer
	tables    RecommendationTables
	log       *zap.Logger
}

func NewDayRouteAdapter(optimizer RouteOptimizer, tables RecommendationTables, log *zap.Logger) DayRouteAdapterInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &DayRouteAdapter{
		optimizer: optimizer,
		tables:    tables,
		log:       log,
	}
}

// OptimizeDay reorders a day's places through the optimizer and annotates each
// with the leg arriving at it and a suggested visit duration. Zero or one
// place is returned as is.
func (a *DayRouteAdapter) OptimizeDay(
	ctx context.Context,
	places []domain_models.RecommendedPlace,
	start *domain_models.LatLng,
	mode domain_models.TransportType,
) ([]domain_models.RecommendedPlace, error) {
	if len(places) <= 1 {
		return places, nil
	}

	origin := places[0].Location()
	if start != nil {
		origin = *start
	}

	stops := make([]domain_models.RouteStop, len(places))
	for i, p := range places {
		stops[i] = domain_models.RouteStop{Index: i, Name: p.Name, Lat: p.Lat, Lng: p.Lng}
	}

	result, err := a.optimizer.Optimize(ctx, origin, stops, mode)
	if err != nil {
		return nil, fmt.Errorf("optimize day route: %w", err)
	}

	assigned := make([]bool, len(places))
	out := make([]domain_models.RecommendedPlace, 0, len(result.OptimizedRoute))

	for k, stop := range result.OptimizedRoute {
		idx := matchStop(places, assigned, stop)
		if idx < 0 {
			a.log.Warn("dropping route stop without a matching place",
				zap.String("name", stop.Name), zap.Int("index", stop.Index))
			continue
		}
		assigned[idx] = true

		place := places[idx].Clone()
		place.TravelTimeFromPrevious = nil
		if k > 0 && k-1 < len(result.TravelSegments) {
			seg := result.TravelSegments[k-1]
			if seg.EstimatedCost != nil {
				c := *seg.EstimatedCost
				seg.EstimatedCost = &c
			}
			place.TravelTimeFromPrevious = &seg
		}
		visit := a.tables.VisitDuration(place.Category)
		place.SuggestedVisitDuration = &visit

		out = append(out, place)
	}

	a.log.Debug("day route optimized",
		zap.Int("stops", len(out)),
		zap.String("mode", string(mode)),
		zap.String("total_travel_time", utils.FormatTravelTime(result.TotalTravelTime)),
		zap.Float64("total_distance_km", result.TotalDistance))

	return out, nil
}

// matchStop resolves a returned stop to its source place by carried index,
// falling back to the first unassigned place with the same name.
func matchStop(places []domain_models.RecommendedPlace, assigned []bool, stop domain_models.RouteStop) int {
	i := stop.Index
	if i >= 0 && i < len(places) && !assigned[i] && (stop.Name == "" || places[i].Name == stop.Name) {
		return i
	}
	for j, p := range places {
		if !assigned[j] && p.Name == stop.Name {
			return j
		}
	}
	return -1
}
