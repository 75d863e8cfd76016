package services

import (
	"context"
	"fmt"
	"math"

	"tripmate/internal/models/domain_models"
)

// TransportModel turns a distance into a leg duration and fare.
type TransportModel struct {
	Profile     string // distance matrix profile
	SpeedKmh    float64
	WaitMinutes int
	BaseFare    int
	FarePerKm   float64
	FreeKm      float64 // distance covered by BaseFare
}

func DefaultTransportModels() map[domain_models.TransportType]TransportModel {
	return map[domain_models.TransportType]TransportModel{
		domain_models.TransportWalking: {Profile: "walking", SpeedKmh: 4.5},
		domain_models.TransportDriving: {Profile: "driving", SpeedKmh: 30, FarePerKm: 200},
		domain_models.TransportTransit: {Profile: "driving", SpeedKmh: 20, WaitMinutes: 10, BaseFare: 1400, FarePerKm: 100, FreeKm: 10},
	}
}

func (m TransportModel) Duration(km float64) int {
	if km <= 0 {
		return 0
	}
	return int(math.Ceil(km/m.SpeedKmh*60)) + m.WaitMinutes
}

func (m TransportModel) Cost(km float64) int {
	if km <= 0 {
		return 0
	}
	return m.BaseFare + int(math.Round(math.Max(0, km-m.FreeKm)*m.FarePerKm))
}

// NearestNeighborOptimizer orders stops greedily: from the start point, always
// visit the closest remaining stop. Ties go to the lower stop index.
type NearestNeighborOptimizer struct {
	matrix DistanceMatrixService
	models map[domain_models.TransportType]TransportModel
}

func NewNearestNeighborOptimizer(matrix DistanceMatrixService, models map[domain_models.TransportType]TransportModel) *NearestNeighborOptimizer {
	if models == nil {
		models = DefaultTransportModels()
	}
	return &NearestNeighborOptimizer{matrix: matrix, models: models}
}

func (o *NearestNeighborOptimizer) Optimize(
	ctx context.Context,
	start domain_models.LatLng,
	stops []domain_models.RouteStop,
	mode domain_models.TransportType,
) (domain_models.RouteResult, error) {
	model, ok := o.models[mode]
	if !ok {
		return domain_models.RouteResult{}, fmt.Errorf("route optimizer: unsupported transport %q", mode)
	}
	if len(stops) == 0 {
		return domain_models.RouteResult{OptimizedRoute: []domain_models.RouteStop{}, TravelSegments: []domain_models.TravelTimeInfo{}}, nil
	}

	startID := PointID(start.Lat, start.Lng)
	points := []MatrixPoint{{ID: startID, Lat: start.Lat, Lng: start.Lng}}
	ids := make([]string, len(stops))
	seen := map[string]struct{}{startID: {}}
	for i, s := range stops {
		ids[i] = PointID(s.Lat, s.Lng)
		if _, dup := seen[ids[i]]; dup {
			continue
		}
		seen[ids[i]] = struct{}{}
		points = append(points, MatrixPoint{ID: ids[i], Lat: s.Lat, Lng: s.Lng})
	}

	mat, err := o.matrix.ComputeDistances(ctx, model.Profile, points)
	if err != nil {
		return domain_models.RouteResult{}, fmt.Errorf("route optimizer: distances: %w", err)
	}
	meters := func(a, b string) (int, error) {
		if a == b {
			return 0, nil
		}
		e, ok := mat[a][b]
		if !ok {
			return 0, fmt.Errorf("route optimizer: missing distance %s -> %s", a, b)
		}
		return e.DistanceMeters, nil
	}

	remaining := make([]bool, len(stops))
	for i := range remaining {
		remaining[i] = true
	}

	result := domain_models.RouteResult{
		OptimizedRoute: make([]domain_models.RouteStop, 0, len(stops)),
		TravelSegments: make([]domain_models.TravelTimeInfo, 0, len(stops)-1),
	}
	current := startID

	for len(result.OptimizedRoute) < len(stops) {
		best, bestMeters := -1, math.MaxInt
		for i := range stops {
			if !remaining[i] {
				continue
			}
			d, err := meters(current, ids[i])
			if err != nil {
				return domain_models.RouteResult{}, err
			}
			if d < bestMeters {
				best, bestMeters = i, d
			}
		}
		remaining[best] = false

		if len(result.OptimizedRoute) > 0 {
			km := float64(bestMeters) / 1000
			cost := model.Cost(km)
			seg := domain_models.TravelTimeInfo{
				DurationMinutes: model.Duration(km),
				TransportType:   mode,
				EstimatedCost:   &cost,
			}
			result.TravelSegments = append(result.TravelSegments, seg)
			result.TotalTravelTime += seg.DurationMinutes
			result.TotalDistance += km
		}
		result.OptimizedRoute = append(result.OptimizedRoute, stops[best])
		current = ids[best]
	}

	return result, nil
}
