package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tripmate/internal/models/domain_models"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

type fakeProvider struct {
	name     string
	results  map[string][]domain_models.RawPlace
	errs     map[string]error
	fallback func(query string) []domain_models.RawPlace

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, query string) ([]domain_models.RawPlace, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	if f.fallback != nil {
		return f.fallback(query), nil
	}
	return nil, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSearch struct {
	results map[string][]domain_models.RecommendedPlace
	errs    map[string]error
	err     error
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string, opts SearchOptions) ([]domain_models.RecommendedPlace, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	out := make([]domain_models.RecommendedPlace, 0, len(f.results[query]))
	for _, p := range f.results[query] {
		out = append(out, p.Clone())
	}
	return out, nil
}

type fakeDiscovery struct {
	pool      []domain_models.RecommendedPlace
	err       error
	lastLimit int
}

func (f *fakeDiscovery) Discover(ctx context.Context, region string, preferences []string, limit int) ([]domain_models.RecommendedPlace, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain_models.RecommendedPlace, 0, len(f.pool))
	for _, p := range f.pool {
		out = append(out, p.Clone())
	}
	return out, nil
}

// reverseOptimizer returns the stops in reverse order with 10 minute legs
// costing 100 each.
type reverseOptimizer struct {
	dropIndexes bool
	err         error
	calls       int
	lastStart   domain_models.LatLng
}

func (o *reverseOptimizer) Optimize(ctx context.Context, start domain_models.LatLng, stops []domain_models.RouteStop, mode domain_models.TransportType) (domain_models.RouteResult, error) {
	o.calls++
	o.lastStart = start
	if o.err != nil {
		return domain_models.RouteResult{}, o.err
	}
	res := domain_models.RouteResult{}
	for i := len(stops) - 1; i >= 0; i-- {
		s := stops[i]
		if o.dropIndexes {
			s.Index = 0
		}
		res.OptimizedRoute = append(res.OptimizedRoute, s)
	}
	for i := 0; i+1 < len(stops); i++ {
		cost := 100
		res.TravelSegments = append(res.TravelSegments, domain_models.TravelTimeInfo{
			DurationMinutes: 10,
			TransportType:   mode,
			EstimatedCost:   &cost,
		})
		res.TotalTravelTime += 10
	}
	return res, nil
}

var errBoom = errors.New("boom")

func place(id, name, category string, rating float64, match float64) domain_models.RecommendedPlace {
	return domain_models.RecommendedPlace{
		ID:         id,
		Name:       name,
		Category:   category,
		Address:    "addr-" + id,
		Lat:        33.4 + float64(len(id))*0.001,
		Lng:        126.5,
		Rating:     ptrF(rating),
		MatchScore: match,
		Source:     domain_models.SourceKakao,
	}
}

func raw(id, name, category string, lat, lng float64, rating *float64, reviews int, popularity float64) domain_models.RawPlace {
	return domain_models.RawPlace{
		ID:              id,
		Name:            name,
		Category:        category,
		Address:         fmt.Sprintf("주소 %s", id),
		Lat:             lat,
		Lng:             lng,
		Rating:          rating,
		ReviewCount:     reviews,
		PopularityScore: popularity,
	}
}
