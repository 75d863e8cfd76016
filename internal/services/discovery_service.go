package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

type DiscoveryServiceInterface interface {
	Discover(ctx context.Context, region string, preferences []string, limit int) ([]domain_models.RecommendedPlace, error)
}

type DiscoveryService struct {
	search PlaceSearchServiceInterface
	tables RecommendationTables
	log    *zap.Logger
}

func NewDiscoveryService(search PlaceSearchServiceInterface, tables RecommendationTables, log *zap.Logger) DiscoveryServiceInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &DiscoveryService{
		search: search,
		tables: tables,
		log:    log,
	}
}

// Discover runs the region's query battery one query at a time, keeps the top
// rated results of each, removes duplicates and ranks the pool.
func (s *DiscoveryService) Discover(ctx context.Context, region string, preferences []string, limit int) ([]domain_models.RecommendedPlace, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, fmt.Errorf("%w: region is required", utils.ErrInvalidInput)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", utils.ErrInvalidInput)
	}

	queries := s.tables.DiscoveryQueries(region)
	var (
		pool   []domain_models.RecommendedPlace
		failed int
	)

	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrDiscoveryFailed, err)
		}

		places, err := s.search.Search(ctx, q, SearchOptions{Preferences: preferences})
		if err != nil {
			failed++
			s.log.Warn("discovery query failed", zap.String("query", q), zap.Error(err))
			continue
		}

		kept := 0
		for _, p := range places {
			if kept == s.tables.TopPerQuery {
				break
			}
			if p.Rating == nil || *p.Rating < s.tables.MinDiscoveryRating {
				continue
			}
			pool = append(pool, p)
			kept++
		}
		s.log.Debug("discovery query done", zap.String("query", q), zap.Int("kept", kept))
	}

	if failed == len(queries) {
		return nil, fmt.Errorf("%w: all %d queries for %q failed", utils.ErrDiscoveryFailed, failed, region)
	}

	unique := dedupePlaces(pool)

	sort.SliceStable(unique, func(i, j int) bool {
		return discoveryScore(unique[i]) > discoveryScore(unique[j])
	})
	if len(unique) > limit {
		unique = unique[:limit]
	}

	s.log.Info("regional discovery completed",
		zap.String("region", region),
		zap.Int("queries", len(queries)),
		zap.Int("candidates", len(unique)))

	return unique, nil
}

// dedupePlaces drops a place when any earlier place in the list, kept or not,
// shares its name or its non-empty address.
func dedupePlaces(places []domain_models.RecommendedPlace) []domain_models.RecommendedPlace {
	names := make(map[string]struct{}, len(places))
	addresses := make(map[string]struct{}, len(places))
	out := make([]domain_models.RecommendedPlace, 0, len(places))

	for _, p := range places {
		_, dupName := names[p.Name]
		_, dupAddr := addresses[p.Address]
		if !dupName && !(p.Address != "" && dupAddr) {
			out = append(out, p)
		}
		names[p.Name] = struct{}{}
		if p.Address != "" {
			addresses[p.Address] = struct{}{}
		}
	}
	return out
}

func discoveryScore(p domain_models.RecommendedPlace) float64 {
	return p.RatingOrZero()*20 + p.MatchScore + float64(p.ReviewCount)/10
}
