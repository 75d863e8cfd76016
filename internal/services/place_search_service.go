package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

// PlaceSearchProvider returns raw place records for a free-text query. Each
// provider maps its own wire shape into RawPlace.
type PlaceSearchProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]domain_models.RawPlace, error)
}

// SearchOptions are the optional knobs of a place search. Radius is in km and
// only applies together with Location.
type SearchOptions struct {
	Location    *domain_models.LatLng
	Preferences []string
	Radius      *float64
}

type PlaceSearchServiceInterface interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]domain_models.RecommendedPlace, error)
}

type PlaceSearchService struct {
	providers []PlaceSearchProvider
	tables    RecommendationTables
	log       *zap.Logger
}

func NewPlaceSearchService(providers []PlaceSearchProvider, tables RecommendationTables, log *zap.Logger) PlaceSearchServiceInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlaceSearchService{
		providers: providers,
		tables:    tables,
		log:       log,
	}
}

const tagDelimiter = " > "

func (s *PlaceSearchService) Search(ctx context.Context, query string, opts SearchOptions) ([]domain_models.RecommendedPlace, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", utils.ErrInvalidInput)
	}
	if opts.Radius != nil && (math.IsNaN(*opts.Radius) || *opts.Radius < 0) {
		return nil, fmt.Errorf("%w: radius must be positive", utils.ErrInvalidInput)
	}
	if len(s.providers) == 0 {
		return nil, fmt.Errorf("%w: no place providers configured", utils.ErrSearchFailed)
	}

	places := s.collect(ctx, query)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSearchFailed, err)
	}

	if len(opts.Preferences) > 0 {
		for i := range places {
			p := &places[i]
			preferenceScore := s.preferenceScore(*p, opts.Preferences)
			ratingScore := p.RatingOrZero() * 10
			reviewScore := math.Min(20, float64(p.ReviewCount)/10)
			p.MatchScore += preferenceScore + ratingScore + reviewScore
		}
		sort.SliceStable(places, func(i, j int) bool {
			return places[i].MatchScore > places[j].MatchScore
		})
	} else {
		sort.SliceStable(places, func(i, j int) bool {
			return places[i].RankScore() > places[j].RankScore()
		})
	}

	if opts.Location != nil && opts.Radius != nil && *opts.Radius > 0 {
		filtered := places[:0]
		for _, p := range places {
			d := utils.HaversineKm(opts.Location.Lat, opts.Location.Lng, p.Lat, p.Lng)
			if d <= *opts.Radius {
				dist := d
				p.Distance = &dist
				filtered = append(filtered, p)
			}
		}
		places = filtered
	}

	s.log.Debug("place search completed",
		zap.String("query", query),
		zap.Int("results", len(places)),
		zap.Strings("preferences", opts.Preferences))

	return places, nil
}

// collect queries every provider in order. A place whose name was already
// returned by an earlier provider at the same address, or within
// sameSiteKm of it, is merged into that record. A failing provider
// contributes nothing.
func (s *PlaceSearchService) collect(ctx context.Context, query string) []domain_models.RecommendedPlace {
	var (
		merged []domain_models.RecommendedPlace
		owners []string
	)
	byName := make(map[string][]int)

	for _, provider := range s.providers {
		raw, err := provider.Search(ctx, query)
		if err != nil {
			if !errors.Is(err, utils.ErrProviderFailure) {
				err = fmt.Errorf("%w: %v", utils.ErrProviderFailure, err)
			}
			s.log.Warn("place provider failed",
				zap.String("provider", provider.Name()),
				zap.String("query", query),
				zap.Error(err))
			continue
		}

	next:
		for _, r := range raw {
			place, ok := normalizePlace(r, provider.Name())
			if !ok {
				s.log.Debug("skipping place without usable coordinates",
					zap.String("provider", provider.Name()),
					zap.String("name", r.Name))
				continue
			}
			for _, idx := range byName[place.Name] {
				if owners[idx] != provider.Name() && samePlace(merged[idx], place) {
					mergePlace(&merged[idx], place)
					continue next
				}
			}
			byName[place.Name] = append(byName[place.Name], len(merged))
			merged = append(merged, place)
			owners = append(owners, provider.Name())
		}
	}
	return merged
}

// sameSiteKm is how far apart two same-named records may be and still count
// as one place.
const sameSiteKm = 0.1

// samePlace tells branches of a chain apart from one place reported twice.
func samePlace(a, b domain_models.RecommendedPlace) bool {
	if a.Address != "" && a.Address == b.Address {
		return true
	}
	return utils.HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng) <= sameSiteKm
}

func normalizePlace(r domain_models.RawPlace, provider string) (domain_models.RecommendedPlace, bool) {
	if r.Name == "" || !utils.ValidCoordinate(r.Lat, r.Lng) {
		return domain_models.RecommendedPlace{}, false
	}

	id := r.ID
	if id == "" {
		id = fallbackPlaceID(provider, r.Name, r.Address)
	}

	var rating *float64
	if r.Rating != nil {
		v := *r.Rating
		rating = &v
	}

	var tags []string
	if r.Category != "" {
		tags = strings.Split(r.Category, tagDelimiter)
	}

	source := r.Source
	if source == "" {
		source = domain_models.PlaceSource(provider)
	}

	return domain_models.RecommendedPlace{
		ID:          id,
		Name:        r.Name,
		Category:    r.Category,
		Address:     r.Address,
		RoadAddress: r.RoadAddress,
		Phone:       r.Phone,
		Lat:         r.Lat,
		Lng:         r.Lng,
		Rating:      rating,
		ReviewCount: r.ReviewCount,
		MatchScore:  r.PopularityScore,
		Source:      source,
		Tags:        tags,
	}, true
}

// fallbackPlaceID derives an id from content so the same record gets the same
// id in every query and different records never share one.
func fallbackPlaceID(provider, name, address string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name + "|" + address))
	return fmt.Sprintf("%s_%x", provider, h.Sum64())
}

// mergePlace folds a same-named record from another provider into dst.
func mergePlace(dst *domain_models.RecommendedPlace, other domain_models.RecommendedPlace) {
	dst.Source = domain_models.SourceCombined
	if dst.Rating == nil && other.Rating != nil {
		dst.Rating = other.Rating
	}
	if dst.ReviewCount == 0 {
		dst.ReviewCount = other.ReviewCount
	}
	if dst.RoadAddress == "" {
		dst.RoadAddress = other.RoadAddress
	}
	if dst.Phone == "" {
		dst.Phone = other.Phone
	}
	if dst.Address == "" {
		dst.Address = other.Address
	}
	if other.MatchScore > dst.MatchScore {
		dst.MatchScore = other.MatchScore
	}
}

// preferenceScore awards 10 per category keyword hit, 5 per matching tag and
// 15 when the preference appears in the place name.
func (s *PlaceSearchService) preferenceScore(p domain_models.RecommendedPlace, preferences []string) float64 {
	score := 0.0
	category := strings.ToLower(p.Category)
	name := strings.ToLower(p.Name)

	for _, pref := range preferences {
		keywords := s.tables.PreferenceCategories[pref]

		for _, k := range keywords {
			if strings.Contains(category, strings.ToLower(k)) {
				score += 10
			}
		}

		for _, tag := range p.Tags {
			tag = strings.ToLower(tag)
			for _, k := range keywords {
				if strings.Contains(tag, strings.ToLower(k)) {
					score += 5
					break
				}
			}
		}

		if pref != "" && strings.Contains(name, strings.ToLower(pref)) {
			score += 15
		}
	}
	return score
}
