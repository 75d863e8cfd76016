package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tripmate/internal/models/domain_models"
	"tripmate/pkg/utils"
)

const MaxItineraryDays = 14

type BuildItineraryInput struct {
	Destination   string
	Preferences   []string
	Days          int
	StartLocation *domain_models.LatLng
	TransportType domain_models.TransportType
}

func (in BuildItineraryInput) Validate() error {
	if strings.TrimSpace(in.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if in.Days < 1 || in.Days > MaxItineraryDays {
		return fmt.Errorf("%w: days must be between 1 and %d", utils.ErrInvalidInput, MaxItineraryDays)
	}
	if !in.TransportType.Valid() {
		return fmt.Errorf("%w: unknown transport type %q", utils.ErrInvalidInput, in.TransportType)
	}
	if in.StartLocation != nil && !utils.ValidCoordinate(in.StartLocation.Lat, in.StartLocation.Lng) {
		return fmt.Errorf("%w: start location is not a valid coordinate", utils.ErrInvalidInput)
	}
	return nil
}

type ItineraryBuilderInterface interface {
	Build(ctx context.Context, in BuildItineraryInput) (domain_models.Itinerary, error)
}

type ItineraryBuilder struct {
	discovery DiscoveryServiceInterface
	router    DayRouteAdapterInterface
	tables    RecommendationTables
	log       *zap.Logger
}

func NewItineraryBuilder(discovery DiscoveryServiceInterface, router DayRouteAdapterInterface, tables RecommendationTables, log *zap.Logger) ItineraryBuilderInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItineraryBuilder{
		discovery: discovery,
		router:    router,
		tables:    tables,
		log:       log,
	}
}

// Build fetches a candidate pool for the destination and fills every day from
// the slot template. Invalid input, discovery failures and an empty pool are
// returned as errors. A failure while assembling days yields an empty
// itinerary and an error wrapping utils.ErrBuildDegraded.
func (b *ItineraryBuilder) Build(ctx context.Context, in BuildItineraryInput) (domain_models.Itinerary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	pool, err := b.discovery.Discover(ctx, in.Destination, in.Preferences, in.Days*b.tables.CandidatesPerDay)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrNoCandidates, in.Destination)
	}

	buckets := b.categorize(pool)
	used := make(map[string]struct{})
	itinerary := make(domain_models.Itinerary, in.Days)

	for day := 0; day < in.Days; day++ {
		plan := b.planDay(buckets, used)

		optimized, err := b.router.OptimizeDay(ctx, plan, in.StartLocation, in.TransportType)
		if err != nil {
			return b.degrade(in, day, err)
		}

		for _, p := range optimized {
			used[p.ID] = struct{}{}
		}
		itinerary[day] = optimized
	}

	b.log.Info("itinerary built",
		zap.String("destination", in.Destination),
		zap.Int("days", in.Days),
		zap.Int("candidates", len(pool)),
		zap.String("transport", string(in.TransportType)))

	return itinerary, nil
}

func (b *ItineraryBuilder) degrade(in BuildItineraryInput, day int, cause error) (domain_models.Itinerary, error) {
	err := fmt.Errorf("%w: day %d: %w", utils.ErrBuildDegraded, day, cause)
	b.log.Error("itinerary build degraded to an empty plan",
		zap.String("destination", in.Destination),
		zap.Int("day", day),
		zap.Error(err))
	return domain_models.Itinerary{}, err
}

// IsDegraded reports whether err came from a build that fell back to an empty plan.
func IsDegraded(err error) bool {
	return errors.Is(err, utils.ErrBuildDegraded)
}

// categorize files each place under every bucket whose keywords occur in its
// category. Pool order is kept inside a bucket.
func (b *ItineraryBuilder) categorize(pool []domain_models.RecommendedPlace) map[string][]domain_models.RecommendedPlace {
	buckets := make(map[string][]domain_models.RecommendedPlace, len(b.tables.BucketOrder))
	for _, p := range pool {
		for _, bucket := range b.tables.BucketsFor(p.Category) {
			buckets[bucket] = append(buckets[bucket], p)
		}
	}
	return buckets
}

// planDay applies the slot template and backfills from every bucket up to
// PlacesPerDay. used is read, never written.
func (b *ItineraryBuilder) planDay(buckets map[string][]domain_models.RecommendedPlace, used map[string]struct{}) []domain_models.RecommendedPlace {
	plan := make([]domain_models.RecommendedPlace, 0, b.tables.PlacesPerDay)
	inDay := make(map[string]struct{}, b.tables.PlacesPerDay)

	available := func(candidates []domain_models.RecommendedPlace) []domain_models.RecommendedPlace {
		out := make([]domain_models.RecommendedPlace, 0, len(candidates))
		seen := make(map[string]struct{}, len(candidates))
		for _, p := range candidates {
			if _, ok := used[p.ID]; ok {
				continue
			}
			if _, ok := inDay[p.ID]; ok {
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].RankScore() > out[j].RankScore()
		})
		return out
	}

	take := func(candidates []domain_models.RecommendedPlace, n int) {
		for _, p := range candidates {
			if n == 0 {
				return
			}
			plan = append(plan, p.Clone())
			inDay[p.ID] = struct{}{}
			n--
		}
	}

	for _, slot := range b.tables.DaySlots {
		take(available(buckets[slot.Bucket]), slot.Count)
	}

	if len(plan) < b.tables.PlacesPerDay {
		var all []domain_models.RecommendedPlace
		for _, bucket := range b.tables.BucketOrder {
			all = append(all, buckets[bucket]...)
		}
		take(available(all), b.tables.PlacesPerDay-len(plan))
	}

	if len(plan) > b.tables.PlacesPerDay {
		plan = plan[:b.tables.PlacesPerDay]
	}
	return plan
}
