package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	dbm "tripmate/internal/models/db_models"
	"tripmate/internal/models/domain_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, in BuildItineraryInput) (*response_models.ItineraryResponse, error)
	GetItineraryById(ctx context.Context, id string) (*response_models.ItineraryResponse, error)
	GetDayMetrics(ctx context.Context, id string, day int) (*response_models.DayMetricsResponse, error)
}

type ItineraryService struct {
	builder ItineraryBuilderInterface
	repo    repositories.ItineraryRepository
	log     *zap.Logger
}

func NewItineraryService(builder ItineraryBuilderInterface, repo repositories.ItineraryRepository, log *zap.Logger) ItineraryServiceInterface {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItineraryService{
		builder: builder,
		repo:    repo,
		log:     log,
	}
}

// GenerateItinerary builds and stores a plan. A degraded build is stored and
// returned with Degraded set instead of an error.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, in BuildItineraryInput) (*response_models.ItineraryResponse, error) {
	itinerary, err := s.builder.Build(ctx, in)
	degraded := false
	if err != nil {
		if !IsDegraded(err) {
			return nil, err
		}
		degraded = true
	}

	record := toItineraryRecord(in, itinerary, degraded)
	id, err := s.repo.SaveItinerary(ctx, record)
	if err != nil {
		s.log.Error("failed to save itinerary", zap.String("destination", in.Destination), zap.Error(err))
		return nil, fmt.Errorf("%w: save itinerary: %v", utils.ErrDatabaseError, err)
	}

	resp := buildItineraryResponse(in.Destination, in.Preferences, in.TransportType, itinerary)
	resp.ID = id.String()
	resp.Degraded = degraded
	resp.CreatedAt = record.CreatedAt
	return resp, nil
}

func (s *ItineraryService) GetItineraryById(ctx context.Context, id string) (*response_models.ItineraryResponse, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	itinerary := fromItineraryRecord(record)

	resp := buildItineraryResponse(record.Destination, record.Preferences, domain_models.TransportType(record.TransportType), itinerary)
	resp.ID = record.ID.String()
	resp.Degraded = record.Degraded
	resp.CreatedAt = record.CreatedAt
	return resp, nil
}

func (s *ItineraryService) GetDayMetrics(ctx context.Context, id string, day int) (*response_models.DayMetricsResponse, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if day < 0 || day >= record.Days {
		return nil, fmt.Errorf("%w: day %d outside 0..%d", utils.ErrInvalidDay, day, record.Days-1)
	}

	places := fromItineraryRecord(record)[day]
	travelOnly := CalculateItineraryTotalTime(places, false)

	return &response_models.DayMetricsResponse{
		ItineraryID:         record.ID.String(),
		Day:                 day,
		TimeStats:           CalculateItineraryTotalTime(places, true),
		CostStats:           CalculateItineraryCost(places),
		FormattedTravelTime: travelOnly.FormattedTotalTime,
	}, nil
}

func (s *ItineraryService) load(ctx context.Context, id string) (*dbm.Itinerary, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid itinerary id", utils.ErrInvalidInput)
	}
	record, err := s.repo.GetItineraryById(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return record, nil
}

func buildItineraryResponse(destination string, preferences []string, mode domain_models.TransportType, itinerary domain_models.Itinerary) *response_models.ItineraryResponse {
	if preferences == nil {
		preferences = []string{}
	}
	resp := &response_models.ItineraryResponse{
		Destination:   destination,
		Preferences:   preferences,
		TransportType: string(mode),
		Days:          make([]response_models.DayPlanResponse, 0, len(itinerary)),
	}
	for _, day := range itinerary.Days() {
		places := itinerary[day]
		if places == nil {
			places = []domain_models.RecommendedPlace{}
		}
		resp.Days = append(resp.Days, response_models.DayPlanResponse{
			Day:       day,
			Places:    places,
			TimeStats: CalculateItineraryTotalTime(places, true),
			CostStats: CalculateItineraryCost(places),
		})
	}
	return resp
}

func toItineraryRecord(in BuildItineraryInput, itinerary domain_models.Itinerary, degraded bool) *dbm.Itinerary {
	record := &dbm.Itinerary{
		Destination:   in.Destination,
		Days:          in.Days,
		TransportType: string(in.TransportType),
		Preferences:   pq.StringArray(in.Preferences),
		Degraded:      degraded,
	}
	if in.StartLocation != nil {
		lat, lng := in.StartLocation.Lat, in.StartLocation.Lng
		record.StartLat, record.StartLng = &lat, &lng
	}

	for _, day := range itinerary.Days() {
		for pos, p := range itinerary[day] {
			row := dbm.ItineraryPlace{
				DayIndex:               day,
				Position:               pos,
				PlaceID:                p.ID,
				Name:                   p.Name,
				Category:               p.Category,
				Address:                p.Address,
				RoadAddress:            p.RoadAddress,
				Phone:                  p.Phone,
				Lat:                    p.Lat,
				Lng:                    p.Lng,
				Rating:                 p.Rating,
				ReviewCount:            p.ReviewCount,
				MatchScore:             p.MatchScore,
				Source:                 string(p.Source),
				Distance:               p.Distance,
				Tags:                   pq.StringArray(p.Tags),
				SuggestedVisitDuration: p.SuggestedVisitDuration,
			}
			if tt := p.TravelTimeFromPrevious; tt != nil {
				minutes := tt.DurationMinutes
				row.TravelDurationMinutes = &minutes
				row.TravelTransportType = string(tt.TransportType)
				row.TravelEstimatedCost = tt.EstimatedCost
			}
			record.Places = append(record.Places, row)
		}
	}
	return record
}

func fromItineraryRecord(record *dbm.Itinerary) domain_models.Itinerary {
	if record.Degraded {
		return domain_models.Itinerary{}
	}
	itinerary := make(domain_models.Itinerary, record.Days)
	for d := 0; d < record.Days; d++ {
		itinerary[d] = []domain_models.RecommendedPlace{}
	}
	for _, row := range record.Places {
		p := domain_models.RecommendedPlace{
			ID:                     row.PlaceID,
			Name:                   row.Name,
			Category:               row.Category,
			Address:                row.Address,
			RoadAddress:            row.RoadAddress,
			Phone:                  row.Phone,
			Lat:                    row.Lat,
			Lng:                    row.Lng,
			Rating:                 row.Rating,
			ReviewCount:            row.ReviewCount,
			MatchScore:             row.MatchScore,
			Source:                 domain_models.PlaceSource(row.Source),
			Distance:               row.Distance,
			Tags:                   []string(row.Tags),
			SuggestedVisitDuration: row.SuggestedVisitDuration,
		}
		if row.TravelDurationMinutes != nil {
			p.TravelTimeFromPrevious = &domain_models.TravelTimeInfo{
				DurationMinutes: *row.TravelDurationMinutes,
				TransportType:   domain_models.TransportType(row.TravelTransportType),
				EstimatedCost:   row.TravelEstimatedCost,
			}
		}
		itinerary[row.DayIndex] = append(itinerary[row.DayIndex], p)
	}
	return itinerary
}
