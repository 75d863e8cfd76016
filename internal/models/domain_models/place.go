package domain_models

type PlaceSource string

const (
	SourceKakao    PlaceSource = "kakao"
	SourceNaver    PlaceSource = "naver"
	SourceCombined PlaceSource = "combined"
)

type TransportType string

const (
	TransportWalking TransportType = "walking"
	TransportDriving TransportType = "driving"
	TransportTransit TransportType = "transit"
)

func (t TransportType) Valid() bool {
	switch t {
	case TransportWalking, TransportDriving, TransportTransit:
		return true
	}
	return false
}

// LatLng is a WGS84 coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TravelTimeInfo describes the leg that arrives at a place. It is produced by
// a RouteOptimizer and only copied onto places by the itinerary builder.
type TravelTimeInfo struct {
	DurationMinutes int           `json:"duration_minutes"`
	TransportType   TransportType `json:"transport_type"`
	EstimatedCost   *int          `json:"estimated_cost,omitempty"`
}

// RecommendedPlace is the normalized place record shared by search,
// discovery and itinerary building.
type RecommendedPlace struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Address     string      `json:"address"`
	RoadAddress string      `json:"road_address,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	Rating      *float64    `json:"rating,omitempty"`
	ReviewCount int         `json:"review_count"`
	MatchScore  float64     `json:"match_score"`
	Source      PlaceSource `json:"source"`
	Distance    *float64    `json:"distance,omitempty"`
	Tags        []string    `json:"tags,omitempty"`

	TravelTimeFromPrevious *TravelTimeInfo `json:"travel_time_from_previous,omitempty"`
	SuggestedVisitDuration *int            `json:"suggested_visit_duration,omitempty"`
}

// RatingOrZero treats a missing rating as zero for scoring.
func (p RecommendedPlace) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// RankScore is the rating-weighted score used to order places when no
// preference signal is applied: rating*20 + matchScore.
func (p RecommendedPlace) RankScore() float64 {
	return p.RatingOrZero()*20 + p.MatchScore
}

func (p RecommendedPlace) Location() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lng}
}

// Clone returns a copy that does not share pointer fields with p.
func (p RecommendedPlace) Clone() RecommendedPlace {
	out := p
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	if p.Distance != nil {
		d := *p.Distance
		out.Distance = &d
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.TravelTimeFromPrevious != nil {
		tt := *p.TravelTimeFromPrevious
		if tt.EstimatedCost != nil {
			c := *tt.EstimatedCost
			tt.EstimatedCost = &c
		}
		out.TravelTimeFromPrevious = &tt
	}
	if p.SuggestedVisitDuration != nil {
		v := *p.SuggestedVisitDuration
		out.SuggestedVisitDuration = &v
	}
	return out
}

// RawPlace is a provider record before normalization. Field names mirror the
// common subset the providers expose; anything provider-specific stays inside
// the provider's own mapping function.
type RawPlace struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Address         string      `json:"address"`
	RoadAddress     string      `json:"road_address,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Lat             float64     `json:"lat"`
	Lng             float64     `json:"lng"`
	Rating          *float64    `json:"rating,omitempty"`
	ReviewCount     int         `json:"review_count"`
	PopularityScore float64     `json:"popularity_score"`
	Source          PlaceSource `json:"source"`
}
