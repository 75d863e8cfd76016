package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Itinerary struct {
	BaseModel
	Destination   string `gorm:"index"`
	Days          int
	TransportType string
	Preferences   pq.StringArray `gorm:"type:text[]"`
	StartLat      *float64
	StartLng      *float64
	Degraded      bool

	Places []ItineraryPlace
}

type ItineraryPlace struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	DayIndex    int       `gorm:"index"`
	Position    int

	PlaceID     string
	Name        string
	Category    string
	Address     string
	RoadAddress string
	Phone       string
	Lat         float64
	Lng         float64
	Rating      *float64
	ReviewCount int
	MatchScore  float64
	Source      string
	Distance    *float64
	Tags        pq.StringArray `gorm:"type:text[]"`

	TravelDurationMinutes  *int
	TravelTransportType    string
	TravelEstimatedCost    *int
	SuggestedVisitDuration *int
}
