// internal/repositories/itinerary_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripmate/internal/models/db_models"
)

type ItineraryRepository interface {
	SaveItinerary(ctx context.Context, itinerary *dbm.Itinerary) (uuid.UUID, error)

	// GetItineraryById returns nil, nil when no itinerary has the id.
	GetItineraryById(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

const placeInsertBatch = 100

func (r *itineraryRepository) SaveItinerary(ctx context.Context, itinerary *dbm.Itinerary) (uuid.UUID, error) {
	places := itinerary.Places
	itinerary.Places = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(itinerary).Error; err != nil {
			return err
		}
		if len(places) == 0 {
			return nil
		}
		for i := range places {
			places[i].ItineraryID = itinerary.ID
		}
		return tx.CreateInBatches(&places, placeInsertBatch).Error
	})

	itinerary.Places = places
	if err != nil {
		return uuid.Nil, err
	}
	return itinerary.ID, nil
}

func (r *itineraryRepository) GetItineraryById(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Places", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_index ASC, position ASC")
		}).
		First(&itinerary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}
