package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripwise/internal/models/db_models"
)

type ItineraryRepositoryInterface interface {
	CreateItinerary(ctx context.Context, itinerary *db_models.Itinerary) error
	// GetItineraryByID returns nil, nil when no row matches.
	GetItineraryByID(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error)
	ListItineraries(ctx context.Context, limit int) ([]db_models.Itinerary, error)
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepositoryInterface {
	return &ItineraryRepository{db: db}
}

type ItineraryRepository struct {
	db *gorm.DB
}

func (r *ItineraryRepository) CreateItinerary(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *ItineraryRepository) GetItineraryByID(ctx context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&itinerary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *ItineraryRepository) ListItineraries(ctx context.Context, limit int) ([]db_models.Itinerary, error) {
	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}
