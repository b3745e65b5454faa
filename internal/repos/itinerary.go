package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type ItineraryRepo interface {
	// Create inserts the itinerary together with its nested days and
	// activities. The unique index on trip_id rejects a second itinerary for
	// the same trip.
	Create(ctx context.Context, tx *gorm.DB, itinerary *types.Itinerary) (*types.Itinerary, error)
	GetByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) (*types.Itinerary, error)
	DeleteByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) error
}

type itineraryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItineraryRepo(db *gorm.DB, baseLog *logger.Logger) ItineraryRepo {
	return &itineraryRepo{db: db, log: baseLog.With("repo", "ItineraryRepo")}
}

func (r *itineraryRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *itineraryRepo) Create(ctx context.Context, tx *gorm.DB, itinerary *types.Itinerary) (*types.Itinerary, error) {
	if err := r.conn(tx).WithContext(ctx).Create(itinerary).Error; err != nil {
		return nil, err
	}
	return itinerary, nil
}

func (r *itineraryRepo) GetByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) (*types.Itinerary, error) {
	var itinerary types.Itinerary
	err := r.conn(tx).WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_day.day_number ASC")
		}).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("activity.order_index ASC")
		}).
		Where("trip_id = ?", tripID).
		First(&itinerary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// DeleteByTripID removes the itinerary row; days and activities go with it
// via the ON DELETE CASCADE constraints.
func (r *itineraryRepo) DeleteByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("trip_id = ?", tripID).
		Delete(&types.Itinerary{}).Error
}
