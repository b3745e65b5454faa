package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type TripRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trip *types.Trip) (*types.Trip, error)
	// GetByIDForUser is the ownership guard: it filters on (id, user_id) in a
	// single query and returns nil for both a missing trip and someone else's
	// trip, so the two cases are indistinguishable to callers.
	GetByIDForUser(ctx context.Context, tx *gorm.DB, tripID, userID uuid.UUID) (*types.Trip, error)
	GetByIDForUserWithDetails(ctx context.Context, tx *gorm.DB, tripID, userID uuid.UUID) (*types.Trip, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Trip, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, tripID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) error
}

type tripRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTripRepo(db *gorm.DB, baseLog *logger.Logger) TripRepo {
	return &tripRepo{db: db, log: baseLog.With("repo", "TripRepo")}
}

func (r *tripRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *tripRepo) Create(ctx context.Context, tx *gorm.DB, trip *types.Trip) (*types.Trip, error) {
	if err := r.conn(tx).WithContext(ctx).Create(trip).Error; err != nil {
		return nil, err
	}
	return trip, nil
}

func (r *tripRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, tripID, userID uuid.UUID) (*types.Trip, error) {
	var trip types.Trip
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", tripID, userID).
		First(&trip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepo) GetByIDForUserWithDetails(ctx context.Context, tx *gorm.DB, tripID, userID uuid.UUID) (*types.Trip, error) {
	var trip types.Trip
	err := r.conn(tx).WithContext(ctx).
		Preload("Itinerary.Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_day.day_number ASC")
		}).
		Preload("Itinerary.Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("activity.order_index ASC")
		}).
		Preload("SafetyReport.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("safety_section.order_index ASC")
		}).
		Where("id = ? AND user_id = ?", tripID, userID).
		First(&trip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Trip, error) {
	var trips []*types.Trip
	if err := r.conn(tx).WithContext(ctx).
		Preload("Itinerary", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "trip_id", "generated_at")
		}).
		Preload("SafetyReport", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "trip_id", "overall_level")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepo) UpdateFields(ctx context.Context, tx *gorm.DB, tripID uuid.UUID, fields map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Trip{}).
		Where("id = ?", tripID).
		Updates(fields).Error
}

func (r *tripRepo) Delete(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", tripID).
		Delete(&types.Trip{}).Error
}
