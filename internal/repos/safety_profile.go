package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type SafetyProfileRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SafetyProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.SafetyProfile) (*types.SafetyProfile, error)
}

type safetyProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSafetyProfileRepo(db *gorm.DB, baseLog *logger.Logger) SafetyProfileRepo {
	return &safetyProfileRepo{db: db, log: baseLog.With("repo", "SafetyProfileRepo")}
}

func (r *safetyProfileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *safetyProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SafetyProfile, error) {
	var profile types.SafetyProfile
	err := r.conn(tx).WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert keys on user_id so a user can never hold two profiles.
func (r *safetyProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.SafetyProfile) (*types.SafetyProfile, error) {
	profile.UpdatedAt = time.Now()
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_lgbtq",
				"is_solo_female",
				"has_accessibility_needs",
				"religious_minority",
				"dietary_restrictions",
				"language_barriers",
				"preferred_budget_level",
				"travel_style",
				"updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, tx, profile.UserID)
}
