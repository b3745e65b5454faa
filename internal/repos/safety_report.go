package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type SafetyReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, report *types.SafetyReport) (*types.SafetyReport, error)
	GetByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) (*types.SafetyReport, error)
	DeleteByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) error
}

type safetyReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSafetyReportRepo(db *gorm.DB, baseLog *logger.Logger) SafetyReportRepo {
	return &safetyReportRepo{db: db, log: baseLog.With("repo", "SafetyReportRepo")}
}

func (r *safetyReportRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *safetyReportRepo) Create(ctx context.Context, tx *gorm.DB, report *types.SafetyReport) (*types.SafetyReport, error) {
	if err := r.conn(tx).WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *safetyReportRepo) GetByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) (*types.SafetyReport, error) {
	var report types.SafetyReport
	err := r.conn(tx).WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("safety_section.order_index ASC")
		}).
		Where("trip_id = ?", tripID).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *safetyReportRepo) DeleteByTripID(ctx context.Context, tx *gorm.DB, tripID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("trip_id = ?", tripID).
		Delete(&types.SafetyReport{}).Error
}
