package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type SafetyService interface {
	Generate(ctx context.Context, userID, tripID uuid.UUID) (*types.SafetyReport, error)
	GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (*types.SafetyReport, error)
}

type safetyService struct {
	db          *gorm.DB
	log         *logger.Logger
	tripRepo    repos.TripRepo
	reportRepo  repos.SafetyReportRepo
	profileRepo repos.SafetyProfileRepo
	ai          AIClient
}

func NewSafetyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	tripRepo repos.TripRepo,
	reportRepo repos.SafetyReportRepo,
	profileRepo repos.SafetyProfileRepo,
	ai AIClient,
) SafetyService {
	return &safetyService{
		db:          db,
		log:         baseLog.With("service", "SafetyService"),
		tripRepo:    tripRepo,
		reportRepo:  reportRepo,
		profileRepo: profileRepo,
		ai:          ai,
	}
}

func (s *safetyService) Generate(ctx context.Context, userID, tripID uuid.UUID) (*types.SafetyReport, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}

	// A missing profile is fine; the prompt falls back to general advice.
	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	system, user := BuildSafetyReportPrompt(trip, profile)
	raw, err := s.ai.CompleteJSON(ctx, system, user, GenerationParams{
		Temperature: safetyTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		s.log.Warn("Safety report generation call failed", "trip_id", tripID, "error", err)
		return nil, providerError(err)
	}

	gen, err := ParseSafetyReportResponse(raw)
	if err != nil {
		s.log.Warn("Safety report response failed to parse", "trip_id", tripID, "error", err)
		return nil, apierr.ProviderUnavailable(msgUnreadableResponse)
	}

	report := BuildSafetyReportRows(trip, gen, s.ai.Model())

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepo.DeleteByTripID(ctx, tx, trip.ID); err != nil {
			return err
		}
		_, err := s.reportRepo.Create(ctx, tx, report)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict(msgRegenerateConflict)
		}
		return nil, apierr.Internal(err)
	}

	s.log.Info("Safety report generated", "trip_id", trip.ID, "overall_level", report.OverallLevel, "sections", len(report.Sections))
	return s.reportRepo.GetByTripID(ctx, nil, trip.ID)
}

func (s *safetyService) GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (*types.SafetyReport, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}

	report, err := s.reportRepo.GetByTripID(ctx, nil, trip.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if report == nil {
		return nil, apierr.NotFound("Safety report not found. Generate one first.")
	}
	return report, nil
}
