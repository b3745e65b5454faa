package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

const (
	itineraryTemperature   = 0.8
	safetyTemperature      = 0.7
	suggestionsTemperature = 0.8

	generationMaxTokens = 4096

	msgRateLimited        = "AI service is temporarily rate-limited. Please wait a minute and try again."
	msgProviderDown       = "AI service is currently unavailable. Please try again later."
	msgUnreadableResponse = "AI service returned an unreadable response. Please try again."
	msgRegenerateConflict = "Another generation for this trip is in progress. Please retry."
)

// providerError maps an AIClient failure onto the error taxonomy.
func providerError(err error) *apierr.Error {
	if IsRateLimited(err) {
		return apierr.RateLimited(msgRateLimited)
	}
	return apierr.ProviderUnavailable(msgProviderDown)
}

type ItineraryService interface {
	Generate(ctx context.Context, userID, tripID uuid.UUID, prefs *ItineraryPreferences) (*types.Itinerary, error)
	GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (*types.Itinerary, error)
}

type itineraryService struct {
	db            *gorm.DB
	log           *logger.Logger
	tripRepo      repos.TripRepo
	itineraryRepo repos.ItineraryRepo
	ai            AIClient
}

func NewItineraryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	tripRepo repos.TripRepo,
	itineraryRepo repos.ItineraryRepo,
	ai AIClient,
) ItineraryService {
	return &itineraryService{
		db:            db,
		log:           baseLog.With("service", "ItineraryService"),
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		ai:            ai,
	}
}

// Generate runs the full workflow: ownership guard, prompt, provider call,
// parse/normalize, then a single transaction that replaces any prior
// itinerary and advances the trip to PLANNED. The transaction is only entered
// once the response has parsed, so a bad response never touches stored state.
func (s *itineraryService) Generate(ctx context.Context, userID, tripID uuid.UUID, prefs *ItineraryPreferences) (*types.Itinerary, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}

	system, user := BuildItineraryPrompt(trip, prefs)
	raw, err := s.ai.CompleteJSON(ctx, system, user, GenerationParams{
		Temperature: itineraryTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		s.log.Warn("Itinerary generation call failed", "trip_id", tripID, "error", err)
		return nil, providerError(err)
	}

	gen, err := ParseItineraryResponse(raw)
	if err != nil {
		s.log.Warn("Itinerary response failed to parse", "trip_id", tripID, "error", err)
		return nil, apierr.ProviderUnavailable(msgUnreadableResponse)
	}

	itinerary := BuildItineraryRows(trip, gen, s.ai.Model())

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.itineraryRepo.DeleteByTripID(ctx, tx, trip.ID); err != nil {
			return err
		}
		if _, err := s.itineraryRepo.Create(ctx, tx, itinerary); err != nil {
			return err
		}
		return s.tripRepo.UpdateFields(ctx, tx, trip.ID, map[string]any{
			"status":     types.TripStatusPlanned,
			"updated_at": time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict(msgRegenerateConflict)
		}
		return nil, apierr.Internal(err)
	}

	s.log.Info("Itinerary generated", "trip_id", trip.ID, "days", len(itinerary.Days))
	return s.itineraryRepo.GetByTripID(ctx, nil, trip.ID)
}

func (s *itineraryService) GetByTrip(ctx context.Context, userID, tripID uuid.UUID) (*types.Itinerary, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}

	itinerary, err := s.itineraryRepo.GetByTripID(ctx, nil, trip.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if itinerary == nil {
		return nil, apierr.NotFound("Itinerary not found. Generate one first.")
	}
	return itinerary, nil
}
