package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
)

type SuggestionService interface {
	GenerateHotels(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error)
	GenerateFlights(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error)
	GetHotels(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error)
	GetFlights(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error)
}

type suggestionService struct {
	log      *logger.Logger
	tripRepo repos.TripRepo
	ai       AIClient
}

func NewSuggestionService(baseLog *logger.Logger, tripRepo repos.TripRepo, ai AIClient) SuggestionService {
	return &suggestionService{
		log:      baseLog.With("service", "SuggestionService"),
		tripRepo: tripRepo,
		ai:       ai,
	}
}

// generate is shared by the hotel and flight paths, which differ only in
// prompt and target column. The stored blob is replaced wholesale.
func (s *suggestionService) generate(
	ctx context.Context,
	tripID uuid.UUID,
	kind string,
	column string,
	buildPrompt func() (string, string),
) (datatypes.JSON, error) {
	system, user := buildPrompt()
	raw, err := s.ai.CompleteJSON(ctx, system, user, GenerationParams{
		Temperature: suggestionsTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		s.log.Warn("Suggestion generation call failed", "kind", kind, "trip_id", tripID, "error", err)
		return nil, providerError(err)
	}

	blob, err := ParseSuggestionsResponse(raw)
	if err != nil {
		s.log.Warn("Suggestion response failed to parse", "kind", kind, "trip_id", tripID, "error", err)
		return nil, apierr.ProviderUnavailable(msgUnreadableResponse)
	}

	if err := s.tripRepo.UpdateFields(ctx, nil, tripID, map[string]any{
		column:       blob,
		"updated_at": time.Now(),
	}); err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("Suggestions generated", "kind", kind, "trip_id", tripID)
	return blob, nil
}

func (s *suggestionService) GenerateHotels(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}
	return s.generate(ctx, trip.ID, "hotel", "hotel_suggestions", func() (string, string) {
		return BuildHotelSuggestionsPrompt(trip)
	})
}

func (s *suggestionService) GenerateFlights(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}
	return s.generate(ctx, trip.ID, "flight", "flight_suggestions", func() (string, string) {
		return BuildFlightSuggestionsPrompt(trip)
	})
}

func (s *suggestionService) GetHotels(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}
	if len(trip.HotelSuggestions) == 0 {
		return nil, apierr.NotFound("Hotel suggestions not found. Generate them first.")
	}
	return trip.HotelSuggestions, nil
}

func (s *suggestionService) GetFlights(ctx context.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}
	if len(trip.FlightSuggestions) == 0 {
		return nil, apierr.NotFound("Flight suggestions not found. Generate them first.")
	}
	return trip.FlightSuggestions, nil
}
