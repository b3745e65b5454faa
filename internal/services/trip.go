package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type CreateTripInput struct {
	Destination       string
	Country           string
	City              *string
	StartDate         time.Time
	EndDate           time.Time
	Budget            float64
	Currency          string
	NumberOfTravelers int
}

// UpdateTripInput carries only the fields present in the request; nil means
// "leave unchanged". Date changes are validated against the merged result.
type UpdateTripInput struct {
	Destination       *string
	Country           *string
	City              *string
	StartDate         *time.Time
	EndDate           *time.Time
	Budget            *float64
	Currency          *string
	NumberOfTravelers *int
	Status            *string
}

type TripService interface {
	Create(ctx context.Context, userID uuid.UUID, in *CreateTripInput) (*types.Trip, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Trip, error)
	Get(ctx context.Context, userID, tripID uuid.UUID) (*types.Trip, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, in *UpdateTripInput) (*types.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

type tripService struct {
	log      *logger.Logger
	tripRepo repos.TripRepo
}

func NewTripService(baseLog *logger.Logger, tripRepo repos.TripRepo) TripService {
	return &tripService{
		log:      baseLog.With("service", "TripService"),
		tripRepo: tripRepo,
	}
}

func validCurrency(v string) bool {
	if len(v) != 3 {
		return false
	}
	for _, r := range v {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validateCreateTrip(in *CreateTripInput) []apierr.FieldError {
	var fields []apierr.FieldError
	if strings.TrimSpace(in.Destination) == "" {
		fields = append(fields, apierr.FieldError{Field: "destination", Message: "Destination is required"})
	}
	if strings.TrimSpace(in.Country) == "" {
		fields = append(fields, apierr.FieldError{Field: "country", Message: "Country is required"})
	}
	if in.StartDate.IsZero() {
		fields = append(fields, apierr.FieldError{Field: "startDate", Message: "Start date is required"})
	}
	if in.EndDate.IsZero() {
		fields = append(fields, apierr.FieldError{Field: "endDate", Message: "End date is required"})
	} else if !in.StartDate.IsZero() && !in.EndDate.After(in.StartDate) {
		fields = append(fields, apierr.FieldError{Field: "endDate", Message: "End date must be after start date"})
	}
	if in.Budget <= 0 {
		fields = append(fields, apierr.FieldError{Field: "budget", Message: "Budget must be greater than zero"})
	}
	if !validCurrency(strings.ToUpper(strings.TrimSpace(in.Currency))) {
		fields = append(fields, apierr.FieldError{Field: "currency", Message: "Currency must be a 3-letter code"})
	}
	if in.NumberOfTravelers < 1 {
		fields = append(fields, apierr.FieldError{Field: "numberOfTravelers", Message: "Number of travelers must be at least 1"})
	}
	return fields
}

func validateUpdateTrip(trip *types.Trip, in *UpdateTripInput) []apierr.FieldError {
	var fields []apierr.FieldError
	if in.Destination != nil && strings.TrimSpace(*in.Destination) == "" {
		fields = append(fields, apierr.FieldError{Field: "destination", Message: "Destination cannot be empty"})
	}
	if in.Country != nil && strings.TrimSpace(*in.Country) == "" {
		fields = append(fields, apierr.FieldError{Field: "country", Message: "Country cannot be empty"})
	}

	// Enforce the date invariant on the merged trip, so moving one endpoint
	// past the other is rejected even when the other is untouched.
	start := trip.StartDate
	end := trip.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if (in.StartDate != nil || in.EndDate != nil) && !end.After(start) {
		fields = append(fields, apierr.FieldError{Field: "endDate", Message: "End date must be after start date"})
	}

	if in.Budget != nil && *in.Budget <= 0 {
		fields = append(fields, apierr.FieldError{Field: "budget", Message: "Budget must be greater than zero"})
	}
	if in.Currency != nil && !validCurrency(strings.ToUpper(strings.TrimSpace(*in.Currency))) {
		fields = append(fields, apierr.FieldError{Field: "currency", Message: "Currency must be a 3-letter code"})
	}
	if in.NumberOfTravelers != nil && *in.NumberOfTravelers < 1 {
		fields = append(fields, apierr.FieldError{Field: "numberOfTravelers", Message: "Number of travelers must be at least 1"})
	}
	if in.Status != nil && !types.ValidTripStatus(*in.Status) {
		fields = append(fields, apierr.FieldError{Field: "status", Message: "Status must be one of DRAFT, PLANNED, IN_PROGRESS, COMPLETED, CANCELLED"})
	}
	return fields
}

func (s *tripService) Create(ctx context.Context, userID uuid.UUID, in *CreateTripInput) (*types.Trip, error) {
	if fields := validateCreateTrip(in); len(fields) > 0 {
		return nil, apierr.Validation(fields...)
	}

	trip := &types.Trip{
		ID:                uuid.New(),
		UserID:            userID,
		Destination:       strings.TrimSpace(in.Destination),
		Country:           strings.TrimSpace(in.Country),
		City:              in.City,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Budget:            in.Budget,
		Currency:          strings.ToUpper(strings.TrimSpace(in.Currency)),
		NumberOfTravelers: in.NumberOfTravelers,
		Status:            types.TripStatusDraft,
	}

	created, err := s.tripRepo.Create(ctx, nil, trip)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Trip created", "trip_id", created.ID, "user_id", userID, "destination", created.Destination)
	return created, nil
}

func (s *tripService) List(ctx context.Context, userID uuid.UUID) ([]*types.Trip, error) {
	trips, err := s.tripRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return trips, nil
}

func (s *tripService) Get(ctx context.Context, userID, tripID uuid.UUID) (*types.Trip, error) {
	trip, err := s.tripRepo.GetByIDForUserWithDetails(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}
	return trip, nil
}

func (s *tripService) Update(ctx context.Context, userID, tripID uuid.UUID, in *UpdateTripInput) (*types.Trip, error) {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if trip == nil {
		return nil, apierr.NotFound("Trip not found")
	}

	if fields := validateUpdateTrip(trip, in); len(fields) > 0 {
		return nil, apierr.Validation(fields...)
	}

	updates := map[string]any{"updated_at": time.Now()}
	if in.Destination != nil {
		updates["destination"] = strings.TrimSpace(*in.Destination)
	}
	if in.Country != nil {
		updates["country"] = strings.TrimSpace(*in.Country)
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	if in.Budget != nil {
		updates["budget"] = *in.Budget
	}
	if in.Currency != nil {
		updates["currency"] = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.NumberOfTravelers != nil {
		updates["number_of_travelers"] = *in.NumberOfTravelers
	}
	if in.Status != nil {
		updates["status"] = types.TripStatus(*in.Status)
	}

	if err := s.tripRepo.UpdateFields(ctx, nil, trip.ID, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	return s.tripRepo.GetByIDForUserWithDetails(ctx, nil, trip.ID, userID)
}

func (s *tripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	trip, err := s.tripRepo.GetByIDForUser(ctx, nil, tripID, userID)
	if err != nil {
		return apierr.Internal(err)
	}
	if trip == nil {
		return apierr.NotFound("Trip not found")
	}
	if err := s.tripRepo.Delete(ctx, nil, trip.ID); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Trip deleted", "trip_id", trip.ID, "user_id", userID)
	return nil
}
