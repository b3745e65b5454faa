package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

type SafetyProfileInput struct {
	IsLGBTQ               bool
	IsSoloFemale          bool
	HasAccessibilityNeeds bool
	ReligiousMinority     bool
	DietaryRestrictions   []string
	LanguageBarriers      []string
	PreferredBudgetLevel  *string
	TravelStyle           *string
}

type ProfileService interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, in *UpdateProfileInput) (*types.User, error)
	GetSafetyProfile(ctx context.Context, userID uuid.UUID) (*types.SafetyProfile, error)
	UpsertSafetyProfile(ctx context.Context, userID uuid.UUID, in *SafetyProfileInput) (*types.SafetyProfile, error)
}

type profileService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	profileRepo repos.SafetyProfileRepo
}

func NewProfileService(baseLog *logger.Logger, userRepo repos.UserRepo, profileRepo repos.SafetyProfileRepo) ProfileService {
	return &profileService{
		log:         baseLog.With("service", "ProfileService"),
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, in *UpdateProfileInput) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if user == nil {
		return nil, apierr.NotFound("User not found")
	}

	var fields []apierr.FieldError
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
		fields = append(fields, apierr.FieldError{Field: "firstName", Message: "First name cannot be empty"})
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
		fields = append(fields, apierr.FieldError{Field: "lastName", Message: "Last name cannot be empty"})
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields...)
	}

	updates := map[string]any{"updated_at": time.Now()}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if err := s.userRepo.UpdateFields(ctx, nil, userID, updates); err != nil {
		return nil, apierr.Internal(err)
	}
	return s.userRepo.GetByIDWithProfile(ctx, nil, userID)
}

func (s *profileService) GetSafetyProfile(ctx context.Context, userID uuid.UUID) (*types.SafetyProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if profile == nil {
		return nil, apierr.NotFound("Safety profile not found")
	}
	return profile, nil
}

func (s *profileService) UpsertSafetyProfile(ctx context.Context, userID uuid.UUID, in *SafetyProfileInput) (*types.SafetyProfile, error) {
	var fields []apierr.FieldError
	if in.PreferredBudgetLevel != nil && !types.ValidBudgetLevel(*in.PreferredBudgetLevel) {
		fields = append(fields, apierr.FieldError{Field: "preferredBudgetLevel", Message: "Budget level must be one of budget, moderate, luxury"})
	}
	if in.TravelStyle != nil && !types.ValidTravelStyle(*in.TravelStyle) {
		fields = append(fields, apierr.FieldError{Field: "travelStyle", Message: "Travel style must be one of adventurous, relaxed, cultural, mixed"})
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields...)
	}

	dietary := in.DietaryRestrictions
	if dietary == nil {
		dietary = []string{}
	}
	languages := in.LanguageBarriers
	if languages == nil {
		languages = []string{}
	}

	profile := &types.SafetyProfile{
		UserID:                userID,
		IsLGBTQ:               in.IsLGBTQ,
		IsSoloFemale:          in.IsSoloFemale,
		HasAccessibilityNeeds: in.HasAccessibilityNeeds,
		ReligiousMinority:     in.ReligiousMinority,
		DietaryRestrictions:   datatypes.NewJSONSlice(dietary),
		LanguageBarriers:      datatypes.NewJSONSlice(languages),
		PreferredBudgetLevel:  in.PreferredBudgetLevel,
		TravelStyle:           in.TravelStyle,
	}

	saved, err := s.profileRepo.Upsert(ctx, nil, profile)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Safety profile saved", "user_id", userID)
	return saved, nil
}
