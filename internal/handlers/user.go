package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/ctxutil"
	"github.com/wayfarelabs/wayfare-backend/internal/services"
)

type UserHandler struct {
	profileService services.ProfileService
	authService    services.AuthService
}

func NewUserHandler(profileService services.ProfileService, authService services.AuthService) *UserHandler {
	return &UserHandler{profileService: profileService, authService: authService}
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("No authenticated user"))
		return
	}
	user, err := uh.authService.Me(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("No authenticated user"))
		return
	}
	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}
	user, err := uh.profileService.UpdateProfile(c.Request.Context(), rd.UserID, &services.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) GetSafetyProfile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("No authenticated user"))
		return
	}
	profile, err := uh.profileService.GetSafetyProfile(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (uh *UserHandler) UpsertSafetyProfile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("No authenticated user"))
		return
	}
	var req struct {
		IsLGBTQ               bool     `json:"isLgbtq"`
		IsSoloFemale          bool     `json:"isSoloFemale"`
		HasAccessibilityNeeds bool     `json:"hasAccessibilityNeeds"`
		ReligiousMinority     bool     `json:"religiousMinority"`
		DietaryRestrictions   []string `json:"dietaryRestrictions"`
		LanguageBarriers      []string `json:"languageBarriers"`
		PreferredBudgetLevel  *string  `json:"preferredBudgetLevel"`
		TravelStyle           *string  `json:"travelStyle"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}
	profile, err := uh.profileService.UpsertSafetyProfile(c.Request.Context(), rd.UserID, &services.SafetyProfileInput{
		IsLGBTQ:               req.IsLGBTQ,
		IsSoloFemale:          req.IsSoloFemale,
		HasAccessibilityNeeds: req.HasAccessibilityNeeds,
		ReligiousMinority:     req.ReligiousMinority,
		DietaryRestrictions:   req.DietaryRestrictions,
		LanguageBarriers:      req.LanguageBarriers,
		PreferredBudgetLevel:  req.PreferredBudgetLevel,
		TravelStyle:           req.TravelStyle,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, profile)
}
