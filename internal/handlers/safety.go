package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarelabs/wayfare-backend/internal/services"
)

type SafetyHandler struct {
	safetyService services.SafetyService
}

func NewSafetyHandler(safetyService services.SafetyService) *SafetyHandler {
	return &SafetyHandler{safetyService: safetyService}
}

func (sh *SafetyHandler) Generate(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var req struct {
		TripID string `json:"tripId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		RespondBadRequest(c, "Invalid tripId")
		return
	}
	report, err := sh.safetyService.Generate(c.Request.Context(), userID, tripID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, report)
}

func (sh *SafetyHandler) GetByTrip(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}
	report, err := sh.safetyService.GetByTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, report)
}
