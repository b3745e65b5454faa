package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarelabs/wayfare-backend/internal/services"
)

type ItineraryHandler struct {
	itineraryService services.ItineraryService
}

func NewItineraryHandler(itineraryService services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

func (ih *ItineraryHandler) Generate(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var req struct {
		TripID      string                         `json:"tripId"`
		Preferences *services.ItineraryPreferences `json:"preferences"`
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
	itinerary, err := ih.itineraryService.Generate(c.Request.Context(), userID, tripID, req.Preferences)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, itinerary)
}

func (ih *ItineraryHandler) GetByTrip(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}
	itinerary, err := ih.itineraryService.GetByTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, itinerary)
}
