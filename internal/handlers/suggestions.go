package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/wayfarelabs/wayfare-backend/internal/services"
)

type SuggestionHandler struct {
	suggestionService services.SuggestionService
}

func NewSuggestionHandler(suggestionService services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

func (sh *SuggestionHandler) generate(c *gin.Context, call func(ctx *gin.Context, userID, tripID uuid.UUID) (datatypes.JSON, error)) {
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
	blob, err := call(c, userID, tripID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, blob)
}

func (sh *SuggestionHandler) get(c *gin.Context, call func(ctx *gin.Context, userID, tripID uuid.UUID) (datatypes.JSON, error)) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}
	blob, err := call(c, userID, tripID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, blob)
}

func (sh *SuggestionHandler) GenerateHotels(c *gin.Context) {
	sh.generate(c, func(ctx *gin.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
		return sh.suggestionService.GenerateHotels(ctx.Request.Context(), userID, tripID)
	})
}

func (sh *SuggestionHandler) GenerateFlights(c *gin.Context) {
	sh.generate(c, func(ctx *gin.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
		return sh.suggestionService.GenerateFlights(ctx.Request.Context(), userID, tripID)
	})
}

func (sh *SuggestionHandler) GetHotels(c *gin.Context) {
	sh.get(c, func(ctx *gin.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
		return sh.suggestionService.GetHotels(ctx.Request.Context(), userID, tripID)
	})
}

func (sh *SuggestionHandler) GetFlights(c *gin.Context) {
	sh.get(c, func(ctx *gin.Context, userID, tripID uuid.UUID) (datatypes.JSON, error) {
		return sh.suggestionService.GetFlights(ctx.Request.Context(), userID, tripID)
	})
}
