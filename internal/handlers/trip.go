package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/ctxutil"
	"github.com/wayfarelabs/wayfare-backend/internal/services"
)

const dateLayout = "2006-01-02"

type TripHandler struct {
	tripService services.TripService
}

func NewTripHandler(tripService services.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

func parseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func requestUser(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("No authenticated user"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondBadRequest(c, "Invalid id in path")
		return uuid.Nil, false
	}
	return id, true
}

func (th *TripHandler) Create(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	var req struct {
		Destination       string  `json:"destination"`
		Country           string  `json:"country"`
		City              *string `json:"city"`
		StartDate         string  `json:"startDate"`
		EndDate           string  `json:"endDate"`
		Budget            float64 `json:"budget"`
		Currency          string  `json:"currency"`
		NumberOfTravelers int     `json:"numberOfTravelers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		RespondError(c, apierr.Validation(apierr.FieldError{Field: "startDate", Message: "Start date must be YYYY-MM-DD"}))
		return
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		RespondError(c, apierr.Validation(apierr.FieldError{Field: "endDate", Message: "End date must be YYYY-MM-DD"}))
		return
	}
	trip, err := th.tripService.Create(c.Request.Context(), userID, &services.CreateTripInput{
		Destination:       req.Destination,
		Country:           req.Country,
		City:              req.City,
		StartDate:         start,
		EndDate:           end,
		Budget:            req.Budget,
		Currency:          req.Currency,
		NumberOfTravelers: req.NumberOfTravelers,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, trip)
}

func (th *TripHandler) List(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	trips, err := th.tripService.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, trips)
}

func (th *TripHandler) Get(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	trip, err := th.tripService.Get(c.Request.Context(), userID, tripID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, trip)
}

func (th *TripHandler) Update(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Destination       *string  `json:"destination"`
		Country           *string  `json:"country"`
		City              *string  `json:"city"`
		StartDate         *string  `json:"startDate"`
		EndDate           *string  `json:"endDate"`
		Budget            *float64 `json:"budget"`
		Currency          *string  `json:"currency"`
		NumberOfTravelers *int     `json:"numberOfTravelers"`
		Status            *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body")
		return
	}

	in := &services.UpdateTripInput{
		Destination:       req.Destination,
		Country:           req.Country,
		City:              req.City,
		Budget:            req.Budget,
		Currency:          req.Currency,
		NumberOfTravelers: req.NumberOfTravelers,
		Status:            req.Status,
	}
	if req.StartDate != nil {
		start, ok := parseDate(*req.StartDate)
		if !ok || start.IsZero() {
			RespondError(c, apierr.Validation(apierr.FieldError{Field: "startDate", Message: "Start date must be YYYY-MM-DD"}))
			return
		}
		in.StartDate = &start
	}
	if req.EndDate != nil {
		end, ok := parseDate(*req.EndDate)
		if !ok || end.IsZero() {
			RespondError(c, apierr.Validation(apierr.FieldError{Field: "endDate", Message: "End date must be YYYY-MM-DD"}))
			return
		}
		in.EndDate = &end
	}

	trip, err := th.tripService.Update(c.Request.Context(), userID, tripID, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, trip)
}

func (th *TripHandler) Delete(c *gin.Context) {
	userID, ok := requestUser(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := th.tripService.Delete(c.Request.Context(), userID, tripID); err != nil {
		RespondError(c, err)
		return
	}
	RespondMessage(c, "Trip deleted successfully")
}
