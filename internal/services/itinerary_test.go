package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/repos/testutil"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

// fakeAIClient returns canned responses in order, or a canned error.
type fakeAIClient struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeAIClient) CompleteJSON(ctx context.Context, system, user string, params GenerationParams) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func (f *fakeAIClient) Model() string { return "fake-model" }

const validItineraryJSON = `{
  "days": [
    {"dayNumber": 1, "theme": "Arrival", "activities": [
      {"name": "Check in", "category": "RELAXATION", "estimatedCost": 0},
      {"name": "Ramen dinner", "category": "DINING", "estimatedCost": 20, "currency": "JPY"}
    ]},
    {"dayNumber": 2, "theme": "Temples", "activities": [
      {"name": "Senso-ji", "category": "CULTURAL", "estimatedCost": 0}
    ]}
  ]
}`

// fullTripItineraryJSON covers every night of the seeded Oct 1-5 trip.
const fullTripItineraryJSON = `{
  "days": [
    {"dayNumber": 1, "theme": "Arrival", "activities": [
      {"name": "Check in", "category": "RELAXATION", "estimatedCost": 0}
    ]},
    {"dayNumber": 2, "theme": "Temples", "activities": [
      {"name": "Senso-ji", "category": "CULTURAL", "estimatedCost": 0}
    ]},
    {"dayNumber": 3, "theme": "Markets", "activities": [
      {"name": "Tsukiji outer market", "category": "DINING", "estimatedCost": 40}
    ]},
    {"dayNumber": 4, "theme": "Day trip", "activities": [
      {"name": "Kamakura", "category": "SIGHTSEEING", "estimatedCost": 30}
    ]}
  ]
}`

func seedUser(t *testing.T, tx *gorm.DB, email string) *types.User {
	t.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedTrip(t *testing.T, tx *gorm.DB, userID uuid.UUID) *types.Trip {
	t.Helper()
	trip := &types.Trip{
		ID:                uuid.New(),
		UserID:            userID,
		Destination:       "Tokyo",
		Country:           "Japan",
		StartDate:         time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		Budget:            2000,
		Currency:          "USD",
		NumberOfTravelers: 2,
		Status:            types.TripStatusDraft,
	}
	if err := tx.Create(trip).Error; err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return trip
}

func newItineraryService(tx *gorm.DB, t *testing.T, ai AIClient) (ItineraryService, repos.TripRepo) {
	log := testutil.Logger(t)
	tripRepo := repos.NewTripRepo(tx, log)
	itineraryRepo := repos.NewItineraryRepo(tx, log)
	return NewItineraryService(tx, log, tripRepo, itineraryRepo, ai), tripRepo
}

func TestItineraryService_Generate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	user := seedUser(t, tx, "gen@example.com")
	trip := seedTrip(t, tx, user.ID)

	ai := &fakeAIClient{responses: []string{validItineraryJSON}}
	svc, tripRepo := newItineraryService(tx, t, ai)

	itinerary, err := svc.Generate(context.Background(), user.ID, trip.ID, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(itinerary.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(itinerary.Days))
	}
	if itinerary.Days[0].DayNumber != 1 || itinerary.Days[1].DayNumber != 2 {
		t.Fatal("days out of order")
	}
	if itinerary.AIModel != "fake-model" {
		t.Fatalf("ai model = %q", itinerary.AIModel)
	}

	// Trip advances to PLANNED.
	got, err := tripRepo.GetByIDForUser(context.Background(), nil, trip.ID, user.ID)
	if err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	if got.Status != types.TripStatusPlanned {
		t.Fatalf("trip status = %q, want PLANNED", got.Status)
	}
}

func TestItineraryService_GenerateFullTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	user := seedUser(t, tx, "fulltrip@example.com")
	trip := seedTrip(t, tx, user.ID)

	ai := &fakeAIClient{responses: []string{fullTripItineraryJSON}}
	svc, tripRepo := newItineraryService(tx, t, ai)

	itinerary, err := svc.Generate(context.Background(), user.ID, trip.ID, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(itinerary.Days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(itinerary.Days))
	}
	for i, day := range itinerary.Days {
		if day.DayNumber != i+1 {
			t.Fatalf("day %d: number = %d", i, day.DayNumber)
		}
		want := trip.StartDate.AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Fatalf("day %d: date = %s, want %s", day.DayNumber, day.Date, want)
		}
	}

	got, err := tripRepo.GetByIDForUser(context.Background(), nil, trip.ID, user.ID)
	if err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	if got.Status != types.TripStatusPlanned {
		t.Fatalf("trip status = %q, want PLANNED", got.Status)
	}
}

func TestItineraryService_RegenerateReplaces(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	user := seedUser(t, tx, "regen@example.com")
	trip := seedTrip(t, tx, user.ID)

	ai := &fakeAIClient{responses: []string{validItineraryJSON}}
	svc, _ := newItineraryService(tx, t, ai)

	first, err := svc.Generate(context.Background(), user.ID, trip.ID, nil)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), user.ID, trip.ID, nil)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("regeneration must produce a fresh itinerary row")
	}

	var count int64
	if err := tx.Model(&types.Itinerary{}).Where("trip_id = ?", trip.ID).Count(&count).Error; err != nil {
		t.Fatalf("count itineraries: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one itinerary row, got %d", count)
	}

	// Old days are gone, cascaded by the delete.
	var dayCount int64
	if err := tx.Model(&types.ItineraryDay{}).Where("itinerary_id = ?", first.ID).Count(&dayCount).Error; err != nil {
		t.Fatalf("count old days: %v", err)
	}
	if dayCount != 0 {
		t.Fatalf("expected old days removed, found %d", dayCount)
	}
}

func TestItineraryService_ParseFailureLeavesPriorIntact(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	user := seedUser(t, tx, "parsefail@example.com")
	trip := seedTrip(t, tx, user.ID)

	ai := &fakeAIClient{responses: []string{validItineraryJSON, "this is not json"}}
	svc, _ := newItineraryService(tx, t, ai)

	first, err := svc.Generate(context.Background(), user.ID, trip.ID, nil)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	_, err = svc.Generate(context.Background(), user.ID, trip.ID, nil)
	if err == nil {
		t.Fatal("expected parse failure")
	}
	ae := apierr.From(err)
	if ae.Status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", ae.Status)
	}

	// The earlier itinerary survives untouched.
	still, err := svc.GetByTrip(context.Background(), user.ID, trip.ID)
	if err != nil {
		t.Fatalf("GetByTrip after failure: %v", err)
	}
	if still.ID != first.ID {
		t.Fatal("failed regeneration must not replace the prior itinerary")
	}
}

func TestItineraryService_ProviderErrorMapping(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	user := seedUser(t, tx, "provider@example.com")
	trip := seedTrip(t, tx, user.ID)

	ai := &fakeAIClient{err: errors.New("connection refused")}
	svc, _ := newItineraryService(tx, t, ai)

	_, err := svc.Generate(context.Background(), user.ID, trip.ID, nil)
	ae := apierr.From(err)
	if ae.Status != http.StatusServiceUnavailable || ae.Code != "provider_unavailable" {
		t.Fatalf("got status=%d code=%q", ae.Status, ae.Code)
	}
}

func TestItineraryService_OwnershipGuard(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	owner := seedUser(t, tx, "owner@example.com")
	intruder := seedUser(t, tx, "intruder@example.com")
	trip := seedTrip(t, tx, owner.ID)

	ai := &fakeAIClient{responses: []string{validItineraryJSON}}
	svc, _ := newItineraryService(tx, t, ai)

	_, err := svc.Generate(context.Background(), intruder.ID, trip.ID, nil)
	ae := apierr.From(err)
	if ae.Status != http.StatusNotFound {
		t.Fatalf("foreign trip must read as not found, got %d", ae.Status)
	}
	if ai.calls != 0 {
		t.Fatal("guard must reject before any provider call")
	}

	// Same result for a trip that does not exist at all.
	_, err = svc.Generate(context.Background(), intruder.ID, uuid.New(), nil)
	if apierr.From(err).Status != http.StatusNotFound {
		t.Fatal("missing trip must read as not found")
	}
}

func TestItineraryService_GetBeforeGenerate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	user := seedUser(t, tx, "empty@example.com")
	trip := seedTrip(t, tx, user.ID)

	svc, _ := newItineraryService(tx, t, &fakeAIClient{responses: []string{validItineraryJSON}})

	_, err := svc.GetByTrip(context.Background(), user.ID, trip.ID)
	if apierr.From(err).Status != http.StatusNotFound {
		t.Fatal("expected not found before generation")
	}
}
