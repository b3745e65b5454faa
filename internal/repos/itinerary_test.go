package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wayfarelabs/wayfare-backend/internal/repos/testutil"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

func TestItineraryRepo_UniquePerTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewItineraryRepo(tx, testutil.Logger(t))

	user := createUser(t, tx, "unique-repo@example.com")
	trip := createTrip(t, tx, user.ID)

	newItinerary := func() *types.Itinerary {
		return &types.Itinerary{
			ID:          uuid.New(),
			TripID:      trip.ID,
			AIModel:     "m",
			GeneratedAt: time.Now(),
		}
	}
	if _, err := repo.Create(context.Background(), nil, newItinerary()); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := repo.Create(context.Background(), nil, newItinerary())
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second itinerary for the same trip must hit the unique index, got %v", err)
	}
}

func TestItineraryRepo_DeleteByTripID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewItineraryRepo(tx, testutil.Logger(t))

	user := createUser(t, tx, "delete-repo@example.com")
	trip := createTrip(t, tx, user.ID)

	itinerary := &types.Itinerary{
		ID:          uuid.New(),
		TripID:      trip.ID,
		AIModel:     "m",
		GeneratedAt: time.Now(),
		Days: []types.ItineraryDay{{
			ID:        uuid.New(),
			DayNumber: 1,
			Date:      trip.StartDate,
		}},
	}
	itinerary.Days[0].ItineraryID = itinerary.ID
	if _, err := repo.Create(context.Background(), nil, itinerary); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.DeleteByTripID(context.Background(), nil, trip.ID); err != nil {
		t.Fatalf("DeleteByTripID: %v", err)
	}

	got, err := repo.GetByTripID(context.Background(), nil, trip.ID)
	if err != nil {
		t.Fatalf("GetByTripID: %v", err)
	}
	if got != nil {
		t.Fatal("itinerary still present after delete")
	}

	var dayCount int64
	if err := tx.Model(&types.ItineraryDay{}).Where("itinerary_id = ?", itinerary.ID).Count(&dayCount).Error; err != nil {
		t.Fatalf("count days: %v", err)
	}
	if dayCount != 0 {
		t.Fatalf("days survived the cascade: %d", dayCount)
	}

	// Deleting when nothing exists is a no-op.
	if err := repo.DeleteByTripID(context.Background(), nil, trip.ID); err != nil {
		t.Fatalf("idempotent delete: %v", err)
	}
}
