package repos

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/wayfarelabs/wayfare-backend/internal/repos/testutil"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

func TestSafetyProfileRepo_Upsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	repo := NewSafetyProfileRepo(tx, log)

	user := createUser(t, tx, "profile-repo@example.com")

	budget := types.BudgetLevelModerate
	first, err := repo.Upsert(context.Background(), nil, &types.SafetyProfile{
		UserID:               user.ID,
		IsSoloFemale:         true,
		DietaryRestrictions:  datatypes.NewJSONSlice([]string{"vegan"}),
		LanguageBarriers:     datatypes.NewJSONSlice([]string{}),
		PreferredBudgetLevel: &budget,
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !first.IsSoloFemale {
		t.Fatal("flag not stored")
	}

	// Second upsert for the same user updates in place.
	style := types.TravelStyleCultural
	second, err := repo.Upsert(context.Background(), nil, &types.SafetyProfile{
		UserID:              user.ID,
		IsSoloFemale:        false,
		IsLGBTQ:             true,
		DietaryRestrictions: datatypes.NewJSONSlice([]string{}),
		LanguageBarriers:    datatypes.NewJSONSlice([]string{"Japanese"}),
		TravelStyle:         &style,
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.IsSoloFemale || !second.IsLGBTQ {
		t.Fatal("upsert did not overwrite flags")
	}

	var count int64
	if err := tx.Model(&types.SafetyProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one profile per user, got %d", count)
	}
}

func TestSafetyProfileRepo_GetMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewSafetyProfileRepo(tx, testutil.Logger(t))

	user := createUser(t, tx, "noprofile-repo@example.com")
	profile, err := repo.GetByUserID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile != nil {
		t.Fatal("missing profile must come back nil without error")
	}
}
