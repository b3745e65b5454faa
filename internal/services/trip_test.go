package services

import (
	"testing"
	"time"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

func validCreateInput() *CreateTripInput {
	return &CreateTripInput{
		Destination:       "Tokyo",
		Country:           "Japan",
		StartDate:         time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		Budget:            2000,
		Currency:          "USD",
		NumberOfTravelers: 2,
	}
}

func hasFieldError(fields []apierr.FieldError, field string) bool {
	for _, f := range fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func TestValidateCreateTrip(t *testing.T) {
	if fields := validateCreateTrip(validCreateInput()); len(fields) != 0 {
		t.Fatalf("valid input rejected: %v", fields)
	}

	cases := []struct {
		name      string
		mutate    func(*CreateTripInput)
		wantField string
	}{
		{"empty destination", func(in *CreateTripInput) { in.Destination = "  " }, "destination"},
		{"empty country", func(in *CreateTripInput) { in.Country = "" }, "country"},
		{"end equals start", func(in *CreateTripInput) { in.EndDate = in.StartDate }, "endDate"},
		{"end before start", func(in *CreateTripInput) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }, "endDate"},
		{"zero budget", func(in *CreateTripInput) { in.Budget = 0 }, "budget"},
		{"negative budget", func(in *CreateTripInput) { in.Budget = -10 }, "budget"},
		{"bad currency", func(in *CreateTripInput) { in.Currency = "dollars" }, "currency"},
		{"zero travelers", func(in *CreateTripInput) { in.NumberOfTravelers = 0 }, "numberOfTravelers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(in)
			fields := validateCreateTrip(in)
			if !hasFieldError(fields, tc.wantField) {
				t.Fatalf("expected %q error, got %v", tc.wantField, fields)
			}
		})
	}
}

func TestValidateCreateTrip_LowercaseCurrencyAccepted(t *testing.T) {
	in := validCreateInput()
	in.Currency = "usd"
	if fields := validateCreateTrip(in); len(fields) != 0 {
		t.Fatalf("lowercase currency should normalize, got %v", fields)
	}
}

func TestValidateUpdateTrip_MergedDates(t *testing.T) {
	trip := &types.Trip{
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}

	// Moving only the start date past the stored end date must fail.
	badStart := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	fields := validateUpdateTrip(trip, &UpdateTripInput{StartDate: &badStart})
	if !hasFieldError(fields, "endDate") {
		t.Fatalf("expected merged-date violation, got %v", fields)
	}

	// Moving only the end date before the stored start date must fail.
	badEnd := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fields = validateUpdateTrip(trip, &UpdateTripInput{EndDate: &badEnd})
	if !hasFieldError(fields, "endDate") {
		t.Fatalf("expected merged-date violation, got %v", fields)
	}

	// Moving both consistently is fine.
	newStart := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	newEnd := time.Date(2026, 11, 8, 0, 0, 0, 0, time.UTC)
	fields = validateUpdateTrip(trip, &UpdateTripInput{StartDate: &newStart, EndDate: &newEnd})
	if len(fields) != 0 {
		t.Fatalf("consistent date move rejected: %v", fields)
	}
}

func TestValidateUpdateTrip_Status(t *testing.T) {
	trip := &types.Trip{
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}

	bad := "ARCHIVED"
	if fields := validateUpdateTrip(trip, &UpdateTripInput{Status: &bad}); !hasFieldError(fields, "status") {
		t.Fatalf("expected status error, got %v", fields)
	}

	good := string(types.TripStatusCancelled)
	if fields := validateUpdateTrip(trip, &UpdateTripInput{Status: &good}); len(fields) != 0 {
		t.Fatalf("valid status rejected: %v", fields)
	}
}
