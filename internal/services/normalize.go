package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

// Generated* structs are the parse boundary for model output: decoding into
// them drops unknown fields, structural mismatches fail the whole parse, and
// nothing un-decoded ever reaches a persistence call.

type GeneratedActivity struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Location        string  `json:"location"`
	Address         string  `json:"address"`
	StartTime       string  `json:"startTime"`
	Duration        int     `json:"duration"`
	EstimatedCost   float64 `json:"estimatedCost"`
	Currency        string  `json:"currency"`
	SafetyNotes     string  `json:"safetyNotes"`
	RequiresBooking bool    `json:"requiresBooking"`
}

type GeneratedDay struct {
	DayNumber  int                 `json:"dayNumber"`
	Theme      string              `json:"theme"`
	Activities []GeneratedActivity `json:"activities"`
}

type GeneratedItinerary struct {
	Days []GeneratedDay `json:"days"`
}

type GeneratedSafetySection struct {
	Title     string   `json:"title"`
	Level     string   `json:"level"`
	Content   string   `json:"content"`
	Tips      []string `json:"tips"`
	Resources []string `json:"resources"`
}

type GeneratedSafetyReport struct {
	OverallLevel string                   `json:"overallLevel"`
	Summary      string                   `json:"summary"`
	Sections     []GeneratedSafetySection `json:"sections"`
}

func ParseItineraryResponse(raw string) (*GeneratedItinerary, error) {
	var gen GeneratedItinerary
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("parse itinerary response: %w", err)
	}
	return &gen, nil
}

func ParseSafetyReportResponse(raw string) (*GeneratedSafetyReport, error) {
	var gen GeneratedSafetyReport
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("parse safety report response: %w", err)
	}
	return &gen, nil
}

// ParseSuggestionsResponse checks the blob is a JSON object and returns it
// verbatim; suggestions are stored opaque on the trip.
func ParseSuggestionsResponse(raw string) (datatypes.JSON, error) {
	trimmed := strings.TrimSpace(raw)
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, fmt.Errorf("parse suggestions response: %w", err)
	}
	return datatypes.JSON([]byte(trimmed)), nil
}

// NormalizeSafetyLevel coerces any unrecognized level to MODERATE.
func NormalizeSafetyLevel(v string) types.SafetyLevel {
	upper := strings.ToUpper(strings.TrimSpace(v))
	if types.ValidSafetyLevel(upper) {
		return types.SafetyLevel(upper)
	}
	return types.SafetyLevelModerate
}

// NormalizeActivityCategory coerces any unrecognized category to SIGHTSEEING.
func NormalizeActivityCategory(v string) types.ActivityCategory {
	upper := strings.ToUpper(strings.TrimSpace(v))
	if types.ValidActivityCategory(upper) {
		return types.ActivityCategory(upper)
	}
	return types.CategorySightseeing
}

// BuildItineraryRows converts a parsed model response into persistable rows.
// Day numbers and dates come from array position and the trip's start date;
// activity order comes from array position. Nothing positional is trusted
// from the model.
func BuildItineraryRows(trip *types.Trip, gen *GeneratedItinerary, aiModel string) *types.Itinerary {
	now := time.Now()
	itinerary := &types.Itinerary{
		ID:          uuid.New(),
		TripID:      trip.ID,
		AIModel:     aiModel,
		GeneratedAt: now,
	}

	for i, day := range gen.Days {
		row := types.ItineraryDay{
			ID:          uuid.New(),
			ItineraryID: itinerary.ID,
			DayNumber:   i + 1,
			Date:        trip.StartDate.AddDate(0, 0, i),
			Theme:       strings.TrimSpace(day.Theme),
		}
		for j, act := range day.Activities {
			currency := strings.TrimSpace(act.Currency)
			if currency == "" {
				currency = trip.Currency
			}
			row.Activities = append(row.Activities, types.Activity{
				ID:              uuid.New(),
				DayID:           row.ID,
				Name:            strings.TrimSpace(act.Name),
				Description:     strings.TrimSpace(act.Description),
				Category:        NormalizeActivityCategory(act.Category),
				Location:        strings.TrimSpace(act.Location),
				Address:         strings.TrimSpace(act.Address),
				StartTime:       strings.TrimSpace(act.StartTime),
				DurationMinutes: act.Duration,
				EstimatedCost:   act.EstimatedCost,
				Currency:        currency,
				SafetyNotes:     strings.TrimSpace(act.SafetyNotes),
				RequiresBooking: act.RequiresBooking,
				OrderIndex:      j,
			})
		}
		itinerary.Days = append(itinerary.Days, row)
	}

	return itinerary
}

// BuildSafetyReportRows converts a parsed model response into persistable
// rows, coercing levels and defaulting absent tip/resource lists to empty.
func BuildSafetyReportRows(trip *types.Trip, gen *GeneratedSafetyReport, aiModel string) *types.SafetyReport {
	report := &types.SafetyReport{
		ID:           uuid.New(),
		TripID:       trip.ID,
		OverallLevel: NormalizeSafetyLevel(gen.OverallLevel),
		Summary:      strings.TrimSpace(gen.Summary),
		AIModel:      aiModel,
		GeneratedAt:  time.Now(),
	}

	for i, section := range gen.Sections {
		tips := section.Tips
		if tips == nil {
			tips = []string{}
		}
		resources := section.Resources
		if resources == nil {
			resources = []string{}
		}
		report.Sections = append(report.Sections, types.SafetySection{
			ID:         uuid.New(),
			ReportID:   report.ID,
			Title:      strings.TrimSpace(section.Title),
			Level:      NormalizeSafetyLevel(section.Level),
			Content:    strings.TrimSpace(section.Content),
			Tips:       datatypes.NewJSONSlice(tips),
			Resources:  datatypes.NewJSONSlice(resources),
			OrderIndex: i,
		})
	}

	return report
}
