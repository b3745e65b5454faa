package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

// ItineraryPreferences are optional generation hints supplied by the caller.
type ItineraryPreferences struct {
	Activities      []string `json:"activities,omitempty"`
	PacePreference  string   `json:"pace,omitempty"`
	IncludeDowntime bool     `json:"includeDowntime,omitempty"`
}

const promptDateLayout = "2006-01-02"

// ItineraryDayCount derives the itinerary length from the trip dates:
// max(1, ceil((end-start)/1 day)).
func ItineraryDayCount(start, end time.Time) int {
	diff := end.Sub(start)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func tripPlace(trip *types.Trip) string {
	place := fmt.Sprintf("%s, %s", trip.Destination, trip.Country)
	if trip.City != nil && strings.TrimSpace(*trip.City) != "" {
		place += fmt.Sprintf(" (%s)", *trip.City)
	}
	return place
}

// BuildItineraryPrompt assembles the itinerary generation prompt. Identical
// inputs produce byte-identical output; nothing time- or random-derived is
// interpolated.
func BuildItineraryPrompt(trip *types.Trip, prefs *ItineraryPreferences) (system string, user string) {
	system = "You are a travel planning assistant. Always respond with valid JSON only, no extra text."

	dayCount := ItineraryDayCount(trip.StartDate, trip.EndDate)
	budgetPerDay := trip.Budget / float64(dayCount)

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert travel planner. Create a detailed %d-day itinerary for a trip to %s.\n\n", dayCount, tripPlace(trip))
	b.WriteString("Trip Details:\n")
	fmt.Fprintf(&b, "- Dates: %s to %s\n", trip.StartDate.Format(promptDateLayout), trip.EndDate.Format(promptDateLayout))
	fmt.Fprintf(&b, "- Total Budget: %.0f %s (~%.0f %s/day)\n", trip.Budget, trip.Currency, budgetPerDay, trip.Currency)
	fmt.Fprintf(&b, "- Number of Travelers: %d\n", trip.NumberOfTravelers)
	if prefs != nil {
		if strings.TrimSpace(prefs.PacePreference) != "" {
			fmt.Fprintf(&b, "- Pace: %s\n", prefs.PacePreference)
		}
		if len(prefs.Activities) > 0 {
			fmt.Fprintf(&b, "- Preferred Activities: %s\n", strings.Join(prefs.Activities, ", "))
		}
		if prefs.IncludeDowntime {
			b.WriteString("- Include downtime/rest periods\n")
		}
	}
	b.WriteString("\nCreate a realistic, day-by-day itinerary. Each day should have 3-5 activities. Keep total estimated costs within the daily budget.\n\n")
	b.WriteString("Valid activity categories: DINING, SIGHTSEEING, ADVENTURE, CULTURAL, ENTERTAINMENT, SHOPPING, RELAXATION, NIGHTLIFE\n\n")
	b.WriteString("Respond with this exact JSON structure:\n")
	fmt.Fprintf(&b, `{
  "days": [
    {
      "dayNumber": 1,
      "theme": "Arrival & City Exploration",
      "activities": [
        {
          "name": "Activity Name",
          "description": "Brief description of the activity",
          "category": "SIGHTSEEING",
          "location": "Place name",
          "address": "Full address if known",
          "startTime": "9:00 AM",
          "duration": 120,
          "estimatedCost": 25.00,
          "currency": "%s",
          "safetyNotes": "Any relevant safety tips",
          "requiresBooking": false
        }
      ]
    }
  ]
}`, trip.Currency)

	return system, b.String()
}

// BuildSafetyReportPrompt assembles the safety report prompt. Profile-derived
// lines appear only for flags that are set and lists that are non-empty; a
// missing profile substitutes one generic line rather than omitting the block.
func BuildSafetyReportPrompt(trip *types.Trip, profile *types.SafetyProfile) (system string, user string) {
	system = "You are a travel safety expert. Always respond with valid JSON only, no extra text."

	var profileDetails string
	if profile != nil {
		var lines []string
		lines = append(lines, "Traveler Safety Profile:")
		if profile.IsLGBTQ {
			lines = append(lines, "- LGBTQ+ traveler")
		}
		if profile.IsSoloFemale {
			lines = append(lines, "- Solo female traveler")
		}
		if profile.HasAccessibilityNeeds {
			lines = append(lines, "- Has accessibility needs")
		}
		if profile.ReligiousMinority {
			lines = append(lines, "- Religious minority")
		}
		if len(profile.DietaryRestrictions) > 0 {
			lines = append(lines, fmt.Sprintf("- Dietary restrictions: %s", strings.Join(profile.DietaryRestrictions, ", ")))
		}
		if len(profile.LanguageBarriers) > 0 {
			lines = append(lines, fmt.Sprintf("- Language concerns: %s", strings.Join(profile.LanguageBarriers, ", ")))
		}
		profileDetails = strings.Join(lines, "\n")
	} else {
		profileDetails = "No specific safety profile provided. Give general safety advice."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a travel safety expert providing personalized safety reports. Create a comprehensive safety report for traveling to %s.\n\n", tripPlace(trip))
	fmt.Fprintf(&b, "Trip Dates: %s to %s\n", trip.StartDate.Format(promptDateLayout), trip.EndDate.Format(promptDateLayout))
	fmt.Fprintf(&b, "Number of Travelers: %d\n\n", trip.NumberOfTravelers)
	b.WriteString(profileDetails)
	b.WriteString("\n\nCreate a thorough, honest, and helpful safety report. Be specific about the destination. Include local emergency contacts and useful resources where possible.\n\n")
	b.WriteString("Valid safety levels: LOW, MODERATE, HIGH, CRITICAL\n\n")
	b.WriteString("Include relevant sections based on the traveler's profile. Always include \"General Safety\" and \"Health & Medical\" sections. Only include LGBTQ+, Solo Female, Accessibility, or Religious sections if they are relevant to the traveler's profile.\n\n")
	b.WriteString("Respond with this exact JSON structure:\n")
	b.WriteString(`{
  "overallLevel": "MODERATE",
  "summary": "Brief overall safety assessment for this destination",
  "sections": [
    {
      "title": "General Safety",
      "level": "MODERATE",
      "content": "Detailed safety information for this specific topic",
      "tips": ["Specific tip 1", "Specific tip 2", "Specific tip 3"],
      "resources": ["Emergency: 911", "Tourist Police: +XX XXX XXX"]
    }
  ]
}`)

	return system, b.String()
}

// BuildHotelSuggestionsPrompt assembles the hotel suggestions prompt. The
// per-night budget hint uses the same day-count derivation as the itinerary.
func BuildHotelSuggestionsPrompt(trip *types.Trip) (system string, user string) {
	system = "You are a travel accommodation expert. Always respond with valid JSON only, no extra text."

	nights := ItineraryDayCount(trip.StartDate, trip.EndDate)
	budgetPerNight := trip.Budget / float64(nights)

	var b strings.Builder
	fmt.Fprintf(&b, "Suggest hotels for a trip to %s.\n\n", tripPlace(trip))
	b.WriteString("Trip Details:\n")
	fmt.Fprintf(&b, "- Dates: %s to %s (%d nights)\n", trip.StartDate.Format(promptDateLayout), trip.EndDate.Format(promptDateLayout), nights)
	fmt.Fprintf(&b, "- Total Budget: %.0f %s (~%.0f %s/night for accommodation is a reasonable share)\n", trip.Budget, trip.Currency, budgetPerNight, trip.Currency)
	fmt.Fprintf(&b, "- Number of Travelers: %d\n\n", trip.NumberOfTravelers)
	b.WriteString("Suggest 4-6 realistic hotels across budget tiers. Prefer well-located, safe neighborhoods.\n\n")
	b.WriteString("Respond with this exact JSON structure:\n")
	fmt.Fprintf(&b, `{
  "hotels": [
    {
      "name": "Hotel Name",
      "area": "Neighborhood",
      "description": "Why this hotel fits the trip",
      "priceTier": "budget|moderate|luxury",
      "estimatedPricePerNight": 120,
      "currency": "%s",
      "rating": 4.3,
      "amenities": ["wifi", "breakfast"],
      "safetyNotes": "Any relevant safety context for the area"
    }
  ]
}`, trip.Currency)

	return system, b.String()
}

// BuildFlightSuggestionsPrompt assembles the flight suggestions prompt.
func BuildFlightSuggestionsPrompt(trip *types.Trip) (system string, user string) {
	system = "You are a flight search assistant. Always respond with valid JSON only, no extra text."

	var b strings.Builder
	fmt.Fprintf(&b, "Suggest flight options for a trip to %s.\n\n", tripPlace(trip))
	b.WriteString("Trip Details:\n")
	fmt.Fprintf(&b, "- Outbound: %s, Return: %s\n", trip.StartDate.Format(promptDateLayout), trip.EndDate.Format(promptDateLayout))
	fmt.Fprintf(&b, "- Total Budget: %.0f %s\n", trip.Budget, trip.Currency)
	fmt.Fprintf(&b, "- Number of Travelers: %d\n\n", trip.NumberOfTravelers)
	b.WriteString("Suggest 3-5 realistic flight options (airlines that actually serve the destination, plausible routings and price ranges). Include a mix of direct and connecting options where sensible.\n\n")
	b.WriteString("Respond with this exact JSON structure:\n")
	fmt.Fprintf(&b, `{
  "flights": [
    {
      "airline": "Airline Name",
      "route": "Origin hub -> Destination",
      "stops": 0,
      "typicalDuration": "11h 30m",
      "estimatedPricePerPerson": 850,
      "currency": "%s",
      "bookingAdvice": "When and where to book for the best price"
    }
  ]
}`, trip.Currency)

	return system, b.String()
}
