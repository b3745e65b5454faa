package types

import (
	"time"

	"github.com/google/uuid"
)

type ActivityCategory string

const (
	CategoryDining        ActivityCategory = "DINING"
	CategorySightseeing   ActivityCategory = "SIGHTSEEING"
	CategoryAdventure     ActivityCategory = "ADVENTURE"
	CategoryCultural      ActivityCategory = "CULTURAL"
	CategoryEntertainment ActivityCategory = "ENTERTAINMENT"
	CategoryShopping      ActivityCategory = "SHOPPING"
	CategoryRelaxation    ActivityCategory = "RELAXATION"
	CategoryNightlife     ActivityCategory = "NIGHTLIFE"
)

func ValidActivityCategory(v string) bool {
	switch ActivityCategory(v) {
	case CategoryDining, CategorySightseeing, CategoryAdventure, CategoryCultural,
		CategoryEntertainment, CategoryShopping, CategoryRelaxation, CategoryNightlife:
		return true
	}
	return false
}

// Itinerary is unique per trip; regeneration deletes the whole row (days and
// activities cascade) before inserting the replacement.
type Itinerary struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TripID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"trip_id"`
	AIModel     string         `gorm:"column:ai_model" json:"ai_model"`
	GeneratedAt time.Time      `gorm:"column:generated_at;not null;default:now()" json:"generated_at"`
	Days        []ItineraryDay `gorm:"constraint:OnDelete:CASCADE;foreignKey:ItineraryID;references:ID" json:"days"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Itinerary) TableName() string { return "itinerary" }

type ItineraryDay struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ItineraryID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_itinerary_day_number" json:"itinerary_id"`
	DayNumber   int        `gorm:"column:day_number;not null;uniqueIndex:idx_itinerary_day_number" json:"day_number"`
	Date        time.Time  `gorm:"column:date;not null" json:"date"`
	Theme       string     `gorm:"column:theme" json:"theme"`
	Activities  []Activity `gorm:"constraint:OnDelete:CASCADE;foreignKey:DayID;references:ID" json:"activities"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (ItineraryDay) TableName() string { return "itinerary_day" }

type Activity struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DayID           uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_activity_day_order" json:"day_id"`
	Name            string           `gorm:"column:name;not null" json:"name"`
	Description     string           `gorm:"column:description" json:"description"`
	Category        ActivityCategory `gorm:"column:category;not null" json:"category"`
	Location        string           `gorm:"column:location" json:"location"`
	Address         string           `gorm:"column:address" json:"address,omitempty"`
	StartTime       string           `gorm:"column:start_time" json:"start_time,omitempty"`
	DurationMinutes int              `gorm:"column:duration_minutes" json:"duration_minutes,omitempty"`
	EstimatedCost   float64          `gorm:"column:estimated_cost" json:"estimated_cost,omitempty"`
	Currency        string           `gorm:"column:currency" json:"currency,omitempty"`
	SafetyNotes     string           `gorm:"column:safety_notes" json:"safety_notes,omitempty"`
	RequiresBooking bool             `gorm:"column:requires_booking;not null;default:false" json:"requires_booking"`
	OrderIndex      int              `gorm:"column:order_index;not null;uniqueIndex:idx_activity_day_order" json:"order_index"`
	CreatedAt       time.Time        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (Activity) TableName() string { return "activity" }
