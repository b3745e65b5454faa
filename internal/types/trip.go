package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TripStatus string

const (
	TripStatusDraft      TripStatus = "DRAFT"
	TripStatusPlanned    TripStatus = "PLANNED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

func ValidTripStatus(v string) bool {
	switch TripStatus(v) {
	case TripStatusDraft, TripStatusPlanned, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// Trip is the root aggregate: itinerary and safety report hang off it and are
// removed with it. Hotel/flight suggestions are opaque jsonb blobs overwritten
// wholesale on each regeneration.
type Trip struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Destination       string         `gorm:"column:destination;not null" json:"destination"`
	Country           string         `gorm:"column:country;not null" json:"country"`
	City              *string        `gorm:"column:city" json:"city,omitempty"`
	StartDate         time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate           time.Time      `gorm:"column:end_date;not null" json:"end_date"`
	Budget            float64        `gorm:"column:budget;not null" json:"budget"`
	Currency          string         `gorm:"column:currency;not null" json:"currency"`
	NumberOfTravelers int            `gorm:"column:number_of_travelers;not null;default:1" json:"number_of_travelers"`
	Status            TripStatus     `gorm:"column:status;not null;default:DRAFT" json:"status"`
	HotelSuggestions  datatypes.JSON `gorm:"column:hotel_suggestions;type:jsonb" json:"hotel_suggestions,omitempty"`
	FlightSuggestions datatypes.JSON `gorm:"column:flight_suggestions;type:jsonb" json:"flight_suggestions,omitempty"`
	Itinerary         *Itinerary     `gorm:"constraint:OnDelete:CASCADE;foreignKey:TripID;references:ID" json:"itinerary,omitempty"`
	SafetyReport      *SafetyReport  `gorm:"constraint:OnDelete:CASCADE;foreignKey:TripID;references:ID" json:"safety_report,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Trip) TableName() string { return "trip" }
