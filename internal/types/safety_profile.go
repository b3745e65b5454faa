package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Budget levels and travel styles accepted on a SafetyProfile.
const (
	BudgetLevelBudget   = "budget"
	BudgetLevelModerate = "moderate"
	BudgetLevelLuxury   = "luxury"

	TravelStyleAdventurous = "adventurous"
	TravelStyleRelaxed     = "relaxed"
	TravelStyleCultural    = "cultural"
	TravelStyleMixed       = "mixed"
)

// SafetyProfile holds per-user traveler context used to personalize safety
// reports. At most one row per user (unique index on user_id, upsert only).
type SafetyProfile struct {
	ID                    uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                uuid.UUID                   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	IsLGBTQ               bool                        `gorm:"column:is_lgbtq;not null;default:false" json:"is_lgbtq"`
	IsSoloFemale          bool                        `gorm:"column:is_solo_female;not null;default:false" json:"is_solo_female"`
	HasAccessibilityNeeds bool                        `gorm:"column:has_accessibility_needs;not null;default:false" json:"has_accessibility_needs"`
	ReligiousMinority     bool                        `gorm:"column:religious_minority;not null;default:false" json:"religious_minority"`
	DietaryRestrictions   datatypes.JSONSlice[string] `gorm:"column:dietary_restrictions;type:jsonb" json:"dietary_restrictions"`
	LanguageBarriers      datatypes.JSONSlice[string] `gorm:"column:language_barriers;type:jsonb" json:"language_barriers"`
	PreferredBudgetLevel  *string                     `gorm:"column:preferred_budget_level" json:"preferred_budget_level,omitempty"`
	TravelStyle           *string                     `gorm:"column:travel_style" json:"travel_style,omitempty"`
	CreatedAt             time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (SafetyProfile) TableName() string { return "safety_profile" }

func ValidBudgetLevel(v string) bool {
	switch v {
	case BudgetLevelBudget, BudgetLevelModerate, BudgetLevelLuxury:
		return true
	}
	return false
}

func ValidTravelStyle(v string) bool {
	switch v {
	case TravelStyleAdventurous, TravelStyleRelaxed, TravelStyleCultural, TravelStyleMixed:
		return true
	}
	return false
}
