package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SafetyLevel string

const (
	SafetyLevelLow      SafetyLevel = "LOW"
	SafetyLevelModerate SafetyLevel = "MODERATE"
	SafetyLevelHigh     SafetyLevel = "HIGH"
	SafetyLevelCritical SafetyLevel = "CRITICAL"
)

func ValidSafetyLevel(v string) bool {
	switch SafetyLevel(v) {
	case SafetyLevelLow, SafetyLevelModerate, SafetyLevelHigh, SafetyLevelCritical:
		return true
	}
	return false
}

// SafetyReport is unique per trip and replaced wholesale on regeneration,
// same as Itinerary.
type SafetyReport struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TripID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"trip_id"`
	OverallLevel SafetyLevel     `gorm:"column:overall_level;not null" json:"overall_level"`
	Summary      string          `gorm:"column:summary" json:"summary"`
	AIModel      string          `gorm:"column:ai_model" json:"ai_model"`
	GeneratedAt  time.Time       `gorm:"column:generated_at;not null;default:now()" json:"generated_at"`
	Sections     []SafetySection `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReportID;references:ID" json:"sections"`
	CreatedAt    time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (SafetyReport) TableName() string { return "safety_report" }

type SafetySection struct {
	ID         uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID   uuid.UUID                   `gorm:"type:uuid;not null;index;uniqueIndex:idx_safety_section_order" json:"report_id"`
	Title      string                      `gorm:"column:title;not null" json:"title"`
	Level      SafetyLevel                 `gorm:"column:level;not null" json:"level"`
	Content    string                      `gorm:"column:content" json:"content"`
	Tips       datatypes.JSONSlice[string] `gorm:"column:tips;type:jsonb" json:"tips"`
	Resources  datatypes.JSONSlice[string] `gorm:"column:resources;type:jsonb" json:"resources"`
	OrderIndex int                         `gorm:"column:order_index;not null;uniqueIndex:idx_safety_section_order" json:"order_index"`
	CreatedAt  time.Time                   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"not null;default:now()" json:"updated_at"`
}

func (SafetySection) TableName() string { return "safety_section" }
