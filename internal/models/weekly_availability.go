package models

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyAvailabilitySlot is a recurring rule. DayOfWeek uses Monday=0..Sunday=6.
type WeeklyAvailabilitySlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CleanerID uuid.UUID `gorm:"type:uuid;index;not null" json:"cleaner_id"`

	DayOfWeek   int    `gorm:"not null" json:"day_of_week"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	IsAvailable bool   `gorm:"not null" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
