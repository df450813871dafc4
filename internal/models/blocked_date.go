package models

import (
	"time"

	"github.com/google/uuid"
)

type BlockedDate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CleanerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocked_dates_cleaner_date" json:"cleaner_id"`
	Date      Date      `gorm:"not null;uniqueIndex:idx_blocked_dates_cleaner_date" json:"date"`
	Reason    string    `gorm:"size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
