package models

import (
	"time"

	"github.com/google/uuid"
)

// Cleaner mirrors the professional profile owned by the marketplace.
type Cleaner struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"size:120;not null" json:"display_name"`
	Active      bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
