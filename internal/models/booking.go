package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CleanerID  uuid.UUID `gorm:"type:uuid;index;not null" json:"cleaner_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`

	BookingDate    Date    `gorm:"not null;index" json:"booking_date"`
	StartTime      string  `gorm:"size:5;not null" json:"start_time"`
	EndTime        string  `gorm:"size:5;not null" json:"end_time"`
	EstimatedHours float64 `gorm:"not null" json:"estimated_hours"`

	// Naive wall-clock instants (encoded as UTC) backing the
	// bookings_no_overlap exclusion constraint.
	StartsAt time.Time `gorm:"type:timestamp;not null" json:"-"`
	EndsAt   time.Time `gorm:"type:timestamp;not null" json:"-"`

	Status string `gorm:"size:20;default:'confirmed';index" json:"status"`

	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`
	CancelledBy        string     `gorm:"size:20" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
