// Package events tells interested clients that a cleaner's bookable time
// changed so they can refetch slots instead of trusting a stale list.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type Reason string

const (
	ReasonBookingCreated     Reason = "booking_created"
	ReasonBookingRescheduled Reason = "booking_rescheduled"
	ReasonBookingCancelled   Reason = "booking_cancelled"
	ReasonWeeklyUpdated      Reason = "weekly_availability_updated"
	ReasonDateBlocked        Reason = "date_blocked"
	ReasonDateUnblocked      Reason = "date_unblocked"
)

type AvailabilityChanged struct {
	CleanerID uuid.UUID `json:"cleaner_id"`
	// Dates affected; empty means every date (weekly rules changed).
	Dates  []models.Date `json:"dates,omitempty"`
	Reason Reason        `json:"reason"`
	At     time.Time     `json:"at"`
}

// Publisher delivers change notifications on a best-effort basis.
type Publisher interface {
	Publish(ctx context.Context, ev AvailabilityChanged)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AvailabilityChanged) {}

// Channel is the pub/sub channel carrying one cleaner's changes.
func Channel(cleanerID uuid.UUID) string {
	return "availability:" + cleanerID.String()
}
