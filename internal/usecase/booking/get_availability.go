package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
)

type AvailabilityInput struct {
	CleanerID uuid.UUID
	Date      string
	Hours     float64
}

type GetAvailability struct {
	resolver
}

func NewGetAvailability(repo domain.Repository, loc *time.Location) *GetAvailability {
	return &GetAvailability{resolver: newResolver(repo, loc)}
}

// Execute computes the bookable slots of the requested length. The list is
// empty, not an error, when the date cannot be booked at all.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]domain.TimeSlot, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	duration, err := domain.DurationMinutes(in.Hours)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetCleaner(ctx, in.CleanerID); err != nil {
		return nil, err
	}

	day, err := uc.loadDay(ctx, in.CleanerID, date)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(day, duration)
}
