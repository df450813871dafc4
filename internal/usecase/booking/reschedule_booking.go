package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type RescheduleBookingInput struct {
	Actor     domain.Actor
	BookingID uuid.UUID

	Date      string
	StartTime string
}

type RescheduleBooking struct {
	resolver
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewRescheduleBooking(
	repo domain.Repository,
	loc *time.Location,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *RescheduleBooking {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &RescheduleBooking{
		resolver: newResolver(repo, loc),
		audit:    audit,
		events:   publisher,
	}
}

// Execute moves a booking to a new date and start. The duration stays the
// booking's EstimatedHours.
func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStart(in.StartTime)
	if err != nil {
		return nil, err
	}

	b, err := uc.loadOwned(ctx, in.Actor, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !in.Actor.IsCustomer() {
		return nil, errNotAllowed
	}

	previous := *b
	now := uc.now()

	if err := domain.Reschedule(b, date, start, now, uc.loc); err != nil {
		return nil, err
	}

	// The booking's own current range never conflicts with its new one.
	day, err := uc.loadDay(ctx, b.CleanerID, date, b.ID)
	if err != nil {
		return nil, err
	}
	day.Now = now

	requested, err := domain.BookingInterval(b)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckBookable(day, requested); err != nil {
		return nil, err
	}

	if err := uc.repo.RescheduleBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(bookingEvent(b, in.Actor, "booking_rescheduled", map[string]string{
		"from_date":  previous.BookingDate.String(),
		"from_start": previous.StartTime,
		"to_date":    b.BookingDate.String(),
		"to_start":   b.StartTime,
	}))
	uc.events.Publish(ctx, changed(
		b.CleanerID,
		events.ReasonBookingRescheduled,
		now,
		previous.BookingDate,
		b.BookingDate,
	))

	return b, nil
}
