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

type CancelBookingInput struct {
	Actor     domain.Actor
	BookingID uuid.UUID
	Reason    string
}

type CancelBooking struct {
	resolver
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewCancelBooking(
	repo domain.Repository,
	loc *time.Location,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *CancelBooking {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CancelBooking{
		resolver: newResolver(repo, loc),
		audit:    audit,
		events:   publisher,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*models.Booking, error) {

	b, err := uc.loadOwned(ctx, in.Actor, in.BookingID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := domain.Cancel(b, in.Actor, in.Reason, now, uc.loc); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, b); err != nil {
		return nil, err
	}

	action := "booking_cancelled"
	if in.Actor.IsCleaner() {
		action = "booking_declined"
	}
	uc.audit.Dispatch(bookingEvent(b, in.Actor, action, map[string]string{
		"reason": b.CancellationReason,
	}))
	uc.events.Publish(ctx, changed(b.CleanerID, events.ReasonBookingCancelled, now, b.BookingDate))

	return b, nil
}
