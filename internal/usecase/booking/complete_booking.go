package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type CompleteBooking struct {
	resolver
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo domain.Repository,
	loc *time.Location,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		resolver: newResolver(repo, loc),
		audit:    audit,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uuid.UUID,
) (*models.Booking, error) {

	b, err := uc.loadOwned(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsCleaner() {
		return nil, errNotAllowed
	}

	if err := domain.Complete(b, uc.now(), uc.loc); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(bookingEvent(b, actor, "booking_completed", nil))

	return b, nil
}
