package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor     domain.Actor
	CleanerID uuid.UUID

	Date           string
	StartTime      string
	EstimatedHours float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	resolver
	audit  *audit.Dispatcher
	events events.Publisher
}

func NewCreateBooking(
	repo domain.Repository,
	loc *time.Location,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *CreateBooking {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CreateBooking{
		resolver: newResolver(repo, loc),
		audit:    audit,
		events:   publisher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if !in.Actor.IsCustomer() {
		return nil, errNotAllowed
	}

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseStart(in.StartTime)
	if err != nil {
		return nil, err
	}
	duration, err := domain.DurationMinutes(in.EstimatedHours)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		CleanerID:      in.CleanerID,
		CustomerID:     in.Actor.ID,
		EstimatedHours: in.EstimatedHours,
		Status:         string(domain.InitialStatus()),
	}
	if err := domain.ApplySchedule(b, date, start, duration); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Cleaner
	// --------------------------------------------------
	if _, err := uc.repo.GetCleaner(ctx, in.CleanerID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Optimistic check on a fresh snapshot
	// --------------------------------------------------
	day, err := uc.loadDay(ctx, in.CleanerID, date)
	if err != nil {
		return nil, err
	}

	requested := domain.Interval{Start: start, End: start + duration}
	if err := domain.CheckBookable(day, requested); err != nil {
		uc.rejected(b, in.Actor, err)
		return nil, err
	}

	// --------------------------------------------------
	// 4. Atomic insert (re-checks under lock)
	// --------------------------------------------------
	if err := uc.repo.InsertBooking(ctx, b); err != nil {
		uc.rejected(b, in.Actor, err)
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit + notify
	// --------------------------------------------------
	uc.audit.Dispatch(bookingEvent(b, in.Actor, "booking_created", nil))
	uc.events.Publish(ctx, changed(b.CleanerID, events.ReasonBookingCreated, day.Now, date))

	return b, nil
}

// rejected records a refused booking attempt. Only conflicts are kept;
// bad input is not interesting to the cleaner.
func (uc *CreateBooking) rejected(b *models.Booking, actor domain.Actor, err error) {
	if kind, ok := httperr.KindOf(err); !ok || kind != httperr.KindConflict {
		return
	}
	uc.audit.Dispatch(audit.Event{
		CleanerID: b.CleanerID,
		ActorID:   &actor.ID,
		Action:    "booking_conflict_rejected",
		Entity:    "booking",
		Metadata: map[string]string{
			"date":  b.BookingDate.String(),
			"start": b.StartTime,
			"end":   b.EndTime,
			"code":  err.Error(),
		},
	})
}
