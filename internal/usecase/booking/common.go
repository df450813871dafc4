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

var (
	errInvalidDate = httperr.ErrValidation("invalid_date", "Dates must use the YYYY-MM-DD format.")
	errInvalidTime = httperr.ErrValidation("invalid_time", "Times must use the HH:MM format.")
	errNotAllowed  = httperr.ErrPolicy("not_allowed", "You cannot perform this action on the booking.")
)

// resolver holds what every booking use case shares: storage, the business
// location and the clock.
type resolver struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func newResolver(repo domain.Repository, loc *time.Location) resolver {
	return resolver{repo: repo, loc: loc, now: time.Now}
}

func parseDate(s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, errInvalidDate
	}
	return d, nil
}

func parseStart(s string) (int, error) {
	m, err := domain.ParseClock(s)
	if err != nil || m >= domain.MinutesPerDay {
		return 0, errInvalidTime
	}
	return m, nil
}

// loadDay fetches a fresh snapshot of the cleaner's rules and confirmed
// bookings for date. Bookings whose ID is in skip are left out.
func (r resolver) loadDay(
	ctx context.Context,
	cleanerID uuid.UUID,
	date models.Date,
	skip ...uuid.UUID,
) (domain.DayContext, error) {

	rules, err := r.repo.GetWeeklyAvailability(ctx, cleanerID)
	if err != nil {
		return domain.DayContext{}, err
	}

	blocked, err := r.repo.GetBlockedDates(ctx, cleanerID)
	if err != nil {
		return domain.DayContext{}, err
	}

	bookings, err := r.repo.GetBookingsForDate(ctx, cleanerID, date)
	if err != nil {
		return domain.DayContext{}, err
	}

	kept := bookings[:0]
	for _, b := range bookings {
		if !containsID(skip, b.ID) {
			kept = append(kept, b)
		}
	}

	return domain.DayContext{
		Date:     date,
		Now:      r.now(),
		Location: r.loc,
		Rules:    rules,
		Blocked:  blocked,
		Bookings: kept,
	}, nil
}

// loadOwned returns the booking if actor is its customer or its cleaner.
// Anyone else gets the same answer as for a missing booking.
func (r resolver) loadOwned(ctx context.Context, actor domain.Actor, id uuid.UUID) (*models.Booking, error) {
	b, err := r.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsCustomer() && b.CustomerID == actor.ID:
		return b, nil
	case actor.IsCleaner() && b.CleanerID == actor.ID:
		return b, nil
	default:
		return nil, domain.ErrBookingNotFound
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func bookingEvent(b *models.Booking, actor domain.Actor, action string, meta any) audit.Event {
	return audit.Event{
		CleanerID: b.CleanerID,
		ActorID:   &actor.ID,
		Action:    action,
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  meta,
	}
}

func changed(cleanerID uuid.UUID, reason events.Reason, now time.Time, dates ...models.Date) events.AvailabilityChanged {
	return events.AvailabilityChanged{
		CleanerID: cleanerID,
		Dates:     dates,
		Reason:    reason,
		At:        now.UTC(),
	}
}
