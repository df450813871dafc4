package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var errInvalidDate = httperr.ErrValidation("invalid_date", "Dates must use the YYYY-MM-DD format.")

// BlockedDates manages the dates a cleaner takes off. Blocking a date does
// not touch bookings already confirmed on it.
type BlockedDates struct {
	repo   Repository
	loc    *time.Location
	audit  *audit.Dispatcher
	events events.Publisher
	now    func() time.Time
}

func NewBlockedDates(
	repo Repository,
	loc *time.Location,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *BlockedDates {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BlockedDates{
		repo:   repo,
		loc:    loc,
		audit:  audit,
		events: publisher,
		now:    time.Now,
	}
}

func (uc *BlockedDates) Add(
	ctx context.Context,
	cleanerID uuid.UUID,
	dateStr string,
	reason string,
) (*models.BlockedDate, error) {

	date, err := models.ParseDate(dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	now := uc.now()
	if domain.IsPastDate(date, now, uc.loc) {
		return nil, domain.ErrDateInPast
	}

	if _, err := uc.repo.GetCleaner(ctx, cleanerID); err != nil {
		return nil, err
	}

	bd := &models.BlockedDate{
		CleanerID: cleanerID,
		Date:      date,
		Reason:    strings.TrimSpace(reason),
	}

	created, err := uc.repo.AddBlockedDate(ctx, bd)
	if err != nil {
		return nil, err
	}
	if !created {
		return bd, nil
	}

	uc.audit.Dispatch(audit.Event{
		CleanerID: cleanerID,
		ActorID:   &cleanerID,
		Action:    "date_blocked",
		Entity:    "blocked_date",
		Metadata:  map[string]string{"date": date.String()},
	})
	uc.events.Publish(ctx, events.AvailabilityChanged{
		CleanerID: cleanerID,
		Dates:     []models.Date{date},
		Reason:    events.ReasonDateBlocked,
		At:        now.UTC(),
	})

	return bd, nil
}

func (uc *BlockedDates) Remove(
	ctx context.Context,
	cleanerID uuid.UUID,
	dateStr string,
) error {

	date, err := models.ParseDate(dateStr)
	if err != nil {
		return errInvalidDate
	}

	if err := uc.repo.RemoveBlockedDate(ctx, cleanerID, date); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CleanerID: cleanerID,
		ActorID:   &cleanerID,
		Action:    "date_unblocked",
		Entity:    "blocked_date",
		Metadata:  map[string]string{"date": date.String()},
	})
	uc.events.Publish(ctx, events.AvailabilityChanged{
		CleanerID: cleanerID,
		Dates:     []models.Date{date},
		Reason:    events.ReasonDateUnblocked,
		At:        uc.now().UTC(),
	})

	return nil
}

// List returns the cleaner's blocked dates from today on, or all of them
// when includePast is set.
func (uc *BlockedDates) List(
	ctx context.Context,
	cleanerID uuid.UUID,
	includePast bool,
) ([]models.BlockedDate, error) {

	if includePast {
		return uc.repo.ListBlockedDates(ctx, cleanerID, nil)
	}

	today := domain.Today(uc.now(), uc.loc)
	return uc.repo.ListBlockedDates(ctx, cleanerID, &today)
}

// PurgePast deletes blocked dates before today for every cleaner. They can
// no longer affect availability.
func (uc *BlockedDates) PurgePast(ctx context.Context) (int64, error) {
	return uc.repo.PurgeBlockedDatesBefore(ctx, domain.Today(uc.now(), uc.loc))
}
