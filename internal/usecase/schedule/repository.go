package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type Repository interface {
	GetCleaner(ctx context.Context, id uuid.UUID) (*models.Cleaner, error)

	// -------- Weekly rules --------
	ListWeekly(ctx context.Context, cleanerID uuid.UUID) ([]models.WeeklyAvailabilitySlot, error)

	// ReplaceWeeklyAvailability swaps the whole rule set in one
	// transaction. Concurrent saves are last-write-wins.
	ReplaceWeeklyAvailability(
		ctx context.Context,
		cleanerID uuid.UUID,
		rows []models.WeeklyAvailabilitySlot,
	) error

	// -------- Blocked dates --------

	// AddBlockedDate stores bd unless the date is already blocked, in which
	// case bd is filled with the existing row and created is false.
	AddBlockedDate(ctx context.Context, bd *models.BlockedDate) (created bool, err error)
	RemoveBlockedDate(ctx context.Context, cleanerID uuid.UUID, date models.Date) error
	ListBlockedDates(ctx context.Context, cleanerID uuid.UUID, from *models.Date) ([]models.BlockedDate, error)
	PurgeBlockedDatesBefore(ctx context.Context, date models.Date) (int64, error)
}

var ErrBlockedDateNotFound = httperr.ErrNotFound("blocked_date_not_found", "This date is not blocked.")
