package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var (
	ErrCleanerNotFound = httperr.ErrNotFound("cleaner_not_found", "Cleaner not found.")
	ErrBookingNotFound = httperr.ErrNotFound("booking_not_found", "Booking not found.")
)

type Repository interface {
	// -------- Cleaner --------
	GetCleaner(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Cleaner, error)

	// -------- Schedule rules --------
	GetWeeklyAvailability(
		ctx context.Context,
		cleanerID uuid.UUID,
	) ([]models.WeeklyAvailabilitySlot, error)

	GetBlockedDates(
		ctx context.Context,
		cleanerID uuid.UUID,
	) ([]models.BlockedDate, error)

	// -------- Bookings (read) --------

	// GetBookingsForDate returns confirmed bookings only.
	GetBookingsForDate(
		ctx context.Context,
		cleanerID uuid.UUID,
		date models.Date,
	) ([]models.Booking, error)

	GetBooking(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	// ListBookingsForPeriod returns bookings of every status with
	// from <= booking_date < to.
	ListBookingsForPeriod(
		ctx context.Context,
		cleanerID uuid.UUID,
		from models.Date,
		to models.Date,
	) ([]models.Booking, error)

	// -------- Bookings (write) --------

	// InsertBooking atomically re-checks overlap for the cleaner and
	// inserts, or fails with ErrTimeConflict.
	InsertBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// RescheduleBooking moves b to its new date and times under the same
	// guarantee as InsertBooking, ignoring b itself in the overlap check.
	RescheduleBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBookingStatus(
		ctx context.Context,
		b *models.Booking,
	) error
}
