package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Cleaner / rules
// --------------------------------------------------

func (r *BookingGormRepository) GetCleaner(
	ctx context.Context,
	id uuid.UUID,
) (*models.Cleaner, error) {
	return findCleaner(r.db.WithContext(ctx), id)
}

func (r *BookingGormRepository) GetWeeklyAvailability(
	ctx context.Context,
	cleanerID uuid.UUID,
) ([]models.WeeklyAvailabilitySlot, error) {

	var rows []models.WeeklyAvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("cleaner_id = ?", cleanerID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list weekly availability: %w", err)
	}
	return rows, nil
}

func (r *BookingGormRepository) GetBlockedDates(
	ctx context.Context,
	cleanerID uuid.UUID,
) ([]models.BlockedDate, error) {

	var rows []models.BlockedDate
	if err := r.db.WithContext(ctx).
		Where("cleaner_id = ?", cleanerID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}
	return rows, nil
}

// --------------------------------------------------
// Bookings (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingsForDate(
	ctx context.Context,
	cleanerID uuid.UUID,
	date models.Date,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"cleaner_id = ? AND booking_date = ? AND status = ?",
			cleanerID, date, string(domain.StatusConfirmed),
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings for date: %w", err)
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	cleanerID uuid.UUID,
	from models.Date,
	to models.Date,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"cleaner_id = ? AND booking_date >= ? AND booking_date < ?",
			cleanerID, from, to,
		).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings for period: %w", err)
	}
	return bookings, nil
}

// --------------------------------------------------
// Bookings (write)
// --------------------------------------------------

// assertNoOverlap re-checks the requested range inside the transaction,
// after the cleaner row is locked.
func assertNoOverlap(tx *gorm.DB, b *models.Booking) error {
	q := tx.Model(&models.Booking{}).
		Where(
			"cleaner_id = ? AND status = ? AND starts_at < ? AND ends_at > ?",
			b.CleanerID, string(domain.StatusConfirmed), b.EndsAt, b.StartsAt,
		)
	if b.ID != uuid.Nil {
		q = q.Where("id <> ?", b.ID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if count > 0 {
		return domain.ErrTimeConflict
	}
	return nil
}

func (r *BookingGormRepository) InsertBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCleaner(tx, b.CleanerID); err != nil {
			return err
		}
		if err := assertNoOverlap(tx, b); err != nil {
			return err
		}
		return tx.Create(b).Error
	})

	return mapWriteError("insert booking", err)
}

func (r *BookingGormRepository) RescheduleBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCleaner(tx, b.CleanerID); err != nil {
			return err
		}
		if err := assertNoOverlap(tx, b); err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", b.ID, string(domain.StatusConfirmed)).
			Updates(map[string]any{
				"booking_date": b.BookingDate,
				"start_time":   b.StartTime,
				"end_time":     b.EndTime,
				"starts_at":    b.StartsAt,
				"ends_at":      b.EndsAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrInactive(tx, b.ID)
		}
		return nil
	})

	return mapWriteError("reschedule booking", err)
}

// UpdateBookingStatus persists a transition out of confirmed. A booking that
// already left confirmed in the meantime is reported as invalid state.
func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	b *models.Booking,
) error {

	db := r.db.WithContext(ctx)

	res := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(domain.StatusConfirmed)).
		Updates(map[string]any{
			"status":              b.Status,
			"cancellation_reason": b.CancellationReason,
			"cancelled_by":        b.CancelledBy,
			"cancelled_at":        b.CancelledAt,
			"completed_at":        b.CompletedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return missingOrInactive(db, b.ID)
	}
	return nil
}

func missingOrInactive(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if count == 0 {
		return domain.ErrBookingNotFound
	}
	return domain.ErrInvalidState
}

// mapWriteError keeps business errors, turns an exclusion violation into a
// time conflict and wraps everything else.
func mapWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.KindOf(err); ok {
		return err
	}
	if httperr.IsExclusionConflict(err) {
		return domain.ErrTimeConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
