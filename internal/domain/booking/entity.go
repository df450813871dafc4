package booking

import (
	"strings"
	"time"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var (
	ErrOutsideWindow = httperr.ErrPolicy(
		"outside_modification_window",
		"Bookings can only be changed more than 24 hours before they start.",
	)
	ErrNotFinished = httperr.ErrPolicy(
		"booking_not_finished",
		"A booking can only be completed after it has ended.",
	)
	ErrReasonRequired = httperr.ErrValidation(
		"reason_required",
		"Please tell the customer why the booking is declined.",
	)
	ErrCrossesMidnight = httperr.ErrValidation(
		"slot_crosses_midnight",
		"A booking must end on the day it starts.",
	)
)

// ===============================
// Domain Actions
// ===============================

// ApplySchedule sets the date and time fields of b, deriving the end from
// durationMinutes.
func ApplySchedule(b *models.Booking, date models.Date, startMinutes, durationMinutes int) error {
	end := startMinutes + durationMinutes
	if end > MinutesPerDay {
		return ErrCrossesMidnight
	}

	b.BookingDate = date
	b.StartTime = FormatClock(startMinutes)
	b.EndTime = FormatClock(end)
	b.StartsAt = WallTime(date, startMinutes, time.UTC)
	b.EndsAt = WallTime(date, end, time.UTC)
	return nil
}

// Reschedule moves a confirmed booking. The end is always recomputed from
// the booking's own EstimatedHours.
func Reschedule(b *models.Booking, date models.Date, startMinutes int, now time.Time, loc *time.Location) error {
	if err := CanReschedule(Status(b.Status)); err != nil {
		return err
	}
	if !CanModify(b, now, loc) {
		return ErrOutsideWindow
	}

	duration, err := DurationMinutes(b.EstimatedHours)
	if err != nil {
		return err
	}
	return ApplySchedule(b, date, startMinutes, duration)
}

// Cancel applies a customer cancellation (inside the window) or a cleaner
// decline (any time, reason required).
func Cancel(b *models.Booking, actor Actor, reason string, now time.Time, loc *time.Location) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)

	switch actor.Role {
	case RoleCustomer:
		if !CanModify(b, now, loc) {
			return ErrOutsideWindow
		}
	case RoleCleaner:
		if reason == "" {
			return ErrReasonRequired
		}
	}

	b.Status = string(StatusCancelled)
	b.CancellationReason = reason
	b.CancelledBy = string(actor.Role)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time, loc *time.Location) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	end, err := EndInstant(b, loc)
	if err != nil {
		return err
	}
	if now.Before(end) {
		return ErrNotFinished
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
