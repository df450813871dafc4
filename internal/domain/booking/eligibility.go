package booking

import (
	"time"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var (
	ErrDateInPast = httperr.ErrConflict(
		"date_in_past",
		"This date has already passed. Please choose another date.",
	)
	ErrDayUnavailable = httperr.ErrConflict(
		"day_unavailable",
		"The cleaner does not work on this day. Please choose another date.",
	)
	ErrDateBlocked = httperr.ErrConflict(
		"date_blocked",
		"The cleaner is unavailable on this date. Please choose another date.",
	)
)

// Today is the current calendar day in the business location.
func Today(now time.Time, loc *time.Location) models.Date {
	return models.DateOf(now.In(loc))
}

func IsPastDate(date models.Date, now time.Time, loc *time.Location) bool {
	return date.Before(Today(now, loc))
}

func HasWeeklyAvailability(rows []models.WeeklyAvailabilitySlot, dayOfWeek int) bool {
	return len(AvailableRanges(rows, dayOfWeek)) > 0
}

func IsBlocked(date models.Date, blocked []models.BlockedDate) bool {
	for _, b := range blocked {
		if b.Date.Equal(date) {
			return true
		}
	}
	return false
}

// CheckDateEligible reports why a date cannot be booked, or nil. It does
// not look at bookings: a fully booked day is still eligible.
func CheckDateEligible(
	date models.Date,
	now time.Time,
	loc *time.Location,
	rows []models.WeeklyAvailabilitySlot,
	blocked []models.BlockedDate,
) error {
	if IsPastDate(date, now, loc) {
		return ErrDateInPast
	}
	if !HasWeeklyAvailability(rows, ScheduleDayOfWeek(date.Time)) {
		return ErrDayUnavailable
	}
	if IsBlocked(date, blocked) {
		return ErrDateBlocked
	}
	return nil
}

func IsDateEligible(
	date models.Date,
	now time.Time,
	loc *time.Location,
	rows []models.WeeklyAvailabilitySlot,
	blocked []models.BlockedDate,
) bool {
	return CheckDateEligible(date, now, loc, rows, blocked) == nil
}
