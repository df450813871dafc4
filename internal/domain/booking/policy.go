package booking

import (
	"time"

	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

// ModificationWindow is how long before the start a customer may still
// reschedule or cancel.
const ModificationWindow = 24 * time.Hour

// WallTime places a wall-clock minute of date in loc. Minutes past 24:00
// roll into the next day.
func WallTime(date models.Date, minutes int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, loc)
}

func StartInstant(b *models.Booking, loc *time.Location) (time.Time, error) {
	iv, err := BookingInterval(b)
	if err != nil {
		return time.Time{}, err
	}
	return WallTime(b.BookingDate, iv.Start, loc), nil
}

func EndInstant(b *models.Booking, loc *time.Location) (time.Time, error) {
	iv, err := BookingInterval(b)
	if err != nil {
		return time.Time{}, err
	}
	return WallTime(b.BookingDate, iv.End, loc), nil
}

// CanModify reports whether the customer may still reschedule or cancel:
// the booking is confirmed and starts at least ModificationWindow after now.
func CanModify(b *models.Booking, now time.Time, loc *time.Location) bool {
	if Status(b.Status) != StatusConfirmed {
		return false
	}
	start, err := StartInstant(b, loc)
	if err != nil {
		return false
	}
	return start.Sub(now) >= ModificationWindow
}
