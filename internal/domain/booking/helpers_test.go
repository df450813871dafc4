package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/models"
	"github.com/bossofclean/cleaner-scheduler/internal/timezone"
)

var newYork = timezone.Location(timezone.DefaultTimezone)

func rule(dow int, start, end string) models.WeeklyAvailabilitySlot {
	return models.WeeklyAvailabilitySlot{
		DayOfWeek:   dow,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func booked(date models.Date, start, end string, status Status) models.Booking {
	return models.Booking{
		ID:          uuid.New(),
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      string(status),
	}
}

// at builds a wall-clock instant in New York.
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, newYork)
}

func slotStarts(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start+"-"+s.End)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
