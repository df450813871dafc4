package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
)

const MinutesPerDay = 24 * 60

// ParseClock turns "HH:MM" (or "HH:MM:SS", as Postgres renders TIME) into
// minutes after midnight. "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec != 0 {
			return 0, fmt.Errorf("seconds are not supported in %q", s)
		}
	}

	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}

	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationMinutes converts a service duration in hours (possibly
// fractional) to whole minutes.
func DurationMinutes(hours float64) (int, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0, httperr.ErrValidation("invalid_duration", "Duration must be greater than zero.")
	}
	// Range-check before converting; float to int overflow is undefined.
	minutes := math.Round(hours * 60)
	if minutes < 1 || minutes > MinutesPerDay {
		return 0, httperr.ErrValidation("invalid_duration", "Duration must be between one minute and 24 hours.")
	}
	return int(minutes), nil
}
