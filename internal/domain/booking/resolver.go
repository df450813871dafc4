package booking

import (
	"time"

	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var (
	ErrTimeConflict = httperr.ErrConflict(
		"time_conflict",
		"This time is no longer available. Please choose another.",
	)
	ErrOutsideAvailability = httperr.ErrConflict(
		"outside_availability",
		"The cleaner is not available at this time. Please choose another.",
	)
	ErrStartInPast = httperr.ErrConflict(
		"start_in_past",
		"This time has already passed. Please choose another.",
	)
)

// DayContext is everything the resolver needs about one cleaner on one
// date, fetched fresh by the caller.
type DayContext struct {
	Date     models.Date
	Now      time.Time
	Location *time.Location
	Rules    []models.WeeklyAvailabilitySlot
	Blocked  []models.BlockedDate
	// Bookings on Date; anything not confirmed is ignored.
	Bookings []models.Booking
}

func (d DayContext) startsAfterNow(minutes int) bool {
	return WallTime(d.Date, minutes, d.Location).After(d.Now)
}

// AvailableSlots lists the bookable slots of durationMinutes for the day.
// An ineligible date yields an empty list, as do slots that already began.
func AvailableSlots(d DayContext, durationMinutes int) ([]TimeSlot, error) {
	if CheckDateEligible(d.Date, d.Now, d.Location, d.Rules, d.Blocked) != nil {
		return []TimeSlot{}, nil
	}

	booked, err := BookedIntervals(d.Bookings)
	if err != nil {
		return nil, err
	}

	candidates := GenerateSlots(d.Rules, ScheduleDayOfWeek(d.Date.Time), durationMinutes)
	free := FilterConflicts(candidates, booked)

	upcoming := free[:0]
	for _, s := range free {
		if d.startsAfterNow(s.Start) {
			upcoming = append(upcoming, s)
		}
	}

	return ToTimeSlots(upcoming), nil
}

// CheckBookable validates a requested range against eligibility, the
// weekly rules and the confirmed bookings of the day. Only ranges that
// AvailableSlots could offer are accepted: the start must sit on a rule's
// hourly cursor and the whole range must fit that rule. It is an optimistic
// pre-check; the storage layer makes the final call.
func CheckBookable(d DayContext, requested Interval) error {
	if err := CheckDateEligible(d.Date, d.Now, d.Location, d.Rules, d.Blocked); err != nil {
		return err
	}

	if !isCandidate(d, requested) {
		return ErrOutsideAvailability
	}

	if !d.startsAfterNow(requested.Start) {
		return ErrStartInPast
	}

	booked, err := BookedIntervals(d.Bookings)
	if err != nil {
		return err
	}
	for _, b := range booked {
		if requested.Overlaps(b) {
			return ErrTimeConflict
		}
	}

	return nil
}

// isCandidate reports whether requested is one of the slots GenerateSlots
// walks for the day, ignoring bookings.
func isCandidate(d DayContext, requested Interval) bool {
	dow := ScheduleDayOfWeek(d.Date.Time)
	for _, s := range GenerateSlots(d.Rules, dow, requested.End-requested.Start) {
		if s == requested {
			return true
		}
	}
	return false
}
