package booking

import (
	"fmt"
	"sort"

	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

// SlotStep is the cursor increment when walking a weekly rule. It does
// not depend on the requested duration, so slots always start on the hour
// relative to the rule start.
const SlotStep = 60

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Interval is a half-open [Start, End) range in minutes after midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Within(o Interval) bool {
	return o.Start <= i.Start && i.End <= o.End
}

func (i Interval) Slot() TimeSlot {
	return TimeSlot{Start: FormatClock(i.Start), End: FormatClock(i.End)}
}

func ruleInterval(row models.WeeklyAvailabilitySlot) (Interval, bool) {
	start, err := ParseClock(row.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseClock(row.EndTime)
	if err != nil || end <= start {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// AvailableRanges returns the enabled rule ranges for a schedule day
// (Monday=0). Malformed rows are ignored.
func AvailableRanges(rows []models.WeeklyAvailabilitySlot, dayOfWeek int) []Interval {
	var out []Interval
	for _, row := range rows {
		if row.DayOfWeek != dayOfWeek || !row.IsAvailable {
			continue
		}
		if iv, ok := ruleInterval(row); ok {
			out = append(out, iv)
		}
	}
	return out
}

// GenerateSlots walks every enabled rule for dayOfWeek independently and
// emits [t, t+duration) for each hourly cursor position that still fits
// inside the rule. Adjacent rules are not merged. The result is ordered by
// start and free of exact duplicates.
func GenerateSlots(rows []models.WeeklyAvailabilitySlot, dayOfWeek, durationMinutes int) []Interval {
	if durationMinutes <= 0 {
		return nil
	}

	var slots []Interval
	for _, r := range AvailableRanges(rows, dayOfWeek) {
		for t := r.Start; t+durationMinutes <= r.End; t += SlotStep {
			slots = append(slots, Interval{Start: t, End: t + durationMinutes})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].End < slots[j].End
	})

	out := slots[:0]
	for i, s := range slots {
		if i > 0 && s == slots[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// BookedIntervals extracts the time ranges held by confirmed bookings.
func BookedIntervals(bookings []models.Booking) ([]Interval, error) {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if Status(b.Status) != StatusConfirmed {
			continue
		}
		iv, err := BookingInterval(&b)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func BookingInterval(b *models.Booking) (Interval, error) {
	start, err := ParseClock(b.StartTime)
	if err != nil {
		return Interval{}, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	end, err := ParseClock(b.EndTime)
	if err != nil {
		return Interval{}, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	return Interval{Start: start, End: end}, nil
}

// FilterConflicts drops every slot overlapping a booked range. Touching
// ranges (slot.End == booked.Start) are kept.
func FilterConflicts(slots, booked []Interval) []Interval {
	out := make([]Interval, 0, len(slots))
	for _, s := range slots {
		conflict := false
		for _, b := range booked {
			if s.Overlaps(b) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, s)
		}
	}
	return out
}

func ToTimeSlots(intervals []Interval) []TimeSlot {
	out := make([]TimeSlot, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, iv.Slot())
	}
	return out
}
