package booking

import "time"

// Weekly rules index days Monday=0..Sunday=6 while time.Weekday is
// Sunday=0..Saturday=6. Every date checked against weekly rules must go
// through ScheduleDayOfWeek, otherwise availability shifts by one day.

func ToScheduleDayOfWeek(calendarDow int) int {
	if calendarDow == 0 {
		return 6
	}
	return calendarDow - 1
}

func ScheduleDayOfWeek(t time.Time) int {
	return ToScheduleDayOfWeek(int(t.Weekday()))
}
