package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
	"github.com/bossofclean/cleaner-scheduler/internal/timezone"
)

var newYork = timezone.Location(timezone.DefaultTimezone)

// fixedNow is Sunday 2026-10-18 12:00 in New York.
func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, newYork)
}

// memRepo serializes writes behind one mutex, which gives it the same
// insert-or-reject guarantee as the row lock plus exclusion constraint.
type memRepo struct {
	mu       sync.Mutex
	cleaners map[uuid.UUID]models.Cleaner
	rules    map[uuid.UUID][]models.WeeklyAvailabilitySlot
	blocked  map[uuid.UUID][]models.BlockedDate
	bookings map[uuid.UUID]models.Booking

	// afterRead runs after GetBookingsForDate, letting tests interleave
	// concurrent writers between the pre-check and the write.
	afterRead func()
}

func newMemRepo() *memRepo {
	return &memRepo{
		cleaners: map[uuid.UUID]models.Cleaner{},
		rules:    map[uuid.UUID][]models.WeeklyAvailabilitySlot{},
		blocked:  map[uuid.UUID][]models.BlockedDate{},
		bookings: map[uuid.UUID]models.Booking{},
	}
}

func (r *memRepo) addCleaner(rules ...models.WeeklyAvailabilitySlot) uuid.UUID {
	id := uuid.New()
	r.cleaners[id] = models.Cleaner{ID: id, DisplayName: "Test Cleaner", Active: true}
	for i := range rules {
		rules[i].CleanerID = id
	}
	r.rules[id] = rules
	return id
}

func (r *memRepo) addBooking(cleanerID, customerID uuid.UUID, date models.Date, start string, hours float64) models.Booking {
	startMin, _ := domain.ParseClock(start)
	dur, _ := domain.DurationMinutes(hours)
	b := models.Booking{
		ID:             uuid.New(),
		CleanerID:      cleanerID,
		CustomerID:     customerID,
		EstimatedHours: hours,
		Status:         string(domain.StatusConfirmed),
	}
	_ = domain.ApplySchedule(&b, date, startMin, dur)
	r.bookings[b.ID] = b
	return b
}

func rule(dow int, start, end string) models.WeeklyAvailabilitySlot {
	return models.WeeklyAvailabilitySlot{DayOfWeek: dow, StartTime: start, EndTime: end, IsAvailable: true}
}

func (r *memRepo) GetCleaner(_ context.Context, id uuid.UUID) (*models.Cleaner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cleaners[id]
	if !ok {
		return nil, domain.ErrCleanerNotFound
	}
	return &c, nil
}

func (r *memRepo) GetWeeklyAvailability(_ context.Context, cleanerID uuid.UUID) ([]models.WeeklyAvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.WeeklyAvailabilitySlot(nil), r.rules[cleanerID]...), nil
}

func (r *memRepo) GetBlockedDates(_ context.Context, cleanerID uuid.UUID) ([]models.BlockedDate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.BlockedDate(nil), r.blocked[cleanerID]...), nil
}

func (r *memRepo) GetBookingsForDate(_ context.Context, cleanerID uuid.UUID, date models.Date) ([]models.Booking, error) {
	r.mu.Lock()
	out := r.confirmedOn(cleanerID, date, uuid.Nil)
	hook := r.afterRead
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memRepo) confirmedOn(cleanerID uuid.UUID, date models.Date, skip uuid.UUID) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CleanerID == cleanerID && b.BookingDate.Equal(date) &&
			b.Status == string(domain.StatusConfirmed) && b.ID != skip {
			out = append(out, b)
		}
	}
	return out
}

func (r *memRepo) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *memRepo) ListBookingsForPeriod(_ context.Context, cleanerID uuid.UUID, from, to models.Date) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CleanerID == cleanerID && !b.BookingDate.Before(from) && b.BookingDate.Before(to) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.Before(out[j].BookingDate)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *memRepo) overlaps(b *models.Booking) bool {
	mine, _ := domain.BookingInterval(b)
	existing := r.confirmedOn(b.CleanerID, b.BookingDate, b.ID)
	others, _ := domain.BookedIntervals(existing)
	for _, o := range others {
		if mine.Overlaps(o) {
			return true
		}
	}
	return false
}

func (r *memRepo) InsertBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if r.overlaps(b) {
		return domain.ErrTimeConflict
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) RescheduleBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	if r.overlaps(b) {
		return domain.ErrTimeConflict
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memRepo) UpdateBookingStatus(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	r.bookings[b.ID] = *b
	return nil
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu  sync.Mutex
	evs []string
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.AvailabilityChanged) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evs = append(p.evs, string(ev.Reason))
}
