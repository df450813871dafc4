package routes

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
	"github.com/bossofclean/cleaner-scheduler/internal/usecase/schedule"
)

// memStore backs both repository ports and the audit log listing.
type memStore struct {
	mu       sync.Mutex
	cleaners map[uuid.UUID]bool
	weekly   map[uuid.UUID][]models.WeeklyAvailabilitySlot
	blocked  []models.BlockedDate
	bookings map[uuid.UUID]models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		cleaners: map[uuid.UUID]bool{},
		weekly:   map[uuid.UUID][]models.WeeklyAvailabilitySlot{},
		bookings: map[uuid.UUID]models.Booking{},
	}
}

func (s *memStore) GetCleaner(_ context.Context, id uuid.UUID) (*models.Cleaner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cleaners[id] {
		return nil, domain.ErrCleanerNotFound
	}
	return &models.Cleaner{ID: id, Active: true}, nil
}

func (s *memStore) GetWeeklyAvailability(ctx context.Context, id uuid.UUID) ([]models.WeeklyAvailabilitySlot, error) {
	return s.ListWeekly(ctx, id)
}

func (s *memStore) ListWeekly(_ context.Context, id uuid.UUID) ([]models.WeeklyAvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.WeeklyAvailabilitySlot(nil), s.weekly[id]...), nil
}

func (s *memStore) ReplaceWeeklyAvailability(_ context.Context, id uuid.UUID, rows []models.WeeklyAvailabilitySlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekly[id] = rows
	return nil
}

func (s *memStore) GetBlockedDates(ctx context.Context, id uuid.UUID) ([]models.BlockedDate, error) {
	return s.ListBlockedDates(ctx, id, nil)
}

func (s *memStore) ListBlockedDates(_ context.Context, id uuid.UUID, from *models.Date) ([]models.BlockedDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BlockedDate
	for _, bd := range s.blocked {
		if bd.CleanerID == id && (from == nil || !bd.Date.Before(*from)) {
			out = append(out, bd)
		}
	}
	return out, nil
}

func (s *memStore) AddBlockedDate(_ context.Context, bd *models.BlockedDate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.blocked {
		if existing.CleanerID == bd.CleanerID && existing.Date.Equal(bd.Date) {
			*bd = existing
			return false, nil
		}
	}
	bd.ID = uint(len(s.blocked) + 1)
	s.blocked = append(s.blocked, *bd)
	return true, nil
}

func (s *memStore) RemoveBlockedDate(_ context.Context, id uuid.UUID, date models.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, bd := range s.blocked {
		if bd.CleanerID == id && bd.Date.Equal(date) {
			s.blocked = append(s.blocked[:i], s.blocked[i+1:]...)
			return nil
		}
	}
	return schedule.ErrBlockedDateNotFound
}

func (s *memStore) PurgeBlockedDatesBefore(context.Context, models.Date) (int64, error) {
	return 0, nil
}

func (s *memStore) GetBookingsForDate(_ context.Context, id uuid.UUID, date models.Date) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.CleanerID == id && b.BookingDate.Equal(date) && b.Status == "confirmed" {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (s *memStore) ListBookingsForPeriod(_ context.Context, id uuid.UUID, from, to models.Date) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.CleanerID == id && !b.BookingDate.Before(from) && b.BookingDate.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) write(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mine, _ := domain.BookingInterval(b)
	for _, other := range s.bookings {
		if other.ID == b.ID || other.CleanerID != b.CleanerID || other.Status != "confirmed" ||
			!other.BookingDate.Equal(b.BookingDate) {
			continue
		}
		theirs, _ := domain.BookingInterval(&other)
		if mine.Overlaps(theirs) {
			return domain.ErrTimeConflict
		}
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *memStore) InsertBooking(_ context.Context, b *models.Booking) error     { return s.write(b) }
func (s *memStore) RescheduleBooking(_ context.Context, b *models.Booking) error { return s.write(b) }

func (s *memStore) UpdateBookingStatus(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = *b
	return nil
}

func (s *memStore) List(context.Context, uuid.UUID, audit.Filter) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}
