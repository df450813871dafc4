package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var (
	monday     = models.NewDate(2026, 11, 2)
	nextMonday = models.NewDate(2026, 11, 9)
)

func customer() domain.Actor {
	return domain.Actor{ID: uuid.New(), Role: domain.RoleCustomer}
}

func cleanerActor(id uuid.UUID) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleCleaner}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailability_BookingRemovesOverlappingSlots(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "13:00"))
	repo.addBooking(cleanerID, uuid.New(), monday, "10:00", 2)

	uc := NewGetAvailability(repo, newYork)
	uc.now = fixedNow

	slots, err := uc.Execute(context.Background(), AvailabilityInput{CleanerID: cleanerID, Date: "2026-11-02", Hours: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no 2h slots, got %v", slots)
	}

	slots, err = uc.Execute(context.Background(), AvailabilityInput{CleanerID: cleanerID, Date: "2026-11-02", Hours: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[0].Start != "09:00" || slots[1].Start != "12:00" {
		t.Fatalf("expected 09:00 and 12:00, got %v", slots)
	}
}

func TestGetAvailability_Errors(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "13:00"))
	uc := NewGetAvailability(repo, newYork)
	uc.now = fixedNow
	ctx := context.Background()

	_, err := uc.Execute(ctx, AvailabilityInput{CleanerID: cleanerID, Date: "11/02/2026", Hours: 1})
	expectCode(t, err, "invalid_date")

	_, err = uc.Execute(ctx, AvailabilityInput{CleanerID: cleanerID, Date: "2026-11-02", Hours: 0})
	expectCode(t, err, "invalid_duration")

	_, err = uc.Execute(ctx, AvailabilityInput{CleanerID: uuid.New(), Date: "2026-11-02", Hours: 1})
	expectCode(t, err, "cleaner_not_found")
}

func TestCheckDate(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "13:00"))
	repo.blocked[cleanerID] = []models.BlockedDate{{CleanerID: cleanerID, Date: nextMonday}}

	uc := NewCheckDate(repo, newYork)
	uc.now = fixedNow

	cases := map[string]Eligibility{
		"2026-11-02": {Date: "2026-11-02", Eligible: true},
		"2026-11-09": {Date: "2026-11-09", Reason: "date_blocked"},
		"2026-11-03": {Date: "2026-11-03", Reason: "day_unavailable"},
		"2026-10-12": {Date: "2026-10-12", Reason: "date_in_past"},
	}
	for date, want := range cases {
		got, err := uc.Execute(context.Background(), cleanerID, date)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", date, err)
		}
		if got != want {
			t.Errorf("%s: expected %+v, got %+v", date, want, got)
		}
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBooking(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	pub := &recordingPublisher{}

	uc := NewCreateBooking(repo, newYork, nil, pub)
	uc.now = fixedNow

	who := customer()
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		Actor:          who,
		CleanerID:      cleanerID,
		Date:           "2026-11-02",
		StartTime:      "10:00",
		EstimatedHours: 2.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.EndTime != "12:30" || b.CustomerID != who.ID || b.Status != "confirmed" {
		t.Fatalf("unexpected booking %+v", b)
	}
	if len(pub.evs) != 1 || pub.evs[0] != "booking_created" {
		t.Fatalf("expected one booking_created event, got %v", pub.evs)
	}

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		Actor:          customer(),
		CleanerID:      cleanerID,
		Date:           "2026-11-02",
		StartTime:      "12:00",
		EstimatedHours: 1,
	})
	expectCode(t, err, "time_conflict")

	// 12:30 is free but not an hourly slot of the 09:00 rule.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		Actor:          customer(),
		CleanerID:      cleanerID,
		Date:           "2026-11-02",
		StartTime:      "12:30",
		EstimatedHours: 1,
	})
	expectCode(t, err, "outside_availability")

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		Actor:          customer(),
		CleanerID:      cleanerID,
		Date:           "2026-11-02",
		StartTime:      "13:00",
		EstimatedHours: 1,
	}); err != nil {
		t.Fatalf("expected the next free slot to succeed, got %v", err)
	}
}

func TestCreateBooking_OffGridStartKeepsSlots(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "13:00"))
	create := NewCreateBooking(repo, newYork, nil, nil)
	create.now = fixedNow
	ctx := context.Background()

	_, err := create.Execute(ctx, CreateBookingInput{
		Actor:          customer(),
		CleanerID:      cleanerID,
		Date:           "2026-11-02",
		StartTime:      "09:17",
		EstimatedHours: 1,
	})
	expectCode(t, err, "outside_availability")

	avail := NewGetAvailability(repo, newYork)
	avail.now = fixedNow
	slots, err := avail.Execute(ctx, AvailabilityInput{CleanerID: cleanerID, Date: "2026-11-02", Hours: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 4 || slots[0].Start != "09:00" || slots[1].Start != "10:00" {
		t.Fatalf("expected all four hourly slots, got %v", slots)
	}
}

func TestCreateBooking_Rejections(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "13:00"))
	uc := NewCreateBooking(repo, newYork, nil, nil)
	uc.now = fixedNow
	ctx := context.Background()

	in := func(date, start string, hours float64) CreateBookingInput {
		return CreateBookingInput{Actor: customer(), CleanerID: cleanerID, Date: date, StartTime: start, EstimatedHours: hours}
	}

	_, err := uc.Execute(ctx, in("2026-11-02", "12:00", 2))
	expectCode(t, err, "outside_availability")

	_, err = uc.Execute(ctx, in("2026-11-03", "09:00", 1))
	expectCode(t, err, "day_unavailable")

	_, err = uc.Execute(ctx, in("2026-10-12", "09:00", 1))
	expectCode(t, err, "date_in_past")

	_, err = uc.Execute(ctx, in("2026-11-02", "9am", 1))
	expectCode(t, err, "invalid_time")

	cleanerIn := in("2026-11-02", "09:00", 1)
	cleanerIn.Actor = cleanerActor(cleanerID)
	_, err = uc.Execute(ctx, cleanerIn)
	expectCode(t, err, "not_allowed")
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	uc := NewCreateBooking(repo, newYork, nil, nil)
	uc.now = fixedNow

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CreateBookingInput{
				Actor:          customer(),
				CleanerID:      cleanerID,
				Date:           "2026-11-02",
				StartTime:      "10:00",
				EstimatedHours: 2,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case httperr.IsBusiness(err, "time_conflict"):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, succeeded, conflicts)
	}
}

// ======================================================
// RESCHEDULE
// ======================================================

func TestRescheduleBooking_ConcurrentSameTarget(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	alice, bob := customer(), customer()
	a := repo.addBooking(cleanerID, alice.ID, monday, "09:00", 2)
	b := repo.addBooking(cleanerID, bob.ID, monday, "13:00", 2)

	// Both requests pass the optimistic check before either writes.
	var arrived sync.WaitGroup
	arrived.Add(2)
	repo.afterRead = func() {
		arrived.Done()
		arrived.Wait()
	}

	uc := NewRescheduleBooking(repo, newYork, nil, nil)
	uc.now = fixedNow

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, req := range []RescheduleBookingInput{
		{Actor: alice, BookingID: a.ID, Date: "2026-11-09", StartTime: "10:00"},
		{Actor: bob, BookingID: b.ID, Date: "2026-11-09", StartTime: "10:00"},
	} {
		wg.Add(1)
		go func(i int, req RescheduleBookingInput) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i, req)
	}
	wg.Wait()

	ok, conflict := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, "time_conflict"):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("expected exactly one winner, got %v", errs)
	}

	if n := len(repo.confirmedOn(cleanerID, nextMonday, uuid.Nil)); n != 1 {
		t.Fatalf("expected one booking on the target date, got %d", n)
	}
}

func TestRescheduleBooking(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	alice := customer()
	a := repo.addBooking(cleanerID, alice.ID, monday, "09:00", 1.5)

	uc := NewRescheduleBooking(repo, newYork, nil, nil)
	uc.now = fixedNow
	ctx := context.Background()

	// Overlapping its own current range is allowed.
	got, err := uc.Execute(ctx, RescheduleBookingInput{Actor: alice, BookingID: a.ID, Date: "2026-11-02", StartTime: "10:00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StartTime != "10:00" || got.EndTime != "11:30" {
		t.Fatalf("expected 10:00-11:30, got %s-%s", got.StartTime, got.EndTime)
	}

	_, err = uc.Execute(ctx, RescheduleBookingInput{Actor: customer(), BookingID: a.ID, Date: "2026-11-09", StartTime: "10:00"})
	expectCode(t, err, "booking_not_found")

	_, err = uc.Execute(ctx, RescheduleBookingInput{Actor: alice, BookingID: a.ID, Date: "2026-11-09", StartTime: "16:00"})
	expectCode(t, err, "outside_availability")
}

func TestRescheduleBooking_InsideWindow(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	alice := customer()
	a := repo.addBooking(cleanerID, alice.ID, models.NewDate(2026, 10, 19), "10:00", 2)

	uc := NewRescheduleBooking(repo, newYork, nil, nil)
	// 23h59m before the start.
	uc.now = func() time.Time { return time.Date(2026, 10, 18, 10, 1, 0, 0, newYork) }

	_, err := uc.Execute(context.Background(), RescheduleBookingInput{Actor: alice, BookingID: a.ID, Date: "2026-11-09", StartTime: "10:00"})
	expectCode(t, err, "outside_modification_window")
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func TestCancelBooking(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(6, "09:00", "17:00"), rule(0, "09:00", "17:00"))
	alice := customer()
	tomorrow := repo.addBooking(cleanerID, alice.ID, models.NewDate(2026, 10, 19), "09:00", 2)
	pub := &recordingPublisher{}

	uc := NewCancelBooking(repo, newYork, nil, pub)
	uc.now = fixedNow
	ctx := context.Background()

	_, err := uc.Execute(ctx, CancelBookingInput{Actor: alice, BookingID: tomorrow.ID})
	expectCode(t, err, "outside_modification_window")

	_, err = uc.Execute(ctx, CancelBookingInput{Actor: cleanerActor(cleanerID), BookingID: tomorrow.ID})
	expectCode(t, err, "reason_required")

	_, err = uc.Execute(ctx, CancelBookingInput{Actor: cleanerActor(uuid.New()), BookingID: tomorrow.ID, Reason: "x"})
	expectCode(t, err, "booking_not_found")

	got, err := uc.Execute(ctx, CancelBookingInput{Actor: cleanerActor(cleanerID), BookingID: tomorrow.ID, Reason: "Family emergency"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "cancelled" || got.CancelledBy != "cleaner" {
		t.Fatalf("unexpected booking %+v", got)
	}
	if stored := repo.bookings[tomorrow.ID]; stored.Status != "cancelled" {
		t.Fatal("expected cancellation to be stored")
	}
	if len(pub.evs) != 1 || pub.evs[0] != "booking_cancelled" {
		t.Fatalf("expected one booking_cancelled event, got %v", pub.evs)
	}

	_, err = uc.Execute(ctx, CancelBookingInput{Actor: cleanerActor(cleanerID), BookingID: tomorrow.ID, Reason: "again"})
	expectCode(t, err, "invalid_state")
}

func TestCompleteBooking(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(6, "08:00", "17:00"))
	alice := customer()
	today := repo.addBooking(cleanerID, alice.ID, models.NewDate(2026, 10, 18), "09:00", 2)
	later := repo.addBooking(cleanerID, alice.ID, models.NewDate(2026, 10, 18), "13:00", 1)

	uc := NewCompleteBooking(repo, newYork, nil)
	uc.now = fixedNow
	ctx := context.Background()

	_, err := uc.Execute(ctx, alice, today.ID)
	expectCode(t, err, "not_allowed")

	_, err = uc.Execute(ctx, cleanerActor(cleanerID), later.ID)
	expectCode(t, err, "booking_not_finished")

	got, err := uc.Execute(ctx, cleanerActor(cleanerID), today.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "completed" || got.CompletedAt == nil {
		t.Fatalf("unexpected booking %+v", got)
	}
}

// ======================================================
// READ
// ======================================================

func TestGetBooking_CanModify(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	alice := customer()
	soon := repo.addBooking(cleanerID, alice.ID, models.NewDate(2026, 10, 19), "10:00", 2)
	later := repo.addBooking(cleanerID, alice.ID, monday, "10:00", 2)

	uc := NewGetBooking(repo, newYork)
	uc.now = fixedNow

	got, err := uc.Execute(context.Background(), alice, soon.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CanModify {
		t.Fatal("booking 22h away must not be modifiable")
	}

	got, err = uc.Execute(context.Background(), cleanerActor(cleanerID), later.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.CanModify {
		t.Fatal("booking two weeks away must be modifiable")
	}
}

func TestListBookings(t *testing.T) {
	repo := newMemRepo()
	cleanerID := repo.addCleaner(rule(0, "09:00", "17:00"))
	other := repo.addCleaner(rule(0, "09:00", "17:00"))
	repo.addBooking(cleanerID, uuid.New(), monday, "13:00", 1)
	repo.addBooking(cleanerID, uuid.New(), monday, "09:00", 1)
	repo.addBooking(cleanerID, uuid.New(), models.NewDate(2026, 12, 7), "09:00", 1)
	repo.addBooking(other, uuid.New(), monday, "09:00", 1)

	uc := NewListBookings(repo)
	ctx := context.Background()

	day, err := uc.ByDate(ctx, cleanerID, "2026-11-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day) != 2 || day[0].StartTime != "09:00" {
		t.Fatalf("expected two bookings ordered by start, got %+v", day)
	}

	month, err := uc.ByMonth(ctx, cleanerID, 2026, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(month) != 2 {
		t.Fatalf("expected two bookings in November, got %d", len(month))
	}

	_, err = uc.ByMonth(ctx, cleanerID, 2026, 13)
	expectCode(t, err, "invalid_month")
}
