package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/dto"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

var errInvalidMonth = httperr.ErrValidation("invalid_month", "Year and month are required (month 1-12).")

// ListBookings is the cleaner's agenda: every booking, whatever its
// status, ordered by date and start.
type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	cleanerID uuid.UUID,
	dateStr string,
) ([]dto.BookingListDTO, error) {

	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return uc.period(ctx, cleanerID, date, models.DateOf(date.AddDate(0, 0, 1)))
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	cleanerID uuid.UUID,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	if year < 1 || month < 1 || month > 12 {
		return nil, errInvalidMonth
	}

	from := models.NewDate(year, time.Month(month), 1)
	to := models.DateOf(from.AddDate(0, 1, 0))

	return uc.period(ctx, cleanerID, from, to)
}

func (uc *ListBookings) period(
	ctx context.Context,
	cleanerID uuid.UUID,
	from models.Date,
	to models.Date,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, cleanerID, from, to)
	if err != nil {
		return nil, err
	}

	return dto.BookingList(bookings), nil
}
