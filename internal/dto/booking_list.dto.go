package dto

import (
	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type BookingListDTO struct {
	ID             uuid.UUID   `json:"id"`
	CustomerID     uuid.UUID   `json:"customer_id"`
	BookingDate    models.Date `json:"booking_date"`
	StartTime      string      `json:"start_time"`
	EndTime        string      `json:"end_time"`
	EstimatedHours float64     `json:"estimated_hours"`
	Status         string      `json:"status"`
}

func BookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:             b.ID,
			CustomerID:     b.CustomerID,
			BookingDate:    b.BookingDate,
			StartTime:      b.StartTime,
			EndTime:        b.EndTime,
			EstimatedHours: b.EstimatedHours,
			Status:         b.Status,
		})
	}
	return out
}

// BookingDetailDTO is a single booking plus whether the customer may still
// change it, so clients can disable the actions up front.
type BookingDetailDTO struct {
	models.Booking
	CanModify bool `json:"can_modify"`
}
