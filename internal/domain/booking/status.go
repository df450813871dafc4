package booking

import "github.com/bossofclean/cleaner-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

var ErrInvalidState = httperr.ErrConflict(
	"invalid_state",
	"This booking is no longer active and cannot be changed.",
)

func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

// Bookings are created directly as confirmed once the slot is validated.
func InitialStatus() Status {
	return StatusConfirmed
}
