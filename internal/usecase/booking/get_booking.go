package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/dto"
)

type GetBooking struct {
	resolver
}

func NewGetBooking(repo domain.Repository, loc *time.Location) *GetBooking {
	return &GetBooking{resolver: newResolver(repo, loc)}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uuid.UUID,
) (*dto.BookingDetailDTO, error) {

	b, err := uc.loadOwned(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	return &dto.BookingDetailDTO{
		Booking:   *b,
		CanModify: domain.CanModify(b, uc.now(), uc.loc),
	}, nil
}
