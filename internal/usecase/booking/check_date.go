package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
)

type Eligibility struct {
	Date     string `json:"date"`
	Eligible bool   `json:"eligible"`
	// Reason is the error code explaining an ineligible date.
	Reason string `json:"reason,omitempty"`
}

type CheckDate struct {
	resolver
}

func NewCheckDate(repo domain.Repository, loc *time.Location) *CheckDate {
	return &CheckDate{resolver: newResolver(repo, loc)}
}

func (uc *CheckDate) Execute(
	ctx context.Context,
	cleanerID uuid.UUID,
	dateStr string,
) (Eligibility, error) {

	date, err := parseDate(dateStr)
	if err != nil {
		return Eligibility{}, err
	}

	if _, err := uc.repo.GetCleaner(ctx, cleanerID); err != nil {
		return Eligibility{}, err
	}

	rules, err := uc.repo.GetWeeklyAvailability(ctx, cleanerID)
	if err != nil {
		return Eligibility{}, err
	}
	blocked, err := uc.repo.GetBlockedDates(ctx, cleanerID)
	if err != nil {
		return Eligibility{}, err
	}

	out := Eligibility{Date: date.String(), Eligible: true}

	if err := domain.CheckDateEligible(date, uc.now(), uc.loc, rules, blocked); err != nil {
		var be httperr.BusinessError
		if !errors.As(err, &be) {
			return Eligibility{}, err
		}
		out.Eligible = false
		out.Reason = be.Code
	}

	return out, nil
}
