package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bossofclean/cleaner-scheduler/internal/audit"
	domain "github.com/bossofclean/cleaner-scheduler/internal/domain/booking"
	"github.com/bossofclean/cleaner-scheduler/internal/events"
	"github.com/bossofclean/cleaner-scheduler/internal/httperr"
	"github.com/bossofclean/cleaner-scheduler/internal/models"
)

type WeeklyRuleInput struct {
	DayOfWeek   int
	StartTime   string
	EndTime     string
	IsAvailable bool
}

type UpdateWeeklyAvailability struct {
	repo   Repository
	audit  *audit.Dispatcher
	events events.Publisher
	now    func() time.Time
}

func NewUpdateWeeklyAvailability(
	repo Repository,
	audit *audit.Dispatcher,
	publisher events.Publisher,
) *UpdateWeeklyAvailability {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UpdateWeeklyAvailability{
		repo:   repo,
		audit:  audit,
		events: publisher,
		now:    time.Now,
	}
}

// Execute replaces every weekly rule of the cleaner with rules. Existing
// bookings are left alone even if they fall outside the new rules.
func (uc *UpdateWeeklyAvailability) Execute(
	ctx context.Context,
	cleanerID uuid.UUID,
	rules []WeeklyRuleInput,
) ([]models.WeeklyAvailabilitySlot, error) {

	rows := make([]models.WeeklyAvailabilitySlot, 0, len(rules))
	for _, r := range rules {
		row, err := normalizeRule(cleanerID, r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DayOfWeek != rows[j].DayOfWeek {
			return rows[i].DayOfWeek < rows[j].DayOfWeek
		}
		return rows[i].StartTime < rows[j].StartTime
	})

	if _, err := uc.repo.GetCleaner(ctx, cleanerID); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceWeeklyAvailability(ctx, cleanerID, rows); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CleanerID: cleanerID,
		ActorID:   &cleanerID,
		Action:    "weekly_availability_updated",
		Entity:    "weekly_availability",
		Metadata:  map[string]int{"rules": len(rows)},
	})
	uc.events.Publish(ctx, events.AvailabilityChanged{
		CleanerID: cleanerID,
		Reason:    events.ReasonWeeklyUpdated,
		At:        uc.now().UTC(),
	})

	return rows, nil
}

func normalizeRule(cleanerID uuid.UUID, r WeeklyRuleInput) (models.WeeklyAvailabilitySlot, error) {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return models.WeeklyAvailabilitySlot{}, httperr.ErrValidation(
			"invalid_day_of_week",
			"Day of week must be between 0 (Monday) and 6 (Sunday).",
		)
	}

	start, err := domain.ParseClock(r.StartTime)
	if err != nil {
		return models.WeeklyAvailabilitySlot{}, httperr.ErrValidation("invalid_time", "Times must use the HH:MM format.")
	}
	end, err := domain.ParseClock(r.EndTime)
	if err != nil {
		return models.WeeklyAvailabilitySlot{}, httperr.ErrValidation("invalid_time", "Times must use the HH:MM format.")
	}
	if start >= end {
		return models.WeeklyAvailabilitySlot{}, httperr.ErrValidation(
			"invalid_time_range",
			"Start time must be before end time.",
		)
	}

	return models.WeeklyAvailabilitySlot{
		CleanerID:   cleanerID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   domain.FormatClock(start),
		EndTime:     domain.FormatClock(end),
		IsAvailable: r.IsAvailable,
	}, nil
}

type GetWeeklyAvailability struct {
	repo Repository
}

func NewGetWeeklyAvailability(repo Repository) *GetWeeklyAvailability {
	return &GetWeeklyAvailability{repo: repo}
}

func (uc *GetWeeklyAvailability) Execute(
	ctx context.Context,
	cleanerID uuid.UUID,
) ([]models.WeeklyAvailabilitySlot, error) {
	return uc.repo.ListWeekly(ctx, cleanerID)
}
