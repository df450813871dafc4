package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// BlockedDatePurger removes blocked dates that are already in the past.
type BlockedDatePurger interface {
	PurgePast(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler registers the housekeeping jobs. Schedules are evaluated in
// loc so "0 3 * * *" means 03:00 business time.
func NewScheduler(
	loc *time.Location,
	purgeSpec string,
	purger BlockedDatePurger,
	log *zap.Logger,
) (*Scheduler, error) {

	log = log.Named("jobs")
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(purgeSpec, purgeBlockedDates(purger, log)); err != nil {
		return nil, fmt.Errorf("add purge job %q: %w", purgeSpec, err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("cron scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs or until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("cron jobs still running at shutdown")
	}
}

func purgeBlockedDates(purger BlockedDatePurger, log *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := purger.PurgePast(ctx)
		if err != nil {
			log.Error("purge past blocked dates", zap.Error(err))
			return
		}
		log.Info("purged past blocked dates", zap.Int64("deleted", n))
	}
}
