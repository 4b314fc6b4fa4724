// Package maintenance runs periodic database upkeep on a cron schedule.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Optimizer is implemented by service.InventoryService.
type Optimizer interface {
	Optimize(ctx context.Context) error
}

type Scheduler struct {
	cron      *cron.Cron
	optimizer Optimizer
	logger    *slog.Logger
	timeout   time.Duration
}

// NewScheduler registers the optimize job under spec, a standard five-field
// cron expression or a descriptor such as "@daily".
func NewScheduler(spec string, optimizer Optimizer, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		optimizer: optimizer,
		logger:    logger,
		timeout:   5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid optimize schedule %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce optimizes the database and logs the outcome.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Info("running scheduled database optimize")
	if err := s.optimizer.Optimize(ctx); err != nil {
		s.logger.Error("scheduled optimize failed", "error", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("maintenance scheduler started", "next_run", s.NextRun())
}

// Stop halts the schedule and waits for a running job to finish or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("maintenance job still running at shutdown")
	}
}

// NextRun reports when the job fires next. Zero before Start.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
