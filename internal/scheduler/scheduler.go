package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner drops stale entries from a cache.
type Pruner interface {
	Prune() int
}

// Scheduler periodically prunes the forecast cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pruner Pruner, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pruner:    pruner,
		interval:  interval,
	}
}

// Start schedules the prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.prune)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("scheduler started", "prune_interval", interval)
	return nil
}

func (s *Scheduler) prune() {
	removed := s.pruner.Prune()
	slog.Debug("forecast cache pruned", "removed", removed)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
