// Package scheduler runs the periodic retention job that removes old
// completed todos.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const defaultRunTimeout = 30 * time.Second

// Purger deletes completed todos older than a retention window.
type Purger interface {
	PurgeCompleted(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Config holds the scheduler configuration.
type Config struct {
	Purger Purger
	// Retention is how long completed todos are kept. Zero disables the job.
	Retention time.Duration
	// Interval is how often the job runs. Defaults to one hour.
	Interval   time.Duration
	RunTimeout time.Duration
	Logger     *slog.Logger
}

// Scheduler manages the retention job using gocron.
type Scheduler struct {
	cron   gocron.Scheduler
	cfg    Config
	logger *slog.Logger
}

// New creates a new Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	return &Scheduler{cron: cron, cfg: cfg, logger: cfg.Logger}, nil
}

// Enabled reports whether a retention window is configured.
func (s *Scheduler) Enabled() bool {
	return s.cfg.Retention > 0
}

// Start schedules the retention job, running it once immediately. It is a
// no-op when retention is disabled. Jobs use ctx as their parent context.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.Enabled() {
		s.logger.Info("completed todo retention disabled")
		return nil
	}

	_, err := s.cron.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func() { _, _ = s.RunOnce(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("scheduling retention job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("retention scheduler started",
		"retention", s.cfg.Retention.String(), "interval", s.cfg.Interval.String())
	return nil
}

// RunOnce performs a single purge bounded by the run timeout.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	n, err := s.cfg.Purger.PurgeCompleted(runCtx, s.cfg.Retention)
	if err != nil {
		s.logger.Error("retention run failed", "error", err)
		return 0, err
	}
	s.logger.Debug("retention run finished", "purged", n)
	return n, nil
}

// Stop shuts down the gocron scheduler.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}
