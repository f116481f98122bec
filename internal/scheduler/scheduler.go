// Package scheduler runs the job-alert scan on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/usecase/alert"
)

// DefaultSchedule fires the alert scan hourly.
const DefaultSchedule = "@every 1h"

// AlertRunner performs one alert scan.
type AlertRunner interface {
	Run(ctx context.Context) (alert.RunStats, error)
}

// Scheduler wraps robfig/cron and manages the alert loop.
type Scheduler struct {
	cron     *cron.Cron
	runner   AlertRunner
	schedule string
	logger   *zap.Logger

	// Overlapping ticks are skipped while a scan is still running.
	mu      sync.Mutex
	running bool

	// initial tracks the scan started by Start outside the cron.
	initial sync.WaitGroup
}

// New creates a Scheduler. An empty schedule selects DefaultSchedule.
func New(runner AlertRunner, schedule string, logger *zap.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Scheduler{
		cron:     cron.New(),
		runner:   runner,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the scan and starts the scheduler. One scan also runs
// immediately so alerts do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("alert scheduler started", zap.String("schedule", s.schedule))

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.runOnce(ctx)
	}()
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish,
// including the one started by Start.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
	s.logger.Info("alert scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("alert scan still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	stats, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("alert scan failed", zap.Error(err))
		return
	}
	s.logger.Info("alert scan complete",
		zap.Int("jobs", stats.Jobs),
		zap.Int("users", stats.Users),
		zap.Int("alerts", stats.Alerts),
		zap.Duration("duration", time.Since(start)),
	)
}
