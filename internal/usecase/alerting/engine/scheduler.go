package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/robfig/cron"
)

// ScanExecutor is anything that can perform a triggered scan.
type ScanExecutor interface {
	Run(ctx context.Context, trigger domain.ScanTrigger) (*domain.ScanSummary, error)
}

// Scheduler triggers scans on a cron schedule until its context is cancelled.
type Scheduler struct {
	runner ScanExecutor
	spec   string
	logger *logger.Logger
	cron   *cron.Cron

	mu      sync.Mutex
	stopped bool
	running sync.WaitGroup
}

func NewScheduler(runner ScanExecutor, spec string, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		spec:   spec,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the job and blocks until ctx is done and any scan in flight has returned.
func (s *Scheduler) Start(ctx context.Context) error {
	err := s.cron.AddFunc(s.spec, func() {
		if !s.track() {
			return
		}
		defer s.running.Done()
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid scheduler spec %q: %w", s.spec, err)
	}

	s.logger.Info("Starting alert scan scheduler", "spec", s.spec)
	s.cron.Start()

	<-ctx.Done()
	s.cron.Stop()

	// cron.Stop does not wait for a job that already fired
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.running.Wait()

	s.logger.Info("Stopping alert scan scheduler")
	return nil
}

func (s *Scheduler) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.running.Add(1)
	return true
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	summary, err := s.runner.Run(ctx, domain.TriggerSchedule)
	if err != nil {
		if errors.Is(err, domain.ErrScanInProgress) {
			return
		}
		s.logger.Error("Scheduled alert scan failed", "error", err)
		return
	}
	s.logger.Info("Scheduled alert scan done",
		"run_id", summary.RunID,
		"alerts_created", summary.AlertsCreated,
		"suppliers_inactivated", summary.SuppliersInactivated)
}
