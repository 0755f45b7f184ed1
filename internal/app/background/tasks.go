package background

import (
	"context"

	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/engine"
)

type BackgroundTasks struct {
	Scheduler *engine.Scheduler
	Enabled   bool
	logger    *logger.Logger
}

func NewBackgroundTasks(scheduler *engine.Scheduler, enabled bool, logger *logger.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		Scheduler: scheduler,
		Enabled:   enabled,
		logger:    logger,
	}
}

// StartAll launches the background jobs. They stop when ctx is cancelled.
// The returned channel is closed once every job has returned.
func (bt *BackgroundTasks) StartAll(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if !bt.Enabled {
		bt.logger.Info("Alert scan scheduler disabled")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		if err := bt.Scheduler.Start(ctx); err != nil {
			bt.logger.Error("Alert scan scheduler failed", "error", err)
		}
	}()
	return done
}
