package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/kafka"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/metrics"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/tracing"
	"github.com/jaevor/go-nanoid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ScanRunner wraps one engine run with locking, tracing, metrics, the audit
// record and event publishing.
type ScanRunner struct {
	engine    *AlertEngine
	lock      domain.ScanLock
	runs      domain.ScanRunRepository
	publisher domain.PublisherPort
	metrics   *metrics.ScanMetrics
	tracer    trace.Tracer
	logger    *logger.Logger
	newID     func() string
}

func NewScanRunner(
	engine *AlertEngine,
	lock domain.ScanLock,
	runs domain.ScanRunRepository,
	publisher domain.PublisherPort,
	scanMetrics *metrics.ScanMetrics,
	logger *logger.Logger,
) (*ScanRunner, error) {
	idGenerator, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to create run id generator: %w", err)
	}
	return &ScanRunner{
		engine:    engine,
		lock:      lock,
		runs:      runs,
		publisher: publisher,
		metrics:   scanMetrics,
		tracer:    otel.Tracer(tracing.TracerName),
		logger:    logger,
		newID:     idGenerator,
	}, nil
}

func (r *ScanRunner) Run(ctx context.Context, trigger domain.ScanTrigger) (*domain.ScanSummary, error) {
	release, err := r.lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrScanInProgress) {
			r.logger.Warn("Alert scan skipped, another run holds the lock", "trigger", trigger)
			return nil, err
		}
		return nil, fmt.Errorf("failed to acquire scan lock: %w", err)
	}
	defer func() {
		// release on a fresh context so a cancelled request still frees the lock
		if err := release(context.WithoutCancel(ctx)); err != nil {
			r.logger.Error("Failed to release scan lock", "error", err)
		}
	}()

	runID := r.newID()
	ctx, span := r.tracer.Start(ctx, "alert_engine.run",
		trace.WithAttributes(
			attribute.String("scan.run_id", runID),
			attribute.String("scan.trigger", string(trigger)),
		))
	defer span.End()

	log := r.logger.With("run_id", runID, "trigger", trigger)
	log.Info("Alert scan started")

	started := time.Now()
	report, runErr := r.engine.Run(ctx)
	finished := time.Now()

	run := &domain.ScanRun{
		ID:         runID,
		Trigger:    trigger,
		StartedAt:  started,
		FinishedAt: finished,
		Success:    runErr == nil,
	}
	if report != nil {
		run.AlertsCreated = report.AlertsCreated()
		run.SuppliersInactivated = report.SuppliersInactivated()
		run.Details = reportDetails(report)
	}
	if runErr != nil {
		run.Error = runErr.Error()
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "alert engine run failed")
	}
	span.SetAttributes(
		attribute.Int("scan.alerts_created", run.AlertsCreated),
		attribute.Int("scan.suppliers_inactivated", run.SuppliersInactivated),
	)

	// alerts are stored by now; the audit row and events outlive the caller
	persistCtx := context.WithoutCancel(ctx)
	if err := r.runs.CreateScanRun(persistCtx, run); err != nil {
		log.Error("Failed to save scan run", "error", err)
	}
	r.recordMetrics(trigger, report, run)

	if runErr != nil {
		log.Error("Alert scan failed", "error", runErr)
		return nil, runErr
	}

	r.publishEvents(persistCtx, runID, finished, report, log)

	log.Info("Alert scan finished",
		"alerts_created", run.AlertsCreated,
		"suppliers_inactivated", run.SuppliersInactivated,
		"duration", finished.Sub(started))

	return &domain.ScanSummary{
		RunID:                runID,
		AlertsCreated:        run.AlertsCreated,
		SuppliersInactivated: run.SuppliersInactivated,
		Timestamp:            finished.UTC(),
	}, nil
}

func (r *ScanRunner) recordMetrics(trigger domain.ScanTrigger, report *Report, run *domain.ScanRun) {
	r.metrics.RecordScanRun(string(trigger), run.Success, run.FinishedAt.Sub(run.StartedAt).Seconds(), float64(run.FinishedAt.Unix()))
	if report == nil {
		return
	}
	for _, name := range report.FailedScanners {
		r.metrics.RecordScannerFailure(name)
	}
	for _, res := range report.Results {
		r.metrics.RecordScannerCandidates(res.ScannerName, len(res.Candidates))
	}
	for _, a := range report.Created {
		r.metrics.RecordAlertCreated(string(a.AlertType), string(a.AlertCategory))
	}
	for _, inact := range report.Inactivated {
		r.metrics.RecordSupplierInactivated(inact.Rule)
	}
	for i := 0; i < report.InactivationErrors; i++ {
		r.metrics.RecordInactivationError()
	}
	r.metrics.RecordAlertsDeduplicated(report.Deduplicated)
}

// publishEvents is best effort: the alerts are already stored.
func (r *ScanRunner) publishEvents(ctx context.Context, runID string, at time.Time, report *Report, log *logger.Logger) {
	events := make([]domain.AlertEvent, 0, len(report.Created)+len(report.Inactivated))
	for _, inact := range report.Inactivated {
		events = append(events, domain.AlertEvent{
			Kind:       domain.EventSupplierInactivated,
			RunID:      runID,
			CompanyID:  inact.CompanyID,
			SupplierID: inact.SupplierID,
			Reason:     inact.Reason,
			OccurredAt: at,
		})
	}
	for _, a := range report.Created {
		events = append(events, domain.AlertEvent{
			Kind:          domain.EventAlertCreated,
			RunID:         runID,
			CompanyID:     a.CompanyID,
			SupplierID:    a.SupplierID,
			AlertType:     string(a.AlertType),
			AlertCategory: string(a.AlertCategory),
			ReferenceName: a.ReferenceName,
			OccurredAt:    at,
		})
	}
	if len(events) == 0 {
		return
	}

	msgs, err := kafka.EncodeAlertEvents(events)
	if err != nil {
		log.Error("Failed to encode alert events", "error", err)
		return
	}
	if err := r.publisher.Publish(ctx, msgs...); err != nil {
		log.Error("Failed to publish alert events", "count", len(msgs), "error", err)
	}
}

func reportDetails(report *Report) map[string]interface{} {
	scanners := make([]map[string]interface{}, 0, len(report.Results))
	for _, res := range report.Results {
		scanners = append(scanners, map[string]interface{}{
			"name":          res.ScannerName,
			"scanned":       res.Scanned,
			"candidates":    len(res.Candidates),
			"inactivations": len(res.Inactivations),
			"details":       res.Details,
		})
	}
	details := map[string]interface{}{
		"scanners":            scanners,
		"deduplicated":        report.Deduplicated,
		"inactivation_errors": report.InactivationErrors,
	}
	if len(report.FailedScanners) > 0 {
		details["failed_scanners"] = report.FailedScanners
	}
	if report.ProcedureError != "" {
		details["procedure_error"] = report.ProcedureError
	}
	return details
}
