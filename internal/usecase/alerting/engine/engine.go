package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/scanners"
)

// AlertEngine runs the registered scanners in order and persists what they find.
type AlertEngine struct {
	scanners   []scanners.Scanner
	rules      *rules.AlertRules
	suppliers  domain.SupplierRepository
	alerts     domain.AlertRepository
	procedures domain.ComplianceProcedures
	logger     *logger.Logger
	now        func() time.Time
}

func NewAlertEngine(
	alertRules *rules.AlertRules,
	suppliers domain.SupplierRepository,
	alerts domain.AlertRepository,
	procedures domain.ComplianceProcedures,
	logger *logger.Logger,
) *AlertEngine {
	return &AlertEngine{
		rules:      alertRules,
		suppliers:  suppliers,
		alerts:     alerts,
		procedures: procedures,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Tests pin the run date with it.
func (e *AlertEngine) WithClock(now func() time.Time) *AlertEngine {
	e.now = now
	return e
}

// RegisterScanner appends a scanner. Scanners run in registration order.
func (e *AlertEngine) RegisterScanner(scanner scanners.Scanner) {
	e.scanners = append(e.scanners, scanner)
	e.logger.Info("Registered alert scanner", "name", scanner.Name())
}

// Report is the outcome of one engine run.
type Report struct {
	StartedAt          time.Time                 `json:"started_at"`
	Today              time.Time                 `json:"today"`
	Results            []*scanners.ScanResult    `json:"results"`
	FailedScanners     []string                  `json:"failed_scanners,omitempty"`
	Deduplicated       int                       `json:"deduplicated"`
	InactivationErrors int                       `json:"inactivation_errors"`
	ProcedureError     string                    `json:"procedure_error,omitempty"`
	Created            []*domain.ExpirationAlert `json:"-"`
	Inactivated        []*domain.Inactivation    `json:"-"`
}

func (r *Report) AlertsCreated() int {
	return len(r.Created)
}

func (r *Report) SuppliersInactivated() int {
	return len(r.Inactivated)
}

// Run executes a full scan. A failing scanner is logged and skipped; only a
// failed alert insert makes the run itself fail.
func (e *AlertEngine) Run(ctx context.Context) (*Report, error) {
	now := e.now()
	report := &Report{
		StartedAt: now,
		Today:     rules.StartOfDay(now),
	}

	var candidates []*domain.ExpirationAlert
	var inactivations []*domain.Inactivation

	for _, scanner := range e.scanners {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := scanner.Scan(ctx, report.Today, e.rules)
		if err != nil {
			e.logger.Error("Alert scanner failed", "scanner", scanner.Name(), "error", err)
			report.FailedScanners = append(report.FailedScanners, scanner.Name())
			continue
		}

		for _, rowErr := range result.RowErrors {
			e.logger.Error("Alert scanner lookup failed",
				"scanner", scanner.Name(),
				"supplier_id", rowErr.SupplierID,
				"error", rowErr.Err)
		}

		e.logger.Info("Alert scanner finished",
			"scanner", scanner.Name(),
			"scanned", result.Scanned,
			"candidates", len(result.Candidates),
			"inactivations", len(result.Inactivations),
			"row_errors", len(result.RowErrors))

		report.Results = append(report.Results, result)
		candidates = append(candidates, result.Candidates...)
		inactivations = append(inactivations, result.Inactivations...)
	}

	inactivationAlerts := e.applyInactivations(ctx, now, report.Today, inactivations, report)

	toInsert, deduplicated := e.deduplicate(ctx, candidates)
	report.Deduplicated = deduplicated
	toInsert = append(toInsert, inactivationAlerts...)

	if len(toInsert) > 0 {
		for _, a := range toInsert {
			a.CreatedAt = now
		}
		if err := e.alerts.CreateAlerts(ctx, toInsert); err != nil {
			return report, fmt.Errorf("failed to insert alerts: %w", err)
		}
		report.Created = toInsert
	}

	if err := e.procedures.CheckSupplierMandatoryDocuments(ctx); err != nil {
		e.logger.Error("check_supplier_mandatory_documents failed", "error", err)
		report.ProcedureError = err.Error()
	}

	e.logger.Info("Alert engine run finished",
		"alerts_created", report.AlertsCreated(),
		"suppliers_inactivated", report.SuppliersInactivated(),
		"deduplicated", report.Deduplicated,
		"failed_scanners", report.FailedScanners)

	return report, nil
}
