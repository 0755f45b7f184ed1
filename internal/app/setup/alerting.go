package setup

import (
	"fmt"

	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/engine"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/scanners"
)

type AlertingSystem struct {
	Engine    *engine.AlertEngine
	Runner    *engine.ScanRunner
	Scheduler *engine.Scheduler
}

func InitializeAlerting(deps *Dependencies) (*AlertingSystem, error) {
	alertRules := rules.FromConfig(deps.Config.Rules)
	if err := alertRules.Validate(); err != nil {
		return nil, fmt.Errorf("alert rules: %w", err)
	}

	repos := deps.Repositories
	alertEngine := engine.NewAlertEngine(
		alertRules,
		repos.SupplierRepo,
		repos.AlertRepo,
		repos.Procedures,
		deps.Logger,
	)

	// Order matters: inactivations from both the document and failure rules
	// are applied once all scanners have run.
	alertEngine.RegisterScanner(scanners.NewDocumentExpiryScanner(repos.DocumentRepo))
	alertEngine.RegisterScanner(scanners.NewEvaluationStalenessScanner(repos.SupplierRepo, repos.EvaluationRepo))
	alertEngine.RegisterScanner(scanners.NewSupplyFailureScanner(repos.FailureRepo))

	runner, err := engine.NewScanRunner(
		alertEngine,
		deps.Lock,
		repos.ScanRunRepo,
		deps.Publisher,
		deps.Metrics,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("scan runner: %w", err)
	}

	deps.Logger.Info("Alert engine initialized",
		"scanners", 3,
		"critical_within_days", alertRules.CriticalWithinDays,
		"max_failures", alertRules.MaxFailures,
	)

	return &AlertingSystem{
		Engine:    alertEngine,
		Runner:    runner,
		Scheduler: engine.NewScheduler(runner, deps.Config.Scheduler.Spec, deps.Logger),
	}, nil
}
