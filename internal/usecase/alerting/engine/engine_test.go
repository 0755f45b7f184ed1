package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/alertingtest"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/scanners"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var runAt = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestEngine(store *alertingtest.Store) *AlertEngine {
	return newTestEngineWithLogger(store, logger.NewNop())
}

func newTestEngineWithLogger(store *alertingtest.Store, log *logger.Logger) *AlertEngine {
	e := NewAlertEngine(rules.DefaultAlertRules(), store, store, store, log).
		WithClock(func() time.Time { return runAt })
	e.RegisterScanner(scanners.NewDocumentExpiryScanner(store))
	e.RegisterScanner(scanners.NewEvaluationStalenessScanner(store, store))
	e.RegisterScanner(scanners.NewSupplyFailureScanner(store))
	return e
}

func TestRun_EndToEnd(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddDocumentType("t1", "Licença Ambiental", true)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 2, 13), domain.DocumentApproved) // 30 days overdue
	store.AddEvaluation("s1", alertingtest.Date(2025, 4, 19))                                // 330 days ago

	report, err := newTestEngine(store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.AlertsCreated())
	assert.Equal(t, 1, report.SuppliersInactivated())
	assert.Empty(t, report.FailedScanners)

	doc := store.AlertsOfType(domain.AlertTypeDocument)
	require.Len(t, doc, 1)
	assert.Equal(t, domain.CategoryExpired, doc[0].AlertCategory)
	assert.False(t, doc[0].AutoInactivationTriggered)

	eval := store.AlertsOfType(domain.AlertTypeEvaluation)
	require.Len(t, eval, 1)
	assert.Equal(t, alertingtest.Date(2026, 4, 19), eval[0].ExpiryDate)

	inact := store.AlertsOfType(domain.AlertTypeInactivation)
	require.Len(t, inact, 1)
	assert.True(t, inact[0].AutoInactivationTriggered)
	assert.Equal(t, domain.AlertPending, inact[0].AlertStatus)
	assert.Equal(t, "c1", inact[0].CompanyID)

	sup := store.Suppliers["s1"]
	assert.Equal(t, domain.SupplierInactive, sup.Status)
	assert.Contains(t, sup.AutoInactivationReason, "Licença Ambiental")
	require.NotNil(t, sup.AutoInactivatedAt)
	assert.Equal(t, runAt, *sup.AutoInactivatedAt)
	require.NotNil(t, sup.ReactivationBlockedUntil)
	assert.Equal(t, runAt.AddDate(0, 0, 90), *sup.ReactivationBlockedUntil)

	assert.Equal(t, 1, store.ProcedureCalls)
}

func TestRun_RepeatedRunsDeduplicateDocumentsOnly(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddDocumentType("t1", "Certificado ISO 14001", false)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 3, 20), domain.DocumentApproved)
	store.AddEvaluation("s1", alertingtest.Date(2025, 3, 1))

	e := newTestEngine(store)

	first, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.AlertsCreated())

	second, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.AlertsCreated())
	assert.Equal(t, 1, second.Deduplicated)

	assert.Len(t, store.AlertsOfType(domain.AlertTypeDocument), 1)
	assert.Len(t, store.AlertsOfType(domain.AlertTypeEvaluation), 2)
}

func TestRun_ResolvedAlertDoesNotBlockNewOne(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddDocumentType("t1", "Alvará", false)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 3, 10), domain.DocumentApproved)

	e := newTestEngine(store)
	_, err := e.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.UpdateAlertStatus(context.Background(), store.Alerts[0].ID, domain.AlertResolved))

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.AlertsCreated())
	assert.Len(t, store.AlertsOfType(domain.AlertTypeDocument), 2)
}

func TestRun_DuplicateDocumentsInOneBatch(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddDocumentType("t1", "Alvará", false)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 3, 18), domain.DocumentApproved)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 3, 25), domain.DocumentApproved)

	report, err := newTestEngine(store).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.AlertsCreated())
	assert.Equal(t, 1, report.Deduplicated)
}

func TestRun_FailingScannerIsSkipped(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.DocumentsErr = errors.New("relation does not exist")
	for i := 0; i < 5; i++ {
		store.AddFailure("s1", runAt.AddDate(0, 0, -i))
	}

	report, err := newTestEngine(store).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"document_expiry"}, report.FailedScanners)
	assert.Equal(t, 1, report.SuppliersInactivated())
	assert.Equal(t, domain.SupplierInactive, store.Suppliers["s1"].Status)
}

func TestRun_InactivationErrorContinues(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "One")
	store.AddSupplier("s2", "c1", domain.SupplierActive, "Two")
	for i := 0; i < 4; i++ {
		store.AddFailure("s1", runAt.AddDate(0, 0, -i))
		store.AddFailure("s2", runAt.AddDate(0, 0, -i))
	}
	store.InactivateErr["s1"] = errors.New("deadlock detected")

	report, err := newTestEngine(store).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuppliersInactivated())
	assert.Equal(t, 1, report.InactivationErrors)
	assert.Equal(t, domain.SupplierActive, store.Suppliers["s1"].Status)
	assert.Equal(t, domain.SupplierInactive, store.Suppliers["s2"].Status)

	inact := store.AlertsOfType(domain.AlertTypeInactivation)
	require.Len(t, inact, 1)
	assert.Equal(t, "s2", inact[0].SupplierID)
}

func TestRun_InsertErrorFailsRun(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddDocumentType("t1", "Alvará", false)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 3, 10), domain.DocumentApproved)
	store.InsertErr = errors.New("insert failed")

	_, err := newTestEngine(store).Run(context.Background())
	require.ErrorIs(t, err, store.InsertErr)
}

func TestRun_ProcedureErrorIsOnlyLogged(t *testing.T) {
	store := alertingtest.NewStore()
	store.ProcedureErr = errors.New("function does not exist")

	report, err := newTestEngine(store).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "function does not exist", report.ProcedureError)
	assert.Equal(t, 0, report.AlertsCreated())
}

func TestRun_SupplierQueuedByBothRules(t *testing.T) {
	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddDocumentType("t1", "Licença Ambiental", true)
	store.AddDocument("s1", "t1", alertingtest.DatePtr(2026, 2, 12), domain.DocumentApproved) // 31 days overdue
	for i := 0; i < 4; i++ {
		store.AddFailure("s1", runAt.AddDate(0, 0, -10*i))
	}

	report, err := newTestEngine(store).Run(context.Background())
	require.NoError(t, err)

	// each queued inactivation is applied and counted
	assert.Equal(t, 2, report.SuppliersInactivated())
	assert.Equal(t, 3, report.AlertsCreated())
	assert.Len(t, store.AlertsOfType(domain.AlertTypeDocument), 1)

	inact := store.AlertsOfType(domain.AlertTypeInactivation)
	require.Len(t, inact, 2)
	for _, a := range inact {
		assert.Equal(t, "s1", a.SupplierID)
		assert.True(t, a.AutoInactivationTriggered)
	}

	sup := store.Suppliers["s1"]
	assert.Equal(t, domain.SupplierInactive, sup.Status)
	assert.Equal(t, "4 falhas de fornecimento nos últimos 365 dias", sup.AutoInactivationReason)
}

func TestRun_EvaluationLookupErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	store := alertingtest.NewStore()
	store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")
	store.AddSupplier("s2", "c1", domain.SupplierActive, "Fornecedor 2")
	store.AddEvaluation("s2", alertingtest.Date(2025, 4, 1))
	store.EvaluationErrFor["s1"] = errors.New("statement timeout")

	report, err := newTestEngineWithLogger(store, log).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.FailedScanners)
	assert.Equal(t, 1, report.AlertsCreated())

	failed := logs.FilterMessage("Alert scanner lookup failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.Equal(t, "evaluation_staleness", fields["scanner"])
	assert.Equal(t, "s1", fields["supplier_id"])
	assert.Contains(t, fields["error"], "statement timeout")
}
