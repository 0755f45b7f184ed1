package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/metrics"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/alertingtest"
	alertdto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/alert"
	scandto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/scan"
	supplierdto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/supplier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	summary *domain.ScanSummary
	err     error
	trigger domain.ScanTrigger
}

func (s *stubRunner) Run(_ context.Context, trigger domain.ScanTrigger) (*domain.ScanSummary, error) {
	s.trigger = trigger
	return s.summary, s.err
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUsecase(store *alertingtest.Store, runner ScanExecutor) *DefaultComplianceUsecase {
	uc := NewDefaultComplianceUsecase(runner, store, store, store, metrics.NewScanMetrics(prometheus.NewRegistry()))
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestRunScan_DelegatesToRunner(t *testing.T) {
	runner := &stubRunner{summary: &domain.ScanSummary{RunID: "r1", AlertsCreated: 2}}
	uc := newTestUsecase(alertingtest.NewStore(), runner)

	summary, err := uc.RunScan(context.Background(), domain.TriggerHTTP)
	require.NoError(t, err)
	assert.Equal(t, "r1", summary.RunID)
	assert.Equal(t, domain.TriggerHTTP, runner.trigger)
}

func inactiveSupplier(store *alertingtest.Store, blockedUntil time.Time) {
	sup := store.AddSupplier("s1", "c1", domain.SupplierInactive, "Fornecedor 1")
	at := blockedUntil.AddDate(0, 0, -90)
	sup.AutoInactivatedAt = &at
	sup.ReactivationBlockedUntil = &blockedUntil
	sup.AutoInactivationReason = "4 falhas de fornecimento nos últimos 365 dias"
}

func TestReactivateSupplier(t *testing.T) {
	input := &supplierdto.ReactivateSupplierInput{SupplierID: "s1", ReactivatedBy: "analyst@example.com", Reason: "Documentação regularizada"}

	t.Run("blocked during cooldown", func(t *testing.T) {
		store := alertingtest.NewStore()
		inactiveSupplier(store, fixedNow.Add(time.Hour))

		_, err := newTestUsecase(store, &stubRunner{}).ReactivateSupplier(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrReactivationBlocked)
		assert.Equal(t, domain.SupplierInactive, store.Suppliers["s1"].Status)
		assert.Empty(t, store.Reactivations)
	})

	t.Run("allowed once cooldown passed", func(t *testing.T) {
		store := alertingtest.NewStore()
		inactiveSupplier(store, fixedNow)

		out, err := newTestUsecase(store, &stubRunner{}).ReactivateSupplier(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "Ativo", out.Status)
		assert.Equal(t, fixedNow, out.ReactivatedAt)

		sup := store.Suppliers["s1"]
		assert.Equal(t, domain.SupplierActive, sup.Status)
		assert.Nil(t, sup.ReactivationBlockedUntil)
		require.Len(t, store.Reactivations, 1)
		assert.Equal(t, "analyst@example.com", store.Reactivations[0].ReactivatedBy)
		assert.NotEmpty(t, store.Reactivations[0].ID)
	})

	t.Run("active supplier", func(t *testing.T) {
		store := alertingtest.NewStore()
		store.AddSupplier("s1", "c1", domain.SupplierActive, "Fornecedor 1")

		_, err := newTestUsecase(store, &stubRunner{}).ReactivateSupplier(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrSupplierNotInactive)
	})

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := newTestUsecase(alertingtest.NewStore(), &stubRunner{}).ReactivateSupplier(context.Background(), input)
		require.ErrorIs(t, err, domain.ErrSupplierNotFound)
	})

	t.Run("missing reason", func(t *testing.T) {
		_, err := newTestUsecase(alertingtest.NewStore(), &stubRunner{}).ReactivateSupplier(context.Background(),
			&supplierdto.ReactivateSupplierInput{SupplierID: "s1", ReactivatedBy: "x"})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func seedAlerts(t *testing.T, store *alertingtest.Store) {
	t.Helper()
	require.NoError(t, store.CreateAlerts(context.Background(), []*domain.ExpirationAlert{
		{CompanyID: "c1", SupplierID: "s1", AlertType: domain.AlertTypeDocument, ReferenceName: "Alvará", AlertStatus: domain.AlertPending, AlertCategory: domain.CategoryUrgent},
		{CompanyID: "c1", SupplierID: "s1", AlertType: domain.AlertTypeEvaluation, ReferenceName: "Avaliação anual de desempenho", AlertStatus: domain.AlertPending, AlertCategory: domain.CategoryAttention},
		{CompanyID: "c1", SupplierID: "s2", AlertType: domain.AlertTypeDocument, ReferenceName: "ISO 14001", AlertStatus: domain.AlertResolved, AlertCategory: domain.CategoryExpired},
		{CompanyID: "c2", SupplierID: "s3", AlertType: domain.AlertTypeDocument, ReferenceName: "Alvará", AlertStatus: domain.AlertPending, AlertCategory: domain.CategoryCritical},
	}))
}

func TestGetAlerts_Filters(t *testing.T) {
	store := alertingtest.NewStore()
	seedAlerts(t, store)
	uc := newTestUsecase(store, &stubRunner{})

	out, err := uc.GetAlerts(context.Background(), &alertdto.GetAlertsInput{CompanyID: "c1"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.Total)
	assert.Equal(t, defaultAlertsLimit, out.Limit)

	out, err = uc.GetAlerts(context.Background(), &alertdto.GetAlertsInput{CompanyID: "c1", AlertType: "documento", AlertStatus: "Pendente"})
	require.NoError(t, err)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "Alvará", out.Alerts[0].ReferenceName)
	assert.Equal(t, "urgente", out.Alerts[0].AlertCategory)

	_, err = uc.GetAlerts(context.Background(), &alertdto.GetAlertsInput{CompanyID: "c1", AlertType: "outro"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetAlerts(context.Background(), &alertdto.GetAlertsInput{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateAlertStatus(t *testing.T) {
	store := alertingtest.NewStore()
	seedAlerts(t, store)
	uc := newTestUsecase(store, &stubRunner{})
	id := store.Alerts[0].ID

	require.NoError(t, uc.UpdateAlertStatus(context.Background(), &alertdto.UpdateAlertStatusInput{AlertID: id, Status: "Resolvido"}))
	assert.Equal(t, domain.AlertResolved, store.Alerts[0].AlertStatus)

	err := uc.UpdateAlertStatus(context.Background(), &alertdto.UpdateAlertStatusInput{AlertID: id, Status: "Arquivado"})
	require.ErrorIs(t, err, domain.ErrInvalidAlertStatus)

	err = uc.UpdateAlertStatus(context.Background(), &alertdto.UpdateAlertStatusInput{AlertID: "missing", Status: "Visualizado"})
	require.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestGetScanRuns(t *testing.T) {
	store := alertingtest.NewStore()
	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, store.CreateScanRun(context.Background(), &domain.ScanRun{ID: id, Trigger: domain.TriggerSchedule, Success: true}))
	}
	uc := newTestUsecase(store, &stubRunner{})

	out, err := uc.GetScanRuns(context.Background(), &scandto.GetScanRunsInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Runs, 2)
	assert.Equal(t, "r3", out.Runs[0].ID)
	assert.Equal(t, "schedule", out.Runs[0].Trigger)

	_, err = uc.GetScanRuns(context.Background(), &scandto.GetScanRunsInput{Limit: 1000})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
