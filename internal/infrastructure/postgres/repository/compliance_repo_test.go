package repository

import (
	"context"
	"testing"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.SupplierModel{},
		&models.SupplierReactivationModel{},
		&models.DocumentTypeModel{},
		&models.SupplierDocumentModel{},
		&models.PerformanceEvaluationModel{},
		&models.SupplyFailureModel{},
		&models.ExpirationAlertModel{},
		&models.ScanRunModel{},
	))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func seedSupplier(t *testing.T, db *gorm.DB, id, status string) {
	t.Helper()
	require.NoError(t, db.Create(&models.SupplierModel{ID: id, CompanyID: "c1", Status: status, DisplayName: "Fornecedor " + id}).Error)
}

func TestSupplierRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewDefaultSupplierRepository(db)
	ctx := context.Background()

	seedSupplier(t, db, "s2", "Ativo")
	seedSupplier(t, db, "s1", "Ativo")
	seedSupplier(t, db, "s3", "Suspenso")

	active, err := repo.FindActiveSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "s1", active[0].ID)

	_, err = repo.GetSupplierByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrSupplierNotFound)

	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InactivateSupplier(ctx, "s1", domain.InactivationUpdate{
		Reason:        "4 falhas de fornecimento nos últimos 365 dias",
		InactivatedAt: at,
		BlockedUntil:  at.AddDate(0, 0, 90),
	}))

	sup, err := repo.GetSupplierByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.SupplierInactive, sup.Status)
	assert.Equal(t, "4 falhas de fornecimento nos últimos 365 dias", sup.AutoInactivationReason)
	require.NotNil(t, sup.ReactivationBlockedUntil)
	assert.True(t, sup.ReactivationBlockedUntil.Equal(at.AddDate(0, 0, 90)))

	require.ErrorIs(t, repo.InactivateSupplier(ctx, "missing", domain.InactivationUpdate{}), domain.ErrSupplierNotFound)

	require.NoError(t, repo.ReactivateSupplier(ctx, &domain.SupplierReactivation{
		ID: "r1", SupplierID: "s1", ReactivatedBy: "analyst", Reason: "ok", ReactivatedAt: at.AddDate(0, 0, 91),
	}))
	sup, err = repo.GetSupplierByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.SupplierActive, sup.Status)
	assert.Nil(t, sup.ReactivationBlockedUntil)
	assert.Nil(t, sup.AutoInactivatedAt)

	var logs int64
	require.NoError(t, db.Model(&models.SupplierReactivationModel{}).Count(&logs).Error)
	assert.EqualValues(t, 1, logs)
}

func TestDocumentRepository_FindApprovedDocumentsWithExpiry(t *testing.T) {
	db := newTestDB(t)
	seedSupplier(t, db, "s1", "Ativo")
	require.NoError(t, db.Create(&models.DocumentTypeModel{ID: "t1", Name: "Licença Ambiental", IsMandatory: true}).Error)
	require.NoError(t, db.Create([]*models.SupplierDocumentModel{
		{ID: "d1", SupplierID: "s1", DocumentTypeID: "t1", ExpiryDate: ptr(day(2026, 4, 1)), Status: "Aprovado"},
		{ID: "d2", SupplierID: "s1", DocumentTypeID: "t1", ExpiryDate: nil, Status: "Aprovado"},
		{ID: "d3", SupplierID: "s1", DocumentTypeID: "t1", ExpiryDate: ptr(day(2026, 4, 1)), Status: "Pendente"},
		{ID: "d4", SupplierID: "s1", DocumentTypeID: "gone", ExpiryDate: ptr(day(2026, 3, 1)), Status: "Aprovado"},
	}).Error)

	docs, err := NewDefaultDocumentRepository(db).FindApprovedDocumentsWithExpiry(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "d4", docs[0].ID)
	assert.Nil(t, docs[0].DocumentType)

	assert.Equal(t, "d1", docs[1].ID)
	require.NotNil(t, docs[1].DocumentType)
	assert.True(t, docs[1].DocumentType.IsMandatory)
	require.NotNil(t, docs[1].Supplier)
	assert.Equal(t, "c1", docs[1].Supplier.CompanyID)
}

func TestEvaluationRepository_GetLatestEvaluation(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create([]*models.PerformanceEvaluationModel{
		{ID: "e1", SupplierID: "s1", EvaluationDate: day(2024, 5, 1)},
		{ID: "e2", SupplierID: "s1", EvaluationDate: day(2025, 5, 1)},
		{ID: "e3", SupplierID: "s2", EvaluationDate: day(2026, 1, 1)},
	}).Error)
	repo := NewDefaultEvaluationRepository(db)

	latest, err := repo.GetLatestEvaluation(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "e2", latest.ID)

	none, err := repo.GetLatestEvaluation(context.Background(), "never")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSupplyFailureRepository_FindFailuresSince(t *testing.T) {
	db := newTestDB(t)
	seedSupplier(t, db, "s1", "Ativo")
	require.NoError(t, db.Create([]*models.SupplyFailureModel{
		{ID: "f1", SupplierID: "s1", CompanyID: "c1", FailureDate: day(2025, 3, 15)},
		{ID: "f2", SupplierID: "s1", CompanyID: "c1", FailureDate: day(2025, 3, 14)},
		{ID: "f3", SupplierID: "s1", CompanyID: "c1", FailureDate: day(2026, 1, 10)},
	}).Error)

	failures, err := NewDefaultSupplyFailureRepository(db).FindFailuresSince(context.Background(), day(2025, 3, 15))
	require.NoError(t, err)
	require.Len(t, failures, 2)
	require.NotNil(t, failures[0].Supplier)
	assert.Equal(t, domain.SupplierActive, failures[0].Supplier.Status)
}

func TestAlertRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewDefaultAlertRepository(db)
	ctx := context.Background()

	alerts := []*domain.ExpirationAlert{
		{CompanyID: "c1", SupplierID: "s1", AlertType: domain.AlertTypeDocument, ReferenceName: "Alvará", ExpiryDate: day(2026, 3, 20), AlertStatus: domain.AlertPending, AlertCategory: domain.CategoryCritical},
		{CompanyID: "c1", SupplierID: "s1", AlertType: domain.AlertTypeInactivation, ReferenceName: "Inativação automática", ExpiryDate: day(2026, 3, 15), AlertStatus: domain.AlertPending, AlertCategory: domain.CategoryCritical, AutoInactivationTriggered: true},
		{CompanyID: "c2", SupplierID: "s9", AlertType: domain.AlertTypeDocument, ReferenceName: "Alvará", ExpiryDate: day(2026, 3, 20), AlertStatus: domain.AlertPending, AlertCategory: domain.CategoryCritical},
	}
	require.NoError(t, repo.CreateAlerts(ctx, alerts))
	for _, a := range alerts {
		assert.NotEmpty(t, a.ID)
	}

	open, err := repo.HasOpenAlert(ctx, "s1", domain.AlertTypeDocument, "Alvará")
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, repo.UpdateAlertStatus(ctx, alerts[0].ID, domain.AlertResolved))
	open, err = repo.HasOpenAlert(ctx, "s1", domain.AlertTypeDocument, "Alvará")
	require.NoError(t, err)
	assert.False(t, open)

	require.ErrorIs(t, repo.UpdateAlertStatus(ctx, "missing", domain.AlertViewed), domain.ErrAlertNotFound)

	got, total, err := repo.GetAlerts(ctx, &domain.AlertFilter{CompanyID: "c1", Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 1)

	inactivation := domain.AlertTypeInactivation
	got, total, err = repo.GetAlerts(ctx, &domain.AlertFilter{CompanyID: "c1", AlertType: &inactivation})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.True(t, got[0].AutoInactivationTriggered)

	require.NoError(t, repo.CreateAlerts(ctx, nil))
}

func TestScanRunRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewDefaultScanRunRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, repo.CreateScanRun(ctx, &domain.ScanRun{
			ID:            id,
			Trigger:       domain.TriggerSchedule,
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			FinishedAt:    base.Add(time.Duration(i)*time.Hour + time.Minute),
			AlertsCreated: i,
			Success:       true,
			Details:       map[string]interface{}{"deduplicated": i},
		}))
	}

	runs, err := repo.GetRecentScanRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, domain.TriggerSchedule, runs[0].Trigger)
	assert.EqualValues(t, 2, runs[0].Details["deduplicated"])
}
