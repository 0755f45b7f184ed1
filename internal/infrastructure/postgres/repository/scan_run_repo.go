package repository

import (
	"context"
	"fmt"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/mappers"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultScanRunRepository struct {
	db *gorm.DB
}

func NewDefaultScanRunRepository(db *gorm.DB) *DefaultScanRunRepository {
	return &DefaultScanRunRepository{db: db}
}

func (r *DefaultScanRunRepository) CreateScanRun(ctx context.Context, run *domain.ScanRun) error {
	runModel, err := mappers.ToGORMScanRun(run)
	if err != nil {
		return fmt.Errorf("failed to encode scan run details: %w", err)
	}
	return r.db.WithContext(ctx).Create(runModel).Error
}

func (r *DefaultScanRunRepository) GetRecentScanRuns(ctx context.Context, limit int) ([]*domain.ScanRun, error) {
	var runModels []*models.ScanRunModel
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runModels).Error; err != nil {
		return nil, err
	}

	runs := make([]*domain.ScanRun, len(runModels))
	for i, m := range runModels {
		runs[i] = mappers.ToDomainScanRun(m)
	}
	return runs, nil
}

// DefaultProcedureRepository calls database-side routines created by the migrations.
type DefaultProcedureRepository struct {
	db *gorm.DB
}

func NewDefaultProcedureRepository(db *gorm.DB) *DefaultProcedureRepository {
	return &DefaultProcedureRepository{db: db}
}

func (r *DefaultProcedureRepository) CheckSupplierMandatoryDocuments(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("SELECT check_supplier_mandatory_documents()").Error
}
