package repository

import (
	"context"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/mappers"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEvaluationRepository struct {
	db *gorm.DB
}

func NewDefaultEvaluationRepository(db *gorm.DB) *DefaultEvaluationRepository {
	return &DefaultEvaluationRepository{db: db}
}

func (r *DefaultEvaluationRepository) GetLatestEvaluation(ctx context.Context, supplierID string) (*domain.PerformanceEvaluation, error) {
	var evaluationModels []*models.PerformanceEvaluationModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("evaluation_date DESC").
		Limit(1).
		Find(&evaluationModels).Error; err != nil {
		return nil, err
	}
	if len(evaluationModels) == 0 {
		return nil, nil
	}
	return mappers.ToDomainEvaluation(evaluationModels[0]), nil
}

type DefaultSupplyFailureRepository struct {
	db *gorm.DB
}

func NewDefaultSupplyFailureRepository(db *gorm.DB) *DefaultSupplyFailureRepository {
	return &DefaultSupplyFailureRepository{db: db}
}

func (r *DefaultSupplyFailureRepository) FindFailuresSince(ctx context.Context, since time.Time) ([]*domain.SupplyFailure, error) {
	var failureModels []*models.SupplyFailureModel
	if err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("failure_date >= ?", since).
		Order("supplier_id, failure_date").
		Find(&failureModels).Error; err != nil {
		return nil, err
	}

	failures := make([]*domain.SupplyFailure, len(failureModels))
	for i, m := range failureModels {
		failures[i] = mappers.ToDomainSupplyFailure(m)
	}
	return failures, nil
}
