package repository

import (
	"context"
	"errors"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/mappers"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSupplierRepository struct {
	db *gorm.DB
}

func NewDefaultSupplierRepository(db *gorm.DB) *DefaultSupplierRepository {
	return &DefaultSupplierRepository{db: db}
}

func (r *DefaultSupplierRepository) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	var supplierModel models.SupplierModel
	if err := r.db.WithContext(ctx).Where("id = ?", supplierID).First(&supplierModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSupplier(&supplierModel), nil
}

func (r *DefaultSupplierRepository) FindActiveSuppliers(ctx context.Context) ([]*domain.Supplier, error) {
	var supplierModels []*models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.SupplierActive)).
		Order("id").
		Find(&supplierModels).Error; err != nil {
		return nil, err
	}

	suppliers := make([]*domain.Supplier, len(supplierModels))
	for i, m := range supplierModels {
		suppliers[i] = mappers.ToDomainSupplier(m)
	}
	return suppliers, nil
}

func (r *DefaultSupplierRepository) InactivateSupplier(ctx context.Context, supplierID string, update domain.InactivationUpdate) error {
	result := r.db.WithContext(ctx).
		Model(&models.SupplierModel{}).
		Where("id = ?", supplierID).
		Updates(map[string]interface{}{
			"status":                     string(domain.SupplierInactive),
			"auto_inactivation_reason":   update.Reason,
			"auto_inactivated_at":        update.InactivatedAt,
			"reactivation_blocked_until": update.BlockedUntil,
			"updated_at":                 time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

// ReactivateSupplier flips the status back and writes the audit row in one transaction.
func (r *DefaultSupplierRepository) ReactivateSupplier(ctx context.Context, reactivation *domain.SupplierReactivation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SupplierModel{}).
			Where("id = ?", reactivation.SupplierID).
			Updates(map[string]interface{}{
				"status":                     string(domain.SupplierActive),
				"auto_inactivation_reason":   "",
				"auto_inactivated_at":        nil,
				"reactivation_blocked_until": nil,
				"updated_at":                 reactivation.ReactivatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrSupplierNotFound
		}
		return tx.Create(mappers.ToGORMReactivation(reactivation)).Error
	})
}
