package repository

import (
	"context"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/mappers"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDocumentRepository struct {
	db *gorm.DB
}

func NewDefaultDocumentRepository(db *gorm.DB) *DefaultDocumentRepository {
	return &DefaultDocumentRepository{db: db}
}

func (r *DefaultDocumentRepository) FindApprovedDocumentsWithExpiry(ctx context.Context) ([]*domain.SupplierDocument, error) {
	var documentModels []*models.SupplierDocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("DocumentType").
		Where("status = ?", string(domain.DocumentApproved)).
		Where("expiry_date IS NOT NULL").
		Order("expiry_date").
		Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]*domain.SupplierDocument, len(documentModels))
	for i, m := range documentModels {
		documents[i] = mappers.ToDomainSupplierDocument(m)
	}
	return documents, nil
}
