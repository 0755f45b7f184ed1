package repository

import (
	"context"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/mappers"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultAlertRepository struct {
	db *gorm.DB
}

func NewDefaultAlertRepository(db *gorm.DB) *DefaultAlertRepository {
	return &DefaultAlertRepository{db: db}
}

func (r *DefaultAlertRepository) HasOpenAlert(ctx context.Context, supplierID string, alertType domain.AlertType, referenceName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExpirationAlertModel{}).
		Where("supplier_id = ? AND alert_type = ? AND reference_name = ?", supplierID, string(alertType), referenceName).
		Where("alert_status <> ?", string(domain.AlertResolved)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAlerts inserts all alerts with a single statement.
func (r *DefaultAlertRepository) CreateAlerts(ctx context.Context, alerts []*domain.ExpirationAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	alertModels := make([]*models.ExpirationAlertModel, len(alerts))
	for i, a := range alerts {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now()
		}
		alertModels[i] = mappers.ToGORMAlert(a)
	}
	return r.db.WithContext(ctx).Create(&alertModels).Error
}

func (r *DefaultAlertRepository) GetAlerts(ctx context.Context, filter *domain.AlertFilter) ([]*domain.ExpirationAlert, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ExpirationAlertModel{}).
		Where("company_id = ?", filter.CompanyID)
	if filter.AlertType != nil {
		query = query.Where("alert_type = ?", string(*filter.AlertType))
	}
	if filter.AlertStatus != nil {
		query = query.Where("alert_status = ?", string(*filter.AlertStatus))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := query.Order("created_at DESC, id").Offset(filter.Offset)
	if filter.Limit > 0 {
		page = page.Limit(filter.Limit)
	}

	var alertModels []*models.ExpirationAlertModel
	if err := page.Find(&alertModels).Error; err != nil {
		return nil, 0, err
	}

	alerts := make([]*domain.ExpirationAlert, len(alertModels))
	for i, m := range alertModels {
		alerts[i] = mappers.ToDomainAlert(m)
	}
	return alerts, total, nil
}

func (r *DefaultAlertRepository) UpdateAlertStatus(ctx context.Context, alertID string, status domain.AlertStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ExpirationAlertModel{}).
		Where("id = ?", alertID).
		Updates(map[string]interface{}{
			"alert_status": string(status),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}
