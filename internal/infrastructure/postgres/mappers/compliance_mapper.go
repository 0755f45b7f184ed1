package mappers

import (
	"encoding/json"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainSupplier(model *models.SupplierModel) *domain.Supplier {
	if model == nil {
		return nil
	}
	return &domain.Supplier{
		ID:                       model.ID,
		CompanyID:                model.CompanyID,
		Status:                   domain.SupplierStatus(model.Status),
		DisplayName:              model.DisplayName,
		AutoInactivationReason:   model.AutoInactivationReason,
		AutoInactivatedAt:        model.AutoInactivatedAt,
		ReactivationBlockedUntil: model.ReactivationBlockedUntil,
		CreatedAt:                model.CreatedAt,
		UpdatedAt:                model.UpdatedAt,
	}
}

func ToDomainDocumentType(model *models.DocumentTypeModel) *domain.DocumentType {
	if model == nil {
		return nil
	}
	return &domain.DocumentType{
		ID:          model.ID,
		Name:        model.Name,
		IsMandatory: model.IsMandatory,
	}
}

func ToDomainSupplierDocument(model *models.SupplierDocumentModel) *domain.SupplierDocument {
	return &domain.SupplierDocument{
		ID:             model.ID,
		SupplierID:     model.SupplierID,
		DocumentTypeID: model.DocumentTypeID,
		ExpiryDate:     model.ExpiryDate,
		Status:         domain.DocumentStatus(model.Status),
		Supplier:       ToDomainSupplier(model.Supplier),
		DocumentType:   ToDomainDocumentType(model.DocumentType),
	}
}

func ToDomainEvaluation(model *models.PerformanceEvaluationModel) *domain.PerformanceEvaluation {
	return &domain.PerformanceEvaluation{
		ID:             model.ID,
		SupplierID:     model.SupplierID,
		EvaluationDate: model.EvaluationDate,
		Score:          model.Score,
	}
}

func ToDomainSupplyFailure(model *models.SupplyFailureModel) *domain.SupplyFailure {
	return &domain.SupplyFailure{
		ID:          model.ID,
		SupplierID:  model.SupplierID,
		CompanyID:   model.CompanyID,
		FailureDate: model.FailureDate,
		Description: model.Description,
		Supplier:    ToDomainSupplier(model.Supplier),
	}
}

func ToGORMAlert(alert *domain.ExpirationAlert) *models.ExpirationAlertModel {
	return &models.ExpirationAlertModel{
		ID:                        alert.ID,
		CompanyID:                 alert.CompanyID,
		SupplierID:                alert.SupplierID,
		AlertType:                 string(alert.AlertType),
		ReferenceName:             alert.ReferenceName,
		ExpiryDate:                alert.ExpiryDate,
		AlertStatus:               string(alert.AlertStatus),
		AlertCategory:             string(alert.AlertCategory),
		AutoInactivationTriggered: alert.AutoInactivationTriggered,
		CreatedAt:                 alert.CreatedAt,
	}
}

func ToDomainAlert(model *models.ExpirationAlertModel) *domain.ExpirationAlert {
	return &domain.ExpirationAlert{
		ID:                        model.ID,
		CompanyID:                 model.CompanyID,
		SupplierID:                model.SupplierID,
		AlertType:                 domain.AlertType(model.AlertType),
		ReferenceName:             model.ReferenceName,
		ExpiryDate:                model.ExpiryDate,
		AlertStatus:               domain.AlertStatus(model.AlertStatus),
		AlertCategory:             domain.AlertCategory(model.AlertCategory),
		AutoInactivationTriggered: model.AutoInactivationTriggered,
		CreatedAt:                 model.CreatedAt,
	}
}

func ToGORMScanRun(run *domain.ScanRun) (*models.ScanRunModel, error) {
	details, err := json.Marshal(run.Details)
	if err != nil {
		return nil, err
	}
	return &models.ScanRunModel{
		ID:                   run.ID,
		Trigger:              string(run.Trigger),
		StartedAt:            run.StartedAt,
		FinishedAt:           run.FinishedAt,
		AlertsCreated:        run.AlertsCreated,
		SuppliersInactivated: run.SuppliersInactivated,
		Success:              run.Success,
		Error:                run.Error,
		Details:              datatypes.JSON(details),
	}, nil
}

func ToDomainScanRun(model *models.ScanRunModel) *domain.ScanRun {
	run := &domain.ScanRun{
		ID:                   model.ID,
		Trigger:              domain.ScanTrigger(model.Trigger),
		StartedAt:            model.StartedAt,
		FinishedAt:           model.FinishedAt,
		AlertsCreated:        model.AlertsCreated,
		SuppliersInactivated: model.SuppliersInactivated,
		Success:              model.Success,
		Error:                model.Error,
	}
	if len(model.Details) > 0 {
		// unreadable details are dropped rather than failing the listing
		_ = json.Unmarshal(model.Details, &run.Details)
	}
	return run
}

func ToGORMReactivation(r *domain.SupplierReactivation) *models.SupplierReactivationModel {
	return &models.SupplierReactivationModel{
		ID:            r.ID,
		SupplierID:    r.SupplierID,
		ReactivatedBy: r.ReactivatedBy,
		Reason:        r.Reason,
		ReactivatedAt: r.ReactivatedAt,
	}
}
