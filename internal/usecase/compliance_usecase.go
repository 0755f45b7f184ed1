package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/metrics"
	alertdto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/alert"
	scandto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/scan"
	supplierdto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/supplier"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultAlertsLimit   = 50
	defaultScanRunsLimit = 20
)

type ComplianceUsecase interface {
	RunScan(ctx context.Context, trigger domain.ScanTrigger) (*domain.ScanSummary, error)
	GetAlerts(ctx context.Context, input *alertdto.GetAlertsInput) (*alertdto.GetAlertsOutput, error)
	UpdateAlertStatus(ctx context.Context, input *alertdto.UpdateAlertStatusInput) error
	ReactivateSupplier(ctx context.Context, input *supplierdto.ReactivateSupplierInput) (*supplierdto.ReactivateSupplierOutput, error)
	GetScanRuns(ctx context.Context, input *scandto.GetScanRunsInput) (*scandto.GetScanRunsOutput, error)
}

// ScanExecutor runs one alert engine scan.
type ScanExecutor interface {
	Run(ctx context.Context, trigger domain.ScanTrigger) (*domain.ScanSummary, error)
}

type DefaultComplianceUsecase struct {
	runner       ScanExecutor
	supplierRepo domain.SupplierRepository
	alertRepo    domain.AlertRepository
	scanRunRepo  domain.ScanRunRepository
	metrics      *metrics.ScanMetrics
	validate     *validator.Validate
	now          func() time.Time
}

func NewDefaultComplianceUsecase(
	runner ScanExecutor,
	supplierRepo domain.SupplierRepository,
	alertRepo domain.AlertRepository,
	scanRunRepo domain.ScanRunRepository,
	scanMetrics *metrics.ScanMetrics,
) *DefaultComplianceUsecase {
	return &DefaultComplianceUsecase{
		runner:       runner,
		supplierRepo: supplierRepo,
		alertRepo:    alertRepo,
		scanRunRepo:  scanRunRepo,
		metrics:      scanMetrics,
		validate:     validator.New(),
		now:          time.Now,
	}
}

func (uc *DefaultComplianceUsecase) RunScan(ctx context.Context, trigger domain.ScanTrigger) (*domain.ScanSummary, error) {
	return uc.runner.Run(ctx, trigger)
}

func (uc *DefaultComplianceUsecase) GetAlerts(ctx context.Context, input *alertdto.GetAlertsInput) (*alertdto.GetAlertsOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	filter := &domain.AlertFilter{
		CompanyID: input.CompanyID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultAlertsLimit
	}
	if input.AlertType != "" {
		alertType := domain.AlertType(input.AlertType)
		filter.AlertType = &alertType
	}
	if input.AlertStatus != "" {
		status := domain.AlertStatus(input.AlertStatus)
		filter.AlertStatus = &status
	}

	alerts, total, err := uc.alertRepo.GetAlerts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}

	out := make([]*alertdto.Alert, len(alerts))
	for i, a := range alerts {
		out[i] = &alertdto.Alert{
			ID:                        a.ID,
			CompanyID:                 a.CompanyID,
			SupplierID:                a.SupplierID,
			AlertType:                 string(a.AlertType),
			ReferenceName:             a.ReferenceName,
			ExpiryDate:                a.ExpiryDate,
			AlertStatus:               string(a.AlertStatus),
			AlertCategory:             string(a.AlertCategory),
			AutoInactivationTriggered: a.AutoInactivationTriggered,
			CreatedAt:                 a.CreatedAt,
		}
	}

	return &alertdto.GetAlertsOutput{
		Alerts: out,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (uc *DefaultComplianceUsecase) UpdateAlertStatus(ctx context.Context, input *alertdto.UpdateAlertStatusInput) error {
	if err := uc.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	status := domain.AlertStatus(input.Status)
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAlertStatus, input.Status)
	}
	return uc.alertRepo.UpdateAlertStatus(ctx, input.AlertID, status)
}

// ReactivateSupplier brings an inactive supplier back once its cooldown has passed.
func (uc *DefaultComplianceUsecase) ReactivateSupplier(ctx context.Context, input *supplierdto.ReactivateSupplierInput) (*supplierdto.ReactivateSupplierOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	supplier, err := uc.supplierRepo.GetSupplierByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier.Status != domain.SupplierInactive {
		uc.metrics.RecordReactivation("rejected")
		return nil, fmt.Errorf("%w: status is %s", domain.ErrSupplierNotInactive, supplier.Status)
	}

	now := uc.now()
	if supplier.ReactivationBlockedUntil != nil && now.Before(*supplier.ReactivationBlockedUntil) {
		uc.metrics.RecordReactivation("blocked")
		return nil, fmt.Errorf("%w until %s", domain.ErrReactivationBlocked, supplier.ReactivationBlockedUntil.UTC().Format(time.RFC3339))
	}

	reactivation := &domain.SupplierReactivation{
		ID:            uuid.New().String(),
		SupplierID:    supplier.ID,
		ReactivatedBy: input.ReactivatedBy,
		Reason:        input.Reason,
		ReactivatedAt: now,
	}
	if err := uc.supplierRepo.ReactivateSupplier(ctx, reactivation); err != nil {
		if errors.Is(err, domain.ErrSupplierNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to reactivate supplier: %w", err)
	}
	uc.metrics.RecordReactivation("success")

	return &supplierdto.ReactivateSupplierOutput{
		SupplierID:    supplier.ID,
		Status:        string(domain.SupplierActive),
		ReactivatedAt: now,
	}, nil
}

func (uc *DefaultComplianceUsecase) GetScanRuns(ctx context.Context, input *scandto.GetScanRunsInput) (*scandto.GetScanRunsOutput, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	limit := input.Limit
	if limit == 0 {
		limit = defaultScanRunsLimit
	}

	runs, err := uc.scanRunRepo.GetRecentScanRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan runs: %w", err)
	}

	out := make([]*scandto.ScanRun, len(runs))
	for i, r := range runs {
		out[i] = &scandto.ScanRun{
			ID:                   r.ID,
			Trigger:              string(r.Trigger),
			StartedAt:            r.StartedAt,
			FinishedAt:           r.FinishedAt,
			AlertsCreated:        r.AlertsCreated,
			SuppliersInactivated: r.SuppliersInactivated,
			Success:              r.Success,
			Error:                r.Error,
			Details:              r.Details,
		}
	}
	return &scandto.GetScanRunsOutput{Runs: out}, nil
}
