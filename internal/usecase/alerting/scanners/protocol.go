package scanners

import (
	"context"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
)

// Scanner inspects one slice of supplier data and proposes alerts and inactivations.
// Scanners never write; the engine persists their results.
type Scanner interface {
	Name() string
	GetDescription() string
	Scan(ctx context.Context, today time.Time, rules *rules.AlertRules) (*ScanResult, error)
}

type ScanResult struct {
	ScannerName   string                    `json:"scanner_name"`
	Scanned       int                       `json:"scanned"`
	Candidates    []*domain.ExpirationAlert `json:"-"`
	Inactivations []*domain.Inactivation    `json:"-"`
	Details       map[string]interface{}    `json:"details,omitempty"`

	// RowErrors are per-supplier lookups that failed without aborting the scan.
	RowErrors []RowError `json:"-"`
}

type RowError struct {
	SupplierID string
	Err        error
}

func newAlert(companyID, supplierID string, alertType domain.AlertType, reference string, expiry time.Time, category domain.AlertCategory) *domain.ExpirationAlert {
	return &domain.ExpirationAlert{
		CompanyID:     companyID,
		SupplierID:    supplierID,
		AlertType:     alertType,
		ReferenceName: reference,
		ExpiryDate:    expiry,
		AlertStatus:   domain.AlertPending,
		AlertCategory: category,
	}
}
