package domain

import (
	"context"
	"time"
)

type AlertType string

const (
	AlertTypeDocument     AlertType = "documento"
	AlertTypeEvaluation   AlertType = "avaliacao"
	AlertTypeInactivation AlertType = "inativacao"
)

type AlertStatus string

const (
	AlertPending  AlertStatus = "Pendente"
	AlertViewed   AlertStatus = "Visualizado"
	AlertResolved AlertStatus = "Resolvido"
)

func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertPending, AlertViewed, AlertResolved:
		return true
	}
	return false
}

// AlertCategory is the severity bucket of an alert.
type AlertCategory string

const (
	CategoryExpired   AlertCategory = "vencido"
	CategoryCritical  AlertCategory = "critico"
	CategoryUrgent    AlertCategory = "urgente"
	CategoryAttention AlertCategory = "atencao"
)

type ExpirationAlert struct {
	ID                        string
	CompanyID                 string
	SupplierID                string
	AlertType                 AlertType
	ReferenceName             string
	ExpiryDate                time.Time
	AlertStatus               AlertStatus
	AlertCategory             AlertCategory
	AutoInactivationTriggered bool
	CreatedAt                 time.Time
}

type AlertFilter struct {
	CompanyID   string
	AlertType   *AlertType
	AlertStatus *AlertStatus
	Limit       int
	Offset      int
}

type AlertRepository interface {
	// HasOpenAlert reports whether a non-resolved alert exists for the triple.
	HasOpenAlert(ctx context.Context, supplierID string, alertType AlertType, referenceName string) (bool, error)
	CreateAlerts(ctx context.Context, alerts []*ExpirationAlert) error
	GetAlerts(ctx context.Context, filter *AlertFilter) ([]*ExpirationAlert, int64, error)
	UpdateAlertStatus(ctx context.Context, alertID string, status AlertStatus) error
}

// ComplianceProcedures are database-side routines owned by the schema migrations.
type ComplianceProcedures interface {
	CheckSupplierMandatoryDocuments(ctx context.Context) error
}
