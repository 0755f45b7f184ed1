package domain

import (
	"context"
	"time"
)

type SupplierStatus string

const (
	SupplierActive    SupplierStatus = "Ativo"
	SupplierInactive  SupplierStatus = "Inativo"
	SupplierSuspended SupplierStatus = "Suspenso"
)

type Supplier struct {
	ID          string
	CompanyID   string
	Status      SupplierStatus
	DisplayName string

	// Auto-inactivation details, set once by the alert engine
	AutoInactivationReason   string
	AutoInactivatedAt        *time.Time
	ReactivationBlockedUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Supplier) IsActive() bool {
	return s != nil && s.Status == SupplierActive
}

// Inactivation is a supplier queued for automatic inactivation by one of the rules.
type Inactivation struct {
	SupplierID  string
	CompanyID   string
	DisplayName string
	Rule        string
	Reason      string
}

type InactivationUpdate struct {
	Reason        string
	InactivatedAt time.Time
	BlockedUntil  time.Time
}

type SupplierReactivation struct {
	ID            string
	SupplierID    string
	ReactivatedBy string
	Reason        string
	ReactivatedAt time.Time
}

type SupplierRepository interface {
	GetSupplierByID(ctx context.Context, supplierID string) (*Supplier, error)
	FindActiveSuppliers(ctx context.Context) ([]*Supplier, error)
	InactivateSupplier(ctx context.Context, supplierID string, update InactivationUpdate) error
	ReactivateSupplier(ctx context.Context, reactivation *SupplierReactivation) error
}
