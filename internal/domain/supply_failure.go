package domain

import (
	"context"
	"time"
)

type SupplyFailure struct {
	ID          string
	SupplierID  string
	CompanyID   string
	FailureDate time.Time
	Description string

	Supplier *Supplier
}

type SupplyFailureRepository interface {
	// FindFailuresSince returns failures with failure_date >= since, with Supplier joined.
	FindFailuresSince(ctx context.Context, since time.Time) ([]*SupplyFailure, error)
}
