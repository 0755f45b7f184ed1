package domain

import (
	"context"
	"time"
)

type PerformanceEvaluation struct {
	ID             string
	SupplierID     string
	EvaluationDate time.Time
	Score          float64
}

type EvaluationRepository interface {
	// GetLatestEvaluation returns nil without error when the supplier was never evaluated.
	GetLatestEvaluation(ctx context.Context, supplierID string) (*PerformanceEvaluation, error)
}
