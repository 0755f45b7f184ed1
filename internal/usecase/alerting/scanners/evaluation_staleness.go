package scanners

import (
	"context"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
)

const EvaluationReferenceName = "Avaliação anual de desempenho"

// EvaluationStalenessScanner raises an "avaliacao" alert when an active supplier's
// latest performance evaluation is close to its yearly due date.
type EvaluationStalenessScanner struct {
	suppliers   domain.SupplierRepository
	evaluations domain.EvaluationRepository
}

func NewEvaluationStalenessScanner(suppliers domain.SupplierRepository, evaluations domain.EvaluationRepository) *EvaluationStalenessScanner {
	return &EvaluationStalenessScanner{
		suppliers:   suppliers,
		evaluations: evaluations,
	}
}

func (s *EvaluationStalenessScanner) Name() string {
	return "evaluation_staleness"
}

func (s *EvaluationStalenessScanner) GetDescription() string {
	return "Reavaliação anual de desempenho de fornecedores ativos"
}

func (s *EvaluationStalenessScanner) Scan(ctx context.Context, today time.Time, r *rules.AlertRules) (*ScanResult, error) {
	suppliers, err := s.suppliers.FindActiveSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active suppliers: %w", err)
	}

	result := &ScanResult{
		ScannerName: s.Name(),
		Scanned:     len(suppliers),
	}
	neverEvaluated := 0
	lookupErrors := 0

	for _, supplier := range suppliers {
		eval, err := s.evaluations.GetLatestEvaluation(ctx, supplier.ID)
		if err != nil {
			lookupErrors++
			result.RowErrors = append(result.RowErrors, RowError{
				SupplierID: supplier.ID,
				Err:        fmt.Errorf("failed to fetch latest evaluation: %w", err),
			})
			continue
		}
		if eval == nil {
			neverEvaluated++
			continue
		}

		since := rules.DaysBetween(eval.EvaluationDate, today)
		if !r.IsEvaluationStale(since) {
			continue
		}

		due := rules.StartOfDay(eval.EvaluationDate).AddDate(1, 0, 0)
		category, ok := r.ClassifyExpiry(rules.DaysBetween(today, due))
		if !ok {
			category = domain.CategoryAttention
		}

		result.Candidates = append(result.Candidates, newAlert(
			supplier.CompanyID,
			supplier.ID,
			domain.AlertTypeEvaluation,
			EvaluationReferenceName,
			due,
			category,
		))
	}

	result.Details = map[string]interface{}{
		"never_evaluated": neverEvaluated,
		"lookup_errors":   lookupErrors,
	}
	return result, nil
}
