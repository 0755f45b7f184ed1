package scanners

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
)

const RuleSupplyFailures = "supply_failures"

// SupplyFailureScanner queues active suppliers with too many supply failures in the trailing window.
type SupplyFailureScanner struct {
	failures domain.SupplyFailureRepository
}

func NewSupplyFailureScanner(failures domain.SupplyFailureRepository) *SupplyFailureScanner {
	return &SupplyFailureScanner{failures: failures}
}

func (s *SupplyFailureScanner) Name() string {
	return "supply_failures"
}

func (s *SupplyFailureScanner) GetDescription() string {
	return "Limite de falhas de fornecimento no período"
}

type failureGroup struct {
	supplier *domain.Supplier
	count    int
}

func (s *SupplyFailureScanner) Scan(ctx context.Context, today time.Time, r *rules.AlertRules) (*ScanResult, error) {
	failures, err := s.failures.FindFailuresSince(ctx, r.FailureWindowStart(today))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supply failures: %w", err)
	}

	groups := make(map[string]*failureGroup)
	for _, f := range failures {
		g, ok := groups[f.SupplierID]
		if !ok {
			g = &failureGroup{supplier: f.Supplier}
			groups[f.SupplierID] = g
		}
		g.count++
	}

	// map order is random; keep the queue stable between runs
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := &ScanResult{
		ScannerName: s.Name(),
		Scanned:     len(failures),
	}
	for _, id := range ids {
		g := groups[id]
		if !r.ExceedsFailureLimit(g.count) || !g.supplier.IsActive() {
			continue
		}
		result.Inactivations = append(result.Inactivations, &domain.Inactivation{
			SupplierID:  id,
			CompanyID:   g.supplier.CompanyID,
			DisplayName: g.supplier.DisplayName,
			Rule:        RuleSupplyFailures,
			Reason:      fmt.Sprintf("%d falhas de fornecimento nos últimos %d dias", g.count, r.FailureWindowDays),
		})
	}

	result.Details = map[string]interface{}{
		"suppliers_with_failures": len(groups),
	}
	return result, nil
}
