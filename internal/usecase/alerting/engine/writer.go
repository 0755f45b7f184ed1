package engine

import (
	"context"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
)

const InactivationReferenceName = "Inativação automática"

// applyInactivations updates each queued supplier and returns one "inativacao"
// alert per successful update. Failures are logged and the loop continues.
func (e *AlertEngine) applyInactivations(ctx context.Context, now, today time.Time, queue []*domain.Inactivation, report *Report) []*domain.ExpirationAlert {
	var out []*domain.ExpirationAlert

	for _, inact := range queue {
		update := domain.InactivationUpdate{
			Reason:        inact.Reason,
			InactivatedAt: now,
			BlockedUntil:  e.rules.ReactivationBlockedUntil(now),
		}
		if err := e.suppliers.InactivateSupplier(ctx, inact.SupplierID, update); err != nil {
			e.logger.Error("Failed to inactivate supplier",
				"supplier_id", inact.SupplierID,
				"rule", inact.Rule,
				"error", err)
			report.InactivationErrors++
			continue
		}

		e.logger.Warn("Supplier inactivated automatically",
			"supplier_id", inact.SupplierID,
			"company_id", inact.CompanyID,
			"rule", inact.Rule,
			"reason", inact.Reason)

		report.Inactivated = append(report.Inactivated, inact)
		out = append(out, &domain.ExpirationAlert{
			CompanyID:                 inact.CompanyID,
			SupplierID:                inact.SupplierID,
			AlertType:                 domain.AlertTypeInactivation,
			ReferenceName:             InactivationReferenceName,
			ExpiryDate:                rules.StartOfDay(today),
			AlertStatus:               domain.AlertPending,
			AlertCategory:             domain.CategoryCritical,
			AutoInactivationTriggered: true,
		})
	}
	return out
}

type dedupKey struct {
	supplierID string
	alertType  domain.AlertType
	reference  string
}

// deduplicate drops "documento" candidates that already have an open alert or
// that repeat within this batch. Other alert types pass through untouched.
// A failed lookup keeps the candidate.
func (e *AlertEngine) deduplicate(ctx context.Context, candidates []*domain.ExpirationAlert) ([]*domain.ExpirationAlert, int) {
	out := make([]*domain.ExpirationAlert, 0, len(candidates))
	seen := make(map[dedupKey]struct{})
	dropped := 0

	for _, c := range candidates {
		if c.AlertType != domain.AlertTypeDocument {
			out = append(out, c)
			continue
		}

		key := dedupKey{supplierID: c.SupplierID, alertType: c.AlertType, reference: c.ReferenceName}
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}

		exists, err := e.alerts.HasOpenAlert(ctx, c.SupplierID, c.AlertType, c.ReferenceName)
		if err != nil {
			e.logger.Error("Failed to check existing alert",
				"supplier_id", c.SupplierID,
				"reference_name", c.ReferenceName,
				"error", err)
		}
		if exists {
			dropped++
			continue
		}
		out = append(out, c)
	}
	return out, dropped
}
