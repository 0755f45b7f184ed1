package scanners

import (
	"context"
	"fmt"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase/alerting/rules"
)

const RuleMandatoryDocument = "mandatory_document"

// DocumentExpiryScanner flags approved documents that are expired or close to expiry,
// and queues suppliers whose mandatory documents are long overdue.
type DocumentExpiryScanner struct {
	documents domain.DocumentRepository
}

func NewDocumentExpiryScanner(documents domain.DocumentRepository) *DocumentExpiryScanner {
	return &DocumentExpiryScanner{documents: documents}
}

func (s *DocumentExpiryScanner) Name() string {
	return "document_expiry"
}

func (s *DocumentExpiryScanner) GetDescription() string {
	return "Vencimento de documentos aprovados de fornecedores"
}

func (s *DocumentExpiryScanner) Scan(ctx context.Context, today time.Time, r *rules.AlertRules) (*ScanResult, error) {
	docs, err := s.documents.FindApprovedDocumentsWithExpiry(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approved documents: %w", err)
	}

	result := &ScanResult{
		ScannerName: s.Name(),
		Scanned:     len(docs),
	}
	skipped := 0
	byCategory := make(map[string]int)

	for _, doc := range docs {
		if doc.ExpiryDate == nil || doc.DocumentType == nil || doc.Supplier == nil {
			skipped++
			continue
		}

		days := rules.DaysBetween(today, *doc.ExpiryDate)
		category, ok := r.ClassifyExpiry(days)
		if !ok {
			continue
		}
		byCategory[string(category)]++

		result.Candidates = append(result.Candidates, newAlert(
			doc.Supplier.CompanyID,
			doc.SupplierID,
			domain.AlertTypeDocument,
			doc.DocumentType.Name,
			rules.StartOfDay(*doc.ExpiryDate),
			category,
		))

		if category == domain.CategoryExpired &&
			r.ShouldInactivateForDocument(doc.DocumentType.IsMandatory, days) &&
			doc.Supplier.IsActive() {
			result.Inactivations = append(result.Inactivations, &domain.Inactivation{
				SupplierID:  doc.SupplierID,
				CompanyID:   doc.Supplier.CompanyID,
				DisplayName: doc.Supplier.DisplayName,
				Rule:        RuleMandatoryDocument,
				Reason:      fmt.Sprintf("Documento obrigatório %q vencido há %d dias", doc.DocumentType.Name, -days),
			})
		}
	}

	result.Details = map[string]interface{}{
		"skipped":     skipped,
		"by_category": byCategory,
	}
	return result, nil
}
