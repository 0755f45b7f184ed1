package domain

import (
	"context"
	"time"
)

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "Pendente"
	DocumentApproved DocumentStatus = "Aprovado"
	DocumentRejected DocumentStatus = "Rejeitado"
)

type DocumentType struct {
	ID          string
	Name        string
	IsMandatory bool
}

type SupplierDocument struct {
	ID             string
	SupplierID     string
	DocumentTypeID string
	ExpiryDate     *time.Time
	Status         DocumentStatus

	// Joined rows, nil when the reference is missing
	Supplier     *Supplier
	DocumentType *DocumentType
}

type DocumentRepository interface {
	// FindApprovedDocumentsWithExpiry returns approved documents that carry an
	// expiry date, with Supplier and DocumentType joined.
	FindApprovedDocumentsWithExpiry(ctx context.Context) ([]*SupplierDocument, error)
}
