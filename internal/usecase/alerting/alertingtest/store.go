// Package alertingtest provides an in-memory implementation of the alert
// engine repositories for tests.
package alertingtest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
)

type Store struct {
	mu sync.Mutex

	Suppliers     map[string]*domain.Supplier
	DocumentTypes map[string]*domain.DocumentType
	Documents     []*domain.SupplierDocument
	Evaluations   []*domain.PerformanceEvaluation
	Failures      []*domain.SupplyFailure
	Alerts        []*domain.ExpirationAlert
	Runs          []*domain.ScanRun
	Reactivations []*domain.SupplierReactivation

	ProcedureCalls int
	nextID         int

	// Error injection
	DocumentsErr   error
	SuppliersErr   error
	EvaluationsErr error
	FailuresErr    error
	InsertErr      error
	ProcedureErr   error
	InactivateErr  map[string]error

	// EvaluationErrFor fails the latest-evaluation lookup for the listed suppliers only.
	EvaluationErrFor map[string]error
}

func NewStore() *Store {
	return &Store{
		Suppliers:        make(map[string]*domain.Supplier),
		DocumentTypes:    make(map[string]*domain.DocumentType),
		InactivateErr:    make(map[string]error),
		EvaluationErrFor: make(map[string]error),
	}
}

func (s *Store) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Store) AddSupplier(id, companyID string, status domain.SupplierStatus, name string) *domain.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup := &domain.Supplier{ID: id, CompanyID: companyID, Status: status, DisplayName: name}
	s.Suppliers[id] = sup
	return sup
}

func (s *Store) AddDocumentType(id, name string, mandatory bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DocumentTypes[id] = &domain.DocumentType{ID: id, Name: name, IsMandatory: mandatory}
}

func (s *Store) AddDocument(supplierID, typeID string, expiry *time.Time, status domain.DocumentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Documents = append(s.Documents, &domain.SupplierDocument{
		ID:             s.id("doc"),
		SupplierID:     supplierID,
		DocumentTypeID: typeID,
		ExpiryDate:     expiry,
		Status:         status,
	})
}

func (s *Store) AddEvaluation(supplierID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Evaluations = append(s.Evaluations, &domain.PerformanceEvaluation{
		ID:             s.id("eval"),
		SupplierID:     supplierID,
		EvaluationDate: at,
	})
}

func (s *Store) AddFailure(supplierID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	companyID := ""
	if sup, ok := s.Suppliers[supplierID]; ok {
		companyID = sup.CompanyID
	}
	s.Failures = append(s.Failures, &domain.SupplyFailure{
		ID:          s.id("failure"),
		SupplierID:  supplierID,
		CompanyID:   companyID,
		FailureDate: at,
	})
}

func (s *Store) AlertsOfType(t domain.AlertType) []*domain.ExpirationAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ExpirationAlert
	for _, a := range s.Alerts {
		if a.AlertType == t {
			out = append(out, a)
		}
	}
	return out
}

func copySupplier(sup *domain.Supplier) *domain.Supplier {
	if sup == nil {
		return nil
	}
	c := *sup
	return &c
}

// SupplierRepository

func (s *Store) GetSupplierByID(_ context.Context, supplierID string) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.Suppliers[supplierID]
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}
	return copySupplier(sup), nil
}

func (s *Store) FindActiveSuppliers(_ context.Context) ([]*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SuppliersErr != nil {
		return nil, s.SuppliersErr
	}
	var out []*domain.Supplier
	for _, sup := range s.Suppliers {
		if sup.Status == domain.SupplierActive {
			out = append(out, copySupplier(sup))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) InactivateSupplier(_ context.Context, supplierID string, update domain.InactivationUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.InactivateErr[supplierID]; err != nil {
		return err
	}
	sup, ok := s.Suppliers[supplierID]
	if !ok {
		return domain.ErrSupplierNotFound
	}
	at := update.InactivatedAt
	until := update.BlockedUntil
	sup.Status = domain.SupplierInactive
	sup.AutoInactivationReason = update.Reason
	sup.AutoInactivatedAt = &at
	sup.ReactivationBlockedUntil = &until
	return nil
}

func (s *Store) ReactivateSupplier(_ context.Context, r *domain.SupplierReactivation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.Suppliers[r.SupplierID]
	if !ok {
		return domain.ErrSupplierNotFound
	}
	sup.Status = domain.SupplierActive
	sup.AutoInactivationReason = ""
	sup.AutoInactivatedAt = nil
	sup.ReactivationBlockedUntil = nil
	if r.ID == "" {
		r.ID = s.id("reactivation")
	}
	s.Reactivations = append(s.Reactivations, r)
	return nil
}

// DocumentRepository

func (s *Store) FindApprovedDocumentsWithExpiry(_ context.Context) ([]*domain.SupplierDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DocumentsErr != nil {
		return nil, s.DocumentsErr
	}
	var out []*domain.SupplierDocument
	for _, d := range s.Documents {
		if d.Status != domain.DocumentApproved || d.ExpiryDate == nil {
			continue
		}
		c := *d
		c.Supplier = copySupplier(s.Suppliers[d.SupplierID])
		if dt, ok := s.DocumentTypes[d.DocumentTypeID]; ok {
			dtc := *dt
			c.DocumentType = &dtc
		}
		out = append(out, &c)
	}
	return out, nil
}

// EvaluationRepository

func (s *Store) GetLatestEvaluation(_ context.Context, supplierID string) (*domain.PerformanceEvaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EvaluationsErr != nil {
		return nil, s.EvaluationsErr
	}
	if err, ok := s.EvaluationErrFor[supplierID]; ok {
		return nil, err
	}
	var latest *domain.PerformanceEvaluation
	for _, e := range s.Evaluations {
		if e.SupplierID != supplierID {
			continue
		}
		if latest == nil || e.EvaluationDate.After(latest.EvaluationDate) {
			latest = e
		}
	}
	return latest, nil
}

// SupplyFailureRepository

func (s *Store) FindFailuresSince(_ context.Context, since time.Time) ([]*domain.SupplyFailure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailuresErr != nil {
		return nil, s.FailuresErr
	}
	var out []*domain.SupplyFailure
	for _, f := range s.Failures {
		if f.FailureDate.Before(since) {
			continue
		}
		c := *f
		c.Supplier = copySupplier(s.Suppliers[f.SupplierID])
		out = append(out, &c)
	}
	return out, nil
}

// AlertRepository

func (s *Store) HasOpenAlert(_ context.Context, supplierID string, alertType domain.AlertType, referenceName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.Alerts {
		if a.SupplierID == supplierID && a.AlertType == alertType &&
			a.ReferenceName == referenceName && a.AlertStatus != domain.AlertResolved {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateAlerts(_ context.Context, alerts []*domain.ExpirationAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return s.InsertErr
	}
	for _, a := range alerts {
		if a.ID == "" {
			a.ID = s.id("alert")
		}
		c := *a
		s.Alerts = append(s.Alerts, &c)
	}
	return nil
}

func (s *Store) GetAlerts(_ context.Context, filter *domain.AlertFilter) ([]*domain.ExpirationAlert, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*domain.ExpirationAlert
	for _, a := range s.Alerts {
		if a.CompanyID != filter.CompanyID {
			continue
		}
		if filter.AlertType != nil && a.AlertType != *filter.AlertType {
			continue
		}
		if filter.AlertStatus != nil && a.AlertStatus != *filter.AlertStatus {
			continue
		}
		matched = append(matched, a)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *Store) UpdateAlertStatus(_ context.Context, alertID string, status domain.AlertStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.Alerts {
		if a.ID == alertID {
			a.AlertStatus = status
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

// ComplianceProcedures

func (s *Store) CheckSupplierMandatoryDocuments(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProcedureCalls++
	return s.ProcedureErr
}

// ScanRunRepository

func (s *Store) CreateScanRun(ctx context.Context, run *domain.ScanRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Runs = append(s.Runs, run)
	return nil
}

func (s *Store) GetRecentScanRuns(_ context.Context, limit int) ([]*domain.ScanRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.ScanRun, 0, len(s.Runs))
	for i := len(s.Runs) - 1; i >= 0; i-- {
		out = append(out, s.Runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Date builds a UTC midnight time.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date for nullable columns.
func DatePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)
	return &d
}
