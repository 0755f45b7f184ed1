package domain

import (
	"context"
	"time"
)

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, msgs ...Message) error
}

type AlertEventKind string

const (
	EventAlertCreated        AlertEventKind = "alert_created"
	EventSupplierInactivated AlertEventKind = "supplier_inactivated"
)

// AlertEvent is published once per created alert and once per inactivated supplier.
type AlertEvent struct {
	Kind          AlertEventKind `json:"kind"`
	RunID         string         `json:"run_id"`
	CompanyID     string         `json:"company_id"`
	SupplierID    string         `json:"supplier_id"`
	AlertType     string         `json:"alert_type,omitempty"`
	AlertCategory string         `json:"alert_category,omitempty"`
	ReferenceName string         `json:"reference_name,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}
