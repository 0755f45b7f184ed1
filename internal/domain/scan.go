package domain

import (
	"context"
	"time"
)

type ScanTrigger string

const (
	TriggerSchedule ScanTrigger = "schedule"
	TriggerHTTP     ScanTrigger = "http"
	TriggerGRPC     ScanTrigger = "grpc"
)

// ScanRun is the audit record of one alert engine run.
type ScanRun struct {
	ID                   string
	Trigger              ScanTrigger
	StartedAt            time.Time
	FinishedAt           time.Time
	AlertsCreated        int
	SuppliersInactivated int
	Success              bool
	Error                string
	Details              map[string]interface{}
}

// ScanSummary is what callers of a run get back.
type ScanSummary struct {
	RunID                string    `json:"run_id"`
	AlertsCreated        int       `json:"alerts_created"`
	SuppliersInactivated int       `json:"suppliers_inactivated"`
	Timestamp            time.Time `json:"timestamp"`
}

type ScanRunRepository interface {
	CreateScanRun(ctx context.Context, run *ScanRun) error
	GetRecentScanRuns(ctx context.Context, limit int) ([]*ScanRun, error)
}

// ScanLock guards against overlapping runs. Acquire returns ErrScanInProgress
// when another holder owns the lock.
type ScanLock interface {
	Acquire(ctx context.Context) (release func(ctx context.Context) error, err error)
}
