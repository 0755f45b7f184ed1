package scandto

import "time"

type GetScanRunsOutput struct {
	Runs []*ScanRun
}

type ScanRun struct {
	ID                   string
	Trigger              string
	StartedAt            time.Time
	FinishedAt           time.Time
	AlertsCreated        int
	SuppliersInactivated int
	Success              bool
	Error                string
	Details              map[string]interface{}
}
