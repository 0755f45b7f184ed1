package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type RunScanResponse struct {
	Success              bool      `json:"success"`
	RunID                string    `json:"run_id"`
	AlertsCreated        int       `json:"alerts_created"`
	SuppliersInactivated int       `json:"suppliers_inactivated"`
	Timestamp            time.Time `json:"timestamp"`
}

type GetAlertsQuery struct {
	Type   string `form:"type"`
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type Alert struct {
	ID                        string    `json:"id"`
	CompanyID                 string    `json:"company_id"`
	SupplierID                string    `json:"supplier_id"`
	AlertType                 string    `json:"alert_type"`
	ReferenceName             string    `json:"reference_name"`
	ExpiryDate                string    `json:"expiry_date"`
	AlertStatus               string    `json:"alert_status"`
	AlertCategory             string    `json:"alert_category"`
	AutoInactivationTriggered bool      `json:"auto_inactivation_triggered"`
	CreatedAt                 time.Time `json:"created_at"`
}

type GetAlertsResponse struct {
	Alerts []Alert `json:"alerts"`
	Total  int64   `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type UpdateAlertStatusRequest struct {
	AlertStatus string `json:"alert_status" binding:"required"`
}

type ReactivateSupplierRequest struct {
	ReactivatedBy string `json:"reactivated_by" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

type ReactivateSupplierResponse struct {
	SupplierID    string    `json:"supplier_id"`
	Status        string    `json:"status"`
	ReactivatedAt time.Time `json:"reactivated_at"`
}

type ScanRun struct {
	ID                   string                 `json:"id"`
	Trigger              string                 `json:"trigger"`
	StartedAt            time.Time              `json:"started_at"`
	FinishedAt           time.Time              `json:"finished_at"`
	AlertsCreated        int                    `json:"alerts_created"`
	SuppliersInactivated int                    `json:"suppliers_inactivated"`
	Success              bool                   `json:"success"`
	Error                string                 `json:"error,omitempty"`
	Details              map[string]interface{} `json:"details,omitempty"`
}

type GetScanRunsResponse struct {
	Runs []ScanRun `json:"runs"`
}
