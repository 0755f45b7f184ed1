package models

import (
	"time"

	"gorm.io/datatypes"
)

type ExpirationAlertModel struct {
	ID                        string    `gorm:"primaryKey"`
	CompanyID                 string    `gorm:"not null;index"`
	SupplierID                string    `gorm:"not null;index:idx_alert_dedup"`
	AlertType                 string    `gorm:"not null;index:idx_alert_dedup"`
	ReferenceName             string    `gorm:"not null;index:idx_alert_dedup"`
	ExpiryDate                time.Time `gorm:"not null"`
	AlertStatus               string    `gorm:"not null;default:Pendente"`
	AlertCategory             string    `gorm:"not null"`
	AutoInactivationTriggered bool      `gorm:"not null;default:false"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (ExpirationAlertModel) TableName() string { return "supplier_expiration_alerts" }

type ScanRunModel struct {
	ID                   string    `gorm:"primaryKey"`
	Trigger              string    `gorm:"column:trigger_source;not null"`
	StartedAt            time.Time `gorm:"not null;index"`
	FinishedAt           time.Time
	AlertsCreated        int
	SuppliersInactivated int
	Success              bool
	Error                string
	Details              datatypes.JSON
}

func (ScanRunModel) TableName() string { return "alert_scan_runs" }
