package models

import "time"

type SupplierModel struct {
	ID                       string `gorm:"primaryKey"`
	CompanyID                string `gorm:"not null;index"`
	Status                   string `gorm:"not null;index"`
	DisplayName              string
	AutoInactivationReason   string
	AutoInactivatedAt        *time.Time
	ReactivationBlockedUntil *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (SupplierModel) TableName() string { return "suppliers" }

type SupplierReactivationModel struct {
	ID            string `gorm:"primaryKey"`
	SupplierID    string `gorm:"not null;index"`
	ReactivatedBy string `gorm:"not null"`
	Reason        string `gorm:"not null"`
	ReactivatedAt time.Time
}

func (SupplierReactivationModel) TableName() string { return "supplier_reactivation_logs" }
