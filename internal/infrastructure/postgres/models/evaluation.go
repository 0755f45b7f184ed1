package models

import "time"

type PerformanceEvaluationModel struct {
	ID             string    `gorm:"primaryKey"`
	SupplierID     string    `gorm:"not null;index:idx_evaluation_supplier_date"`
	EvaluationDate time.Time `gorm:"not null;index:idx_evaluation_supplier_date"`
	Score          float64
	CreatedAt      time.Time
}

func (PerformanceEvaluationModel) TableName() string { return "supplier_performance_evaluations" }

type SupplyFailureModel struct {
	ID          string    `gorm:"primaryKey"`
	SupplierID  string    `gorm:"not null;index"`
	CompanyID   string    `gorm:"not null"`
	FailureDate time.Time `gorm:"not null;index"`
	Description string
	CreatedAt   time.Time

	Supplier *SupplierModel `gorm:"foreignKey:SupplierID;references:ID"`
}

func (SupplyFailureModel) TableName() string { return "supplier_supply_failures" }
