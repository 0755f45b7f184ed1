package models

import "time"

type DocumentTypeModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	IsMandatory bool   `gorm:"not null;default:false"`
}

func (DocumentTypeModel) TableName() string { return "document_types" }

type SupplierDocumentModel struct {
	ID             string `gorm:"primaryKey"`
	SupplierID     string `gorm:"not null;index"`
	DocumentTypeID string `gorm:"not null"`
	ExpiryDate     *time.Time
	Status         string `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Supplier     *SupplierModel     `gorm:"foreignKey:SupplierID;references:ID"`
	DocumentType *DocumentTypeModel `gorm:"foreignKey:DocumentTypeID;references:ID"`
}

func (SupplierDocumentModel) TableName() string { return "supplier_documents" }
