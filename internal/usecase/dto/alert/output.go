package alertdto

import "time"

type GetAlertsOutput struct {
	Alerts []*Alert
	Total  int64
	Limit  int
	Offset int
}

type Alert struct {
	ID                        string
	CompanyID                 string
	SupplierID                string
	AlertType                 string
	ReferenceName             string
	ExpiryDate                time.Time
	AlertStatus               string
	AlertCategory             string
	AutoInactivationTriggered bool
	CreatedAt                 time.Time
}
