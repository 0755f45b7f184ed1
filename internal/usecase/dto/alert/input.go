package alertdto

type GetAlertsInput struct {
	CompanyID   string `validate:"required"`
	AlertType   string `validate:"omitempty,oneof=documento avaliacao inativacao"`
	AlertStatus string `validate:"omitempty,oneof=Pendente Visualizado Resolvido"`
	Limit       int    `validate:"gte=0,lte=500"`
	Offset      int    `validate:"gte=0"`
}

type UpdateAlertStatusInput struct {
	AlertID string `validate:"required"`
	Status  string `validate:"required"`
}
