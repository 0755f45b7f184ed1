package supplierdto

type ReactivateSupplierInput struct {
	SupplierID    string `validate:"required"`
	ReactivatedBy string `validate:"required,max=255"`
	Reason        string `validate:"required,max=1000"`
}
