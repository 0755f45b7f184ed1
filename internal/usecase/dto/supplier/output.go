package supplierdto

import "time"

type ReactivateSupplierOutput struct {
	SupplierID    string
	Status        string
	ReactivatedAt time.Time
}
