package setup

import "github.com/esgpulse/supplier-compliance-service/internal/usecase"

type UseCases struct {
	ComplianceUsecase usecase.ComplianceUsecase
}

func InitializeUseCases(deps *Dependencies, alerting *AlertingSystem) *UseCases {
	repos := deps.Repositories
	return &UseCases{
		ComplianceUsecase: usecase.NewDefaultComplianceUsecase(
			alerting.Runner,
			repos.SupplierRepo,
			repos.AlertRepo,
			repos.ScanRunRepo,
			deps.Metrics,
		),
	}
}
