package grpcapi

import (
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewServer builds a gRPC server exposing the alert service and the standard health service.
func NewServer(useCase usecase.ComplianceUsecase, log *logger.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append(opts, grpc.ChainUnaryInterceptor(UnaryLogger(log)))
	server := grpc.NewServer(opts...)

	RegisterSupplierAlertServiceServer(server, NewSupplierAlertHandler(useCase, log))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(SupplierAlertServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server, healthServer
}
