package grpcapi

import (
	"context"
	"errors"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type SupplierAlertHandler struct {
	useCase usecase.ComplianceUsecase
	log     *logger.Logger
}

func NewSupplierAlertHandler(useCase usecase.ComplianceUsecase, log *logger.Logger) *SupplierAlertHandler {
	return &SupplierAlertHandler{
		useCase: useCase,
		log:     log,
	}
}

// RunScan returns the same fields as the HTTP run endpoint.
func (h *SupplierAlertHandler) RunScan(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	summary, err := h.useCase.RunScan(ctx, domain.TriggerGRPC)
	if err != nil {
		if errors.Is(err, domain.ErrScanInProgress) {
			return nil, status.Error(codes.Aborted, err.Error())
		}
		h.log.Error("gRPC scan failed", "error", err)
		return nil, status.Errorf(codes.Internal, "failed to run scan: %v", err)
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"success":               true,
		"run_id":                summary.RunID,
		"alerts_created":        summary.AlertsCreated,
		"suppliers_inactivated": summary.SuppliersInactivated,
		"timestamp":             summary.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}

// UnaryLogger logs every unary call with its status code.
func UnaryLogger(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info("gRPC request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
