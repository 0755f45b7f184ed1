package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	SupplierAlertServiceName = "compliance.v1.SupplierAlertService"
	RunScanFullMethodName    = "/" + SupplierAlertServiceName + "/RunScan"
)

// SupplierAlertServiceServer is the server API for compliance.v1.SupplierAlertService.
// Its messages are well-known types, so no generated stubs are needed.
type SupplierAlertServiceServer interface {
	RunScan(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterSupplierAlertServiceServer(s grpc.ServiceRegistrar, srv SupplierAlertServiceServer) {
	s.RegisterService(&SupplierAlertServiceDesc, srv)
}

func runScanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SupplierAlertServiceServer).RunScan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RunScanFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SupplierAlertServiceServer).RunScan(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var SupplierAlertServiceDesc = grpc.ServiceDesc{
	ServiceName: SupplierAlertServiceName,
	HandlerType: (*SupplierAlertServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RunScan",
			Handler:    runScanHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "compliance/v1/supplier_alert.proto",
}

// SupplierAlertServiceClient calls RunScan over an existing connection.
type SupplierAlertServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSupplierAlertServiceClient(cc grpc.ClientConnInterface) *SupplierAlertServiceClient {
	return &SupplierAlertServiceClient{cc: cc}
}

func (c *SupplierAlertServiceClient) RunScan(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RunScanFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
