package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full names of the Telemetry service and its methods.
const (
	TelemetryServiceName = "facetrack.v1.Telemetry"

	TelemetryGetSnapshotFullMethodName    = "/facetrack.v1.Telemetry/GetSnapshot"
	TelemetryGetMultipliersFullMethodName = "/facetrack.v1.Telemetry/GetMultipliers"
	TelemetrySetMultipliersFullMethodName = "/facetrack.v1.Telemetry/SetMultipliers"
)

// TelemetryServer is the server API for the Telemetry service.
type TelemetryServer interface {
	// GetSnapshot returns the last mapped frame.
	GetSnapshot(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	// GetMultipliers returns the current runtime multipliers.
	GetMultipliers(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	// SetMultipliers merges the provided multipliers and returns the result.
	SetMultipliers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// TelemetryClient is the client API for the Telemetry service.
type TelemetryClient interface {
	GetSnapshot(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetMultipliers(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetMultipliers(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type telemetryClient struct {
	cc grpc.ClientConnInterface
}

// NewTelemetryClient returns a Telemetry client over cc.
func NewTelemetryClient(cc grpc.ClientConnInterface) TelemetryClient {
	return &telemetryClient{cc: cc}
}

func (c *telemetryClient) GetSnapshot(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TelemetryGetSnapshotFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *telemetryClient) GetMultipliers(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TelemetryGetMultipliersFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *telemetryClient) SetMultipliers(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TelemetrySetMultipliersFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// RegisterTelemetryServer registers srv on s.
func RegisterTelemetryServer(s grpc.ServiceRegistrar, srv TelemetryServer) {
	s.RegisterService(&TelemetryServiceDesc, srv)
}

// TelemetryServiceDesc is the grpc.ServiceDesc for the Telemetry service.
var TelemetryServiceDesc = grpc.ServiceDesc{
	ServiceName: TelemetryServiceName,
	HandlerType: (*TelemetryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSnapshot", Handler: getSnapshotHandler},
		{MethodName: "GetMultipliers", Handler: getMultipliersHandler},
		{MethodName: "SetMultipliers", Handler: setMultipliersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "facetrack/v1/telemetry.proto",
}

func getSnapshotHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TelemetryServer).GetSnapshot(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TelemetryGetSnapshotFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TelemetryServer).GetSnapshot(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

func getMultipliersHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TelemetryServer).GetMultipliers(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TelemetryGetMultipliersFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TelemetryServer).GetMultipliers(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

func setMultipliersHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TelemetryServer).SetMultipliers(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TelemetrySetMultipliersFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TelemetryServer).SetMultipliers(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}
