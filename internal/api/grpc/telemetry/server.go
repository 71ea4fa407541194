package telemetry

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/facetrack/internal/domain/face"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	// Frame returns the last mapped frame, or nil before the first one.
	Frame(ctx context.Context) *face.FrameState
	Multipliers(ctx context.Context) *face.MultipliersRecord
	SetMultipliers(ctx context.Context, actor *face.Actor, multipliers face.Multipliers) (*face.MultipliersRecord, error)
}

// Server implements the Telemetry gRPC API.
type Server struct {
	// service provides the business logic for telemetry operations.
	service Service
}

var _ pb.TelemetryServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetSnapshot returns the last mapped frame.
func (s *Server) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	frame := s.service.Frame(ctx)
	if frame == nil {
		return nil, status.Error(codes.Unavailable, "no frame has been mapped yet")
	}

	response, err := pb.FrameToStruct(frame)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode frame")
	}

	return response, nil
}

// GetMultipliers returns the current runtime multipliers.
func (s *Server) GetMultipliers(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toProtoRecord(s.service.Multipliers(ctx))
}

// SetMultipliers merges the requested multipliers over the current ones and persists them.
func (s *Server) SetMultipliers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	current := s.service.Multipliers(ctx)

	merged, actor, err := pb.ParseSetMultipliers(current.Multipliers, req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if actor == nil {
		return nil, status.Error(codes.InvalidArgument, "actor is required")
	}

	if err = merged.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	record, err := s.service.SetMultipliers(ctx, actor, merged)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to persist multipliers")
	}

	return toProtoRecord(record)
}

// toProtoRecord converts a multipliers record into its payload.
func toProtoRecord(record *face.MultipliersRecord) (*structpb.Struct, error) {
	if record == nil {
		return nil, status.Error(codes.Internal, "multipliers are not set")
	}

	response, err := pb.MultipliersRecordToStruct(record)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode multipliers")
	}

	return response, nil
}
