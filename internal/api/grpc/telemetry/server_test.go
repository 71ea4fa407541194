package telemetry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/facetrack/internal/domain/face"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
)

var errTestPersist = errors.New("test persist error")

// fakeService implements the telemetry Service interface for unit testing the transport.
type fakeService struct {
	// frame is returned by Frame.
	frame *face.FrameState
	// record holds the current multipliers.
	record *face.MultipliersRecord
	// setErr is returned by SetMultipliers when set.
	setErr error
}

func newFakeService() *fakeService {
	return &fakeService{record: &face.MultipliersRecord{Multipliers: face.DefaultMultipliers()}}
}

func (f *fakeService) Frame(context.Context) *face.FrameState { return f.frame }

func (f *fakeService) Multipliers(context.Context) *face.MultipliersRecord { return f.record }

func (f *fakeService) SetMultipliers(
	_ context.Context,
	actor *face.Actor,
	multipliers face.Multipliers,
) (*face.MultipliersRecord, error) {
	if f.setErr != nil {
		return nil, f.setErr
	}

	f.record = &face.MultipliersRecord{
		Multipliers: multipliers,
		UpdatedAt:   time.Now(),
		Actor:       actor,
	}

	return f.record, nil
}

func setRequest(t *testing.T, values map[string]float32, actor *face.Actor) *structpb.Struct {
	t.Helper()

	req, err := pb.SetMultipliersRequest(values, actor)
	require.NoError(t, err)

	return req
}

// TestServer_SetMultipliers_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_SetMultipliers_Validation(t *testing.T) {
	t.Parallel()

	actor := &face.Actor{Hostname: "test-hostname", Username: "test-user"}
	nan := float32(0)
	nan /= nan

	tests := []struct {
		name string
		req  *structpb.Struct
	}{
		{name: "nil request"},
		{name: "no actor", req: setRequest(t, map[string]float32{pb.WideMultiplier: 2}, nil)},
		{name: "unknown multiplier", req: setRequest(t, map[string]float32{"speed": 2}, actor)},
		{name: "not finite", req: setRequest(t, map[string]float32{pb.WideMultiplier: nan}, actor)},
	}

	s := NewServer(newFakeService())

	for _, tt := range tests {
		_, err := s.SetMultipliers(context.Background(), tt.req)
		require.Equal(t, codes.InvalidArgument, status.Code(err), tt.name)
	}
}

// TestServer_SetMultipliers_PersistFailure maps service errors to Internal.
func TestServer_SetMultipliers_PersistFailure(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	svc.setErr = errTestPersist

	req := setRequest(t, map[string]float32{pb.WideMultiplier: 2}, &face.Actor{Hostname: "h", Username: "u"})

	_, err := NewServer(svc).SetMultipliers(context.Background(), req)
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestServer_GetSnapshot_NoFrame reports Unavailable until the first frame.
func TestServer_GetSnapshot_NoFrame(t *testing.T) {
	t.Parallel()

	_, err := NewServer(newFakeService()).GetSnapshot(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.Unavailable, status.Code(err))
}

// TestServer_Roundtrip exercises the service over a real gRPC connection.
func TestServer_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	svc.frame = &face.FrameState{
		SessionID: "session",
		Frames:    1,
		Snapshot:  face.Snapshot{Activity: face.ActivityActive, Seq: 2},
		Eyes:      *face.NewEyesState(),
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grpcServer := grpc.NewServer()
	pb.RegisterTelemetryServer(grpcServer, NewServer(svc))

	go grpcServer.Serve(lis) //nolint:errcheck // Test server.
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close() //nolint:errcheck // Test cleanup.
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := pb.NewTelemetryClient(conn)

	snapshot, err := client.GetSnapshot(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Equal(t, "session", snapshot.GetFields()[pb.KeySessionID].GetStringValue())
	require.Equal(t, "active", snapshot.GetFields()[pb.KeyActivity].GetStringValue())

	actor := &face.Actor{Hostname: "test-hostname", Username: "test-user"}

	response, err := client.SetMultipliers(ctx, setRequest(t, map[string]float32{pb.MovementMultiplier: 0.5}, actor))
	require.NoError(t, err)

	record, err := pb.MultipliersRecordFromStruct(response)
	require.NoError(t, err)
	require.Equal(t, float32(0.5), record.Multipliers.MovementMultiplier)
	require.Equal(t, float32(1), record.Multipliers.OpennessExponent)
	require.Equal(t, actor, record.Actor)

	response, err = client.GetMultipliers(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	record, err = pb.MultipliersRecordFromStruct(response)
	require.NoError(t, err)
	require.Equal(t, float32(0.5), record.Multipliers.MovementMultiplier)
}
