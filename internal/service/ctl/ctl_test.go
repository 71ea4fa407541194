package ctl

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/facetrack/internal/api/grpc/telemetry"
	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/domain/face"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
)

// fakeService is an in-memory telemetry service.
type fakeService struct {
	mu     sync.Mutex
	frame  *face.FrameState
	record *face.MultipliersRecord
}

func (f *fakeService) Frame(context.Context) *face.FrameState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.frame
}

func (f *fakeService) Multipliers(context.Context) *face.MultipliersRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.record
}

func (f *fakeService) SetMultipliers(
	_ context.Context,
	actor *face.Actor,
	m face.Multipliers,
) (*face.MultipliersRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record = &face.MultipliersRecord{Multipliers: m, UpdatedAt: time.Now(), Actor: actor}

	return f.record, nil
}

// startDaemon serves svc and returns a settings file pointing at it.
func startDaemon(t *testing.T, svc api.Service, serving healthpb.HealthCheckResponse_ServingStatus) string {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(pb.TelemetryServiceName, serving)

	grpcServer := grpc.NewServer()
	pb.RegisterTelemetryServer(grpcServer, api.NewServer(svc))
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	go grpcServer.Serve(lis) //nolint:errcheck // Test server.
	t.Cleanup(grpcServer.Stop)

	settings := config.Default()
	settings.Telemetry.ListenAddress = lis.Addr().String()
	settings.Telemetry.Timeout = 5 * time.Second

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(path, settings))

	return path
}

// TestStatus_Tracking renders every section for a tracking daemon.
func TestStatus_Tracking(t *testing.T) {
	t.Parallel()

	frame := &face.FrameState{
		SessionID: "4b0d3c1e",
		Frames:    42,
		Snapshot:  face.Snapshot{Activity: face.ActivityActive, Seq: 7},
		Eyes:      *face.NewEyesState(),
	}
	frame.Snapshot.Set[face.JawDrop] = 0.5
	frame.Mouth.JawOpen = 0.5

	svc := &fakeService{
		frame:  frame,
		record: &face.MultipliersRecord{Multipliers: face.DefaultMultipliers()},
	}

	path := startDaemon(t, svc, healthpb.HealthCheckResponse_SERVING)

	var out bytes.Buffer
	require.NoError(t, Status(context.Background(), &StatusOptions{ConfigPath: path}, &out))

	output := out.String()
	for _, want := range []string{"SERVING", "4b0d3c1e", "active", "42", "JawDrop", "jaw_open", "rotation_w", pb.WideMultiplier} {
		require.Contains(t, output, want)
	}

	require.NotContains(t, output, "BrowLowererL", "zero expressions are hidden")

	out.Reset()
	require.NoError(t, Status(context.Background(), &StatusOptions{ConfigPath: path, All: true}, &out))
	require.Contains(t, out.String(), "BrowLowererL")
}

// TestStatus_NoFrames reports a daemon without a tracking channel.
func TestStatus_NoFrames(t *testing.T) {
	t.Parallel()

	svc := &fakeService{record: &face.MultipliersRecord{Multipliers: face.DefaultMultipliers()}}
	path := startDaemon(t, svc, healthpb.HealthCheckResponse_NOT_SERVING)

	var out bytes.Buffer
	require.NoError(t, Status(context.Background(), &StatusOptions{ConfigPath: path}, &out))
	require.Contains(t, out.String(), "NOT_SERVING")
	require.Contains(t, out.String(), "not attached")
	require.NotContains(t, out.String(), "Expressions")
}

// TestTune changes only the requested multipliers.
func TestTune(t *testing.T) {
	t.Parallel()

	svc := &fakeService{record: &face.MultipliersRecord{Multipliers: face.DefaultMultipliers()}}
	path := startDaemon(t, svc, healthpb.HealthCheckResponse_SERVING)

	var out bytes.Buffer

	opts := &TuneOptions{
		ConfigPath: path,
		Values:     map[string]float32{pb.MovementMultiplier: 0.5},
	}
	require.NoError(t, Tune(context.Background(), opts, &out))
	require.Contains(t, out.String(), "updated_by")

	current := svc.Multipliers(context.Background())
	require.Equal(t, float32(0.5), current.Multipliers.MovementMultiplier)
	require.Equal(t, float32(1), current.Multipliers.WideMultiplier)
	require.NotNil(t, current.Actor)
}

// TestTune_Invalid surfaces validation errors from the daemon.
func TestTune_Invalid(t *testing.T) {
	t.Parallel()

	svc := &fakeService{record: &face.MultipliersRecord{Multipliers: face.DefaultMultipliers()}}
	path := startDaemon(t, svc, healthpb.HealthCheckResponse_SERVING)

	err := Tune(context.Background(), &TuneOptions{ConfigPath: path, Values: map[string]float32{"speed": 1}}, new(bytes.Buffer))
	require.Error(t, err)

	err = Tune(context.Background(), &TuneOptions{ConfigPath: path}, new(bytes.Buffer))
	require.Error(t, err)
}
