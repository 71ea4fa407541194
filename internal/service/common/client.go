//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/domain/face"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
)

// Client wraps the Telemetry and health gRPC clients with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the daemon.
	conn *grpc.ClientConn
	// api is the Telemetry client interface.
	api pb.TelemetryClient
	// health queries the daemon's serving status.
	health healthpb.HealthClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when an actor is not provided but is required for the operation.
	errActorRequired = errors.New("actor must be provided")
	// errNothingToSet is returned when a tune request carries no multipliers.
	errNothingToSet = errors.New("at least one multiplier must be provided")
)

// Dial establishes a gRPC connection to the daemon's telemetry service.
// Note: this uses insecure transport credentials; the daemon listens on
// loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial telemetry service: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         pb.NewTelemetryClient(conn),
		health:      healthpb.NewHealthClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Status returns the serving status of the telemetry service.
// SERVING means the headset is actively tracking.
func (c *Client) Status(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.health.Check(callCtx, &healthpb.HealthCheckRequest{Service: pb.TelemetryServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("check health: %w", err)
	}

	return resp.GetStatus(), nil
}

// Snapshot retrieves the last mapped frame.
func (c *Client) Snapshot(ctx context.Context) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetSnapshot(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return resp, nil
}

// Multipliers retrieves the current runtime multipliers.
func (c *Client) Multipliers(ctx context.Context) (*face.MultipliersRecord, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetMultipliers(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get multipliers: %w", err)
	}

	return pb.MultipliersRecordFromStruct(resp)
}

// SetMultipliers changes the named multipliers on the daemon.
func (c *Client) SetMultipliers(
	ctx context.Context,
	actor *face.Actor,
	values map[string]float32,
) (*face.MultipliersRecord, error) {
	if actor == nil {
		return nil, errActorRequired
	}

	if len(values) == 0 {
		return nil, errNothingToSet
	}

	request, err := pb.SetMultipliersRequest(values, actor)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.SetMultipliers(callCtx, request)
	if err != nil {
		return nil, fmt.Errorf("set multipliers: %w", err)
	}

	return pb.MultipliersRecordFromStruct(resp)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
