package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/facetrack/internal/api/grpc/telemetry"
	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/logger"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
	repository "github.com/oshokin/facetrack/internal/repository/multipliers"
	"github.com/oshokin/facetrack/internal/tuning"
)

// Options controls the facetrackd process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the telemetry listen address from the settings.
	ListenAddress string
	// MultipliersFile overrides where tuned multipliers are persisted.
	MultipliersFile string
}

// Run starts the tracking bridge and the telemetry server and blocks until
// ctx is canceled or the server stops.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "facetrackd")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	listenAddress := settings.Telemetry.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	multipliersFile := settings.Telemetry.MultipliersFile
	if opts.MultipliersFile != "" {
		multipliersFile = opts.MultipliersFile
	}

	sessionID := uuid.NewString()
	ctx = logger.WithKV(ctx, "session_id", sessionID)

	store, err := tuning.Load(ctx, repository.NewFileRepository(multipliersFile), settings.Multipliers)
	if err != nil {
		return fmt.Errorf("initialise multipliers: %w", err)
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	healthServer := health.NewServer()
	healthServer.SetServingStatus(pb.TelemetryServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	b, err := startBridge(ctx, settings, healthServer, store, sessionID)
	if err != nil {
		_ = lis.Close()

		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("start tracking bridge: %w", err)
	}

	svc := &service{tuning: store}
	if b != nil {
		svc.frames = b.frames
	}

	grpcServer := grpc.NewServer()
	pb.RegisterTelemetryServer(grpcServer, api.NewServer(svc))
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	logger.InfoKV(ctx, "Telemetry server listening",
		"listen_address", lis.Addr().String(),
		"multipliers_file", multipliersFile)

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down telemetry server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		close(done)
	}()

	serveErr := grpcServer.Serve(lis)

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		b.stop(ctx)

		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	<-done
	b.stop(ctx)
	logger.Info(ctx, "Telemetry server stopped")

	return nil
}
