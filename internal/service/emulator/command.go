package emulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"github.com/oshokin/facetrack/internal/channel"
	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/emulation"
	"github.com/oshokin/facetrack/internal/logger"
)

// Options controls the facetrack-emulator process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// OSCAddress overrides the OSC listen address from the settings.
	OSCAddress string
}

// ErrAlreadyRunning is returned when another emulator holds the lock for the same segment.
var ErrAlreadyRunning = errors.New("another emulator is already publishing to this channel")

// Run publishes synthetic tracking records until ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "facetrack-emulator")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	if opts.OSCAddress != "" {
		settings.Emulator.OSCAddress = opts.OSCAddress
	}

	_, err = run(ctx, settings, nil)

	return err
}

// run holds the lock, creates the channel and runs the producer with the OSC
// listener. ready, when set, receives the bound OSC address once listening.
func run(ctx context.Context, settings *config.Config, ready chan<- string) (int, error) {
	lock := flock.New(settings.Emulator.LockFile)

	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire lock: %w", err)
	}

	if !locked {
		return 0, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, settings.Emulator.LockFile)
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.WarnKV(ctx, "Failed to release emulator lock", "error", err)
		}
	}()

	writer, err := channel.Create(settings.ChannelSettings())
	if err != nil {
		return 0, err
	}

	defer func() {
		if err := writer.Close(); err != nil {
			logger.WarnKV(ctx, "Failed to close tracking channel", "error", err)
		}
	}()

	reader, err := emulation.Listen(settings.Emulator.OSCAddress)
	if err != nil {
		return 0, err
	}

	defer func() {
		if err := reader.Close(); err != nil {
			logger.WarnKV(ctx, "Failed to close OSC listener", "error", err)
		}
	}()

	logger.InfoKV(ctx, "Emulator started",
		"segment", settings.ChannelSettings().SegmentPath(),
		"osc_address", reader.Addr().String(),
		"lock", settings.Emulator.LockFile)

	if ready != nil {
		ready <- reader.Addr().String()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- reader.Serve(ctx)
	}()

	producer := emulation.NewProducer(reader, writer, settings.Emulator.Interval, settings.Emulator.Warmup)
	published, runErr := producer.Run(ctx)

	cancel()

	return published, errors.Join(runErr, <-serveErr)
}
