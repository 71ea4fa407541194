package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/facetrack/internal/channel"
	"github.com/oshokin/facetrack/internal/config"
	"github.com/oshokin/facetrack/internal/ingest"
	"github.com/oshokin/facetrack/internal/logger"
	"github.com/oshokin/facetrack/internal/mapper"
	"github.com/oshokin/facetrack/internal/tuning"
)

// bridge owns the consumer side of the tracking pipeline: the channel, the
// ingest loop reading it, and the frame consumer reading the loop.
type bridge struct {
	channel *channel.Channel
	loop    *ingest.Loop
	frames  *frameConsumer

	cancel     context.CancelFunc
	framesDone chan struct{}
}

// startBridge attaches to the tracking channel and starts the pipeline.
// It returns a nil bridge when the channel stays unavailable, in which case
// the daemon keeps serving telemetry without frames.
func startBridge(
	ctx context.Context,
	settings *config.Config,
	health statusSetter,
	store *tuning.Store,
	sessionID string,
) (*bridge, error) {
	ch, err := channel.Open(ctx, settings.ChannelSettings())
	if err != nil {
		if errors.Is(err, channel.ErrChannelUnavailable) {
			logger.WarnKV(ctx, "Tracking channel is not available, face and eye tracking is disabled",
				"segment", settings.ChannelSettings().SegmentPath(),
				"error", err)
			logProducerHint(ctx, settings.ProducerProcess)

			return nil, nil
		}

		return nil, err
	}

	loop := ingest.New(ch, ingest.Config{
		WaitTimeout: settings.Channel.WaitTimeout,
		JoinTimeout: settings.Ingest.JoinTimeout,
	})

	if err = loop.Start(ctx); err != nil {
		_ = ch.Close()

		return nil, fmt.Errorf("start ingest loop: %w", err)
	}

	frames := newFrameConsumer(
		loop.Snapshot,
		mapper.Mapper{LegacyRightEyeRotation: settings.Mapper.LegacyRightEyeRotation},
		store.Multipliers,
		health,
		sessionID,
	)

	frameCtx, cancel := context.WithCancel(ctx)

	b := &bridge{
		channel:    ch,
		loop:       loop,
		frames:     frames,
		cancel:     cancel,
		framesDone: make(chan struct{}),
	}

	go func() {
		defer close(b.framesDone)

		frames.run(frameCtx, settings.Frame.Interval)
	}()

	logger.InfoKV(ctx, "Tracking bridge started",
		"segment", settings.ChannelSettings().SegmentPath(),
		"frame_interval", settings.Frame.Interval.String())

	return b, nil
}

// stop tears the pipeline down in reverse order: frames, ingest loop, channel.
// The channel is released even when the loop does not stop in time.
func (b *bridge) stop(ctx context.Context) {
	if b == nil {
		return
	}

	b.cancel()
	<-b.framesDone

	if err := b.loop.Stop(); err != nil {
		logger.ErrorKV(ctx, "Ingest loop did not stop cleanly", "error", err)
	}

	if err := b.channel.Close(); err != nil {
		logger.ErrorKV(ctx, "Failed to close tracking channel", "error", err)
	}

	logger.Info(ctx, "Tracking bridge stopped")
}
