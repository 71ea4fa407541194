package daemon

import (
	"context"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/tuning"
)

// service backs the telemetry transport with the frame consumer and the tuning store.
type service struct {
	// frames is nil when the tracking channel is not available.
	frames *frameConsumer
	// tuning holds the runtime multipliers.
	tuning *tuning.Store
}

// Frame returns the last mapped frame.
func (s *service) Frame(_ context.Context) *face.FrameState {
	if s.frames == nil {
		return nil
	}

	return s.frames.Last()
}

// Multipliers returns the multipliers in effect.
func (s *service) Multipliers(_ context.Context) *face.MultipliersRecord {
	return s.tuning.Current()
}

// SetMultipliers persists new multipliers; the next frame picks them up.
func (s *service) SetMultipliers(
	ctx context.Context,
	actor *face.Actor,
	multipliers face.Multipliers,
) (*face.MultipliersRecord, error) {
	return s.tuning.Set(ctx, actor, multipliers)
}
