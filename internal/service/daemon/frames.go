package daemon

import (
	"context"
	"sync/atomic"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/mapper"
	pb "github.com/oshokin/facetrack/internal/pb/v1"
)

// statusSetter publishes the serving status of a gRPC service.
type statusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// frameConsumer plays the host's part: once per frame it maps the latest
// snapshot into the eye and mouth sinks and publishes the result.
type frameConsumer struct {
	snapshot  func() *face.Snapshot
	mapper    mapper.Mapper
	tuning    func() face.Multipliers
	health    statusSetter
	sessionID string

	// Owned by the frame goroutine.
	eyes     *face.EyesState
	mouth    face.MouthState
	frames   uint64
	activity face.Activity
	lastTick time.Time

	last atomic.Pointer[face.FrameState]
}

func newFrameConsumer(
	snapshot func() *face.Snapshot,
	m mapper.Mapper,
	tuning func() face.Multipliers,
	health statusSetter,
	sessionID string,
) *frameConsumer {
	return &frameConsumer{
		snapshot:  snapshot,
		mapper:    m,
		tuning:    tuning,
		health:    health,
		sessionID: sessionID,
		eyes:      face.NewEyesState(),
		activity:  face.ActivityUnknown,
	}
}

// Last returns the most recent frame, or nil before the first one.
func (c *frameConsumer) Last() *face.FrameState {
	return c.last.Load()
}

// run maps one frame per interval until ctx ends.
func (c *frameConsumer) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.step(now, interval)
		}
	}
}

// step maps a single frame at now.
func (c *frameConsumer) step(now time.Time, interval time.Duration) {
	deltaTime := interval.Seconds()
	if !c.lastTick.IsZero() {
		deltaTime = now.Sub(c.lastTick).Seconds()
	}

	c.lastTick = now

	snapshot := c.snapshot()
	c.mapper.Frame(snapshot, c.tuning(), c.eyes, &c.mouth, deltaTime)
	c.frames++

	if snapshot.Activity != c.activity {
		c.activity = snapshot.Activity
		c.health.SetServingStatus(pb.TelemetryServiceName, servingStatus(c.activity))
	}

	c.last.Store(&face.FrameState{
		SessionID: c.sessionID,
		Frames:    c.frames,
		Snapshot:  *snapshot,
		Eyes:      *c.eyes,
		Mouth:     c.mouth,
	})
}

// servingStatus reports SERVING only while the headset is tracking.
func servingStatus(activity face.Activity) healthpb.HealthCheckResponse_ServingStatus {
	if activity == face.ActivityActive {
		return healthpb.HealthCheckResponse_SERVING
	}

	return healthpb.HealthCheckResponse_NOT_SERVING
}
