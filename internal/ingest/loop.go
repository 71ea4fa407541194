package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/logger"
	"github.com/oshokin/facetrack/internal/normalize"
)

// Default timings of the loop.
const (
	DefaultWaitTimeout = 50 * time.Millisecond
	DefaultJoinTimeout = time.Second
)

var (
	// ErrJoinTimeout is returned by Stop when the loop did not exit in time.
	ErrJoinTimeout = errors.New("ingest loop did not stop in time")
	// ErrAlreadyRunning is returned by Start on a running loop.
	ErrAlreadyRunning = errors.New("ingest loop already running")
)

// Source is the consumer side of the tracking channel.
type Source interface {
	// WaitForUpdate blocks until the producer signals or timeout elapses.
	WaitForUpdate(timeout time.Duration) bool
	// Read decodes the latest raw record.
	Read(dst *face.RawState) error
}

// Config tunes the loop.
type Config struct {
	// WaitTimeout bounds a single wait for a producer signal.
	WaitTimeout time.Duration
	// JoinTimeout bounds how long Stop waits for the loop to exit.
	JoinTimeout time.Duration
}

// Loop drives normalization from a Source on its own goroutine.
type Loop struct {
	source Source
	cfg    Config

	// Owned by the loop goroutine.
	normalizer *normalize.Normalizer
	raw        face.RawState
	set        face.ExpressionSet
	seq        uint64

	activity atomic.Int32
	snapshot atomic.Pointer[face.Snapshot]

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a stopped loop reading from source.
func New(source Source, cfg Config) *Loop {
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}

	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = DefaultJoinTimeout
	}

	l := &Loop{
		source:     source,
		cfg:        cfg,
		normalizer: normalize.New(),
	}

	l.snapshot.Store(&face.Snapshot{Activity: face.ActivityUnknown})

	return l
}

// Activity returns the current tracking activity.
func (l *Loop) Activity() face.Activity {
	return face.Activity(l.activity.Load())
}

// Snapshot returns the latest published snapshot. It is never nil and must not be modified.
func (l *Loop) Snapshot() *face.Snapshot {
	return l.snapshot.Load()
}

// Start launches the loop goroutine. The loop runs until ctx ends or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running || l.lingering() {
		return ErrAlreadyRunning
	}

	ctx, l.cancel = context.WithCancel(logger.WithName(ctx, "ingest"))
	l.done = make(chan struct{})
	l.running = true

	go l.run(ctx, l.done)

	return nil
}

// Stop cancels the loop and waits for it up to the join timeout.
// A loop that does not exit in time is reported with ErrJoinTimeout and left behind.
// The activity returns to Unknown either way.
func (l *Loop) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return nil
	}

	l.cancel()
	l.running = false

	var err error

	select {
	case <-l.done:
	case <-time.After(l.cfg.JoinTimeout):
		err = fmt.Errorf("%w (waited %s)", ErrJoinTimeout, l.cfg.JoinTimeout)
	}

	l.activity.Store(int32(face.ActivityUnknown))
	l.snapshot.Store(l.snapshot.Load().WithActivity(face.ActivityUnknown))

	return err
}

// lingering reports whether a goroutine left behind by a timed-out Stop is still running.
func (l *Loop) lingering() bool {
	if l.done == nil {
		return false
	}

	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

func (l *Loop) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	logger.Debug(ctx, "Ingest loop started")

	for ctx.Err() == nil {
		l.tick(ctx)
	}

	logger.Debug(ctx, "Ingest loop stopped")
}

// tick runs one wait cycle. Failures never escape: the loop must survive a bad tick.
func (l *Loop) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.DebugKV(ctx, "Ingest tick panicked", "panic", r)
		}
	}()

	if !l.source.WaitForUpdate(l.cfg.WaitTimeout) {
		if ctx.Err() != nil {
			return
		}

		l.refreshActivity(ctx)

		return
	}

	if err := l.source.Read(&l.raw); err != nil {
		logger.DebugKV(ctx, "Ingest read failed", "error", err)

		return
	}

	result := l.normalizer.Apply(&l.raw, &l.set)
	activity := face.ActivityFrom(result.Tracking())

	l.seq++
	l.snapshot.Store(&face.Snapshot{
		Set:       l.set,
		Activity:  activity,
		Seq:       l.seq,
		UpdatedAt: time.Now(),
	})

	l.setActivity(ctx, activity)
}

// refreshActivity derives activity from the raw validity flags without renormalizing.
func (l *Loop) refreshActivity(ctx context.Context) {
	if err := l.source.Read(&l.raw); err != nil {
		logger.DebugKV(ctx, "Ingest read failed", "error", err)

		return
	}

	activity := face.ActivityFrom(rawTracking(&l.raw))
	if activity == l.Activity() {
		return
	}

	l.snapshot.Store(l.snapshot.Load().WithActivity(activity))
	l.setActivity(ctx, activity)
}

func rawTracking(raw *face.RawState) bool {
	return raw.FaceIsValid ||
		raw.EyeFollowingBlendshapesValid ||
		raw.LeftEyeIsValid ||
		raw.RightEyeIsValid
}

// setActivity stores the activity and logs only when it changed.
func (l *Loop) setActivity(ctx context.Context, activity face.Activity) {
	previous := face.Activity(l.activity.Swap(int32(activity)))
	if previous == activity {
		return
	}

	switch activity {
	case face.ActivityActive:
		logger.InfoKV(ctx, "Tracking is now active", "previous", previous.String())
	default:
		logger.WarnKV(ctx,
			"Tracking is not active, make sure the headset is connected and forwarding tracking data",
			"previous", previous.String())
	}
}
