package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/facetrack/internal/domain/face"
)

// fakeSource feeds queued records to the loop; each queued record is one signal.
type fakeSource struct {
	mu       sync.Mutex
	pending  []face.RawState
	current  face.RawState
	readErr  error
	panicOn  int
	reads    int
	block    chan struct{}
	signaled chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{signaled: make(chan struct{}, 64)}
}

func (f *fakeSource) publish(state face.RawState) {
	f.mu.Lock()
	f.pending = append(f.pending, state)
	f.mu.Unlock()

	f.signaled <- struct{}{}
}

// setCurrent changes the record without raising the signal.
func (f *fakeSource) setCurrent(state face.RawState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = state
}

func (f *fakeSource) WaitForUpdate(timeout time.Duration) bool {
	if f.block != nil {
		<-f.block
	}

	select {
	case <-f.signaled:
		f.mu.Lock()
		f.current, f.pending = f.pending[0], f.pending[1:]
		f.mu.Unlock()

		return true
	case <-time.After(timeout):
		return false
	}
}

func (f *fakeSource) Read(dst *face.RawState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reads++
	if f.panicOn > 0 && f.reads == f.panicOn {
		panic("torn record")
	}

	if f.readErr != nil {
		return f.readErr
	}

	*dst = f.current

	return nil
}

func trackingState() face.RawState {
	state := face.IdentityRawState()
	state.FaceIsValid = true
	state.EyeFollowingBlendshapesValid = true
	state.LeftEyeIsValid = true
	state.RightEyeIsValid = true
	state.ExpressionWeights[face.JawDrop] = 0.5

	return state
}

func startLoop(t *testing.T, source Source) *Loop {
	t.Helper()

	loop := New(source, Config{WaitTimeout: 5 * time.Millisecond, JoinTimeout: time.Second})
	require.NoError(t, loop.Start(context.Background()))
	t.Cleanup(func() { _ = loop.Stop() })

	return loop
}

// TestLoop_PublishesSnapshot normalizes a signaled record and reports activity.
func TestLoop_PublishesSnapshot(t *testing.T) {
	t.Parallel()

	source := newFakeSource()

	loop := New(source, Config{WaitTimeout: 5 * time.Millisecond})
	require.Equal(t, face.ActivityUnknown, loop.Activity())
	require.NotNil(t, loop.Snapshot())
	require.NoError(t, loop.Start(context.Background()))
	t.Cleanup(func() { _ = loop.Stop() })

	source.publish(trackingState())

	require.Eventually(t, func() bool {
		return loop.Snapshot().Seq == 1
	}, time.Second, time.Millisecond)

	snapshot := loop.Snapshot()
	require.Equal(t, face.ActivityActive, snapshot.Activity)
	require.Equal(t, face.ActivityActive, loop.Activity())
	require.InDelta(t, 0.5, snapshot.Set[face.JawDrop], 1e-6)
	require.InDelta(t, 0.9, snapshot.Set[face.EyesClosedL], 1e-6)
}

// TestLoop_TimeoutUsesRawFlags derives activity from the raw flags without renormalizing.
func TestLoop_TimeoutUsesRawFlags(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	loop := startLoop(t, source)

	source.publish(trackingState())
	require.Eventually(t, func() bool {
		return loop.Activity() == face.ActivityActive
	}, time.Second, time.Millisecond)

	before := loop.Snapshot()

	source.setCurrent(face.IdentityRawState())
	require.Eventually(t, func() bool {
		return loop.Activity() == face.ActivityInactive
	}, time.Second, time.Millisecond)

	after := loop.Snapshot()
	require.Equal(t, before.Seq, after.Seq)
	require.Equal(t, before.Set, after.Set)
	require.Equal(t, face.ActivityInactive, after.Activity)
}

// TestLoop_SurvivesBadTicks keeps running after read errors and panics.
func TestLoop_SurvivesBadTicks(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.panicOn = 1
	source.readErr = errors.New("boom")

	loop := startLoop(t, source)

	source.publish(trackingState())

	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()

		return source.reads > 3
	}, time.Second, time.Millisecond)

	source.mu.Lock()
	source.readErr = nil
	source.mu.Unlock()

	source.publish(trackingState())
	require.Eventually(t, func() bool {
		return loop.Snapshot().Seq >= 1
	}, time.Second, time.Millisecond)
}

// TestLoop_StopResetsActivity returns to Unknown and tolerates repeated calls.
func TestLoop_StopResetsActivity(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	loop := New(source, Config{WaitTimeout: 5 * time.Millisecond})
	require.NoError(t, loop.Start(context.Background()))
	require.ErrorIs(t, loop.Start(context.Background()), ErrAlreadyRunning)

	source.publish(trackingState())
	require.Eventually(t, func() bool {
		return loop.Activity() == face.ActivityActive
	}, time.Second, time.Millisecond)

	require.NoError(t, loop.Stop())
	require.NoError(t, loop.Stop())
	require.Equal(t, face.ActivityUnknown, loop.Activity())
	require.Equal(t, face.ActivityUnknown, loop.Snapshot().Activity)
}

// TestLoop_StopJoinTimeout reports a loop stuck in a wait as a join timeout.
func TestLoop_StopJoinTimeout(t *testing.T) {
	t.Parallel()

	source := newFakeSource()
	source.block = make(chan struct{})

	loop := New(source, Config{WaitTimeout: 5 * time.Millisecond, JoinTimeout: 20 * time.Millisecond})
	require.NoError(t, loop.Start(context.Background()))

	require.ErrorIs(t, loop.Stop(), ErrJoinTimeout)
	require.ErrorIs(t, loop.Start(context.Background()), ErrAlreadyRunning)

	close(source.block)
	require.Eventually(t, func() bool {
		loop.mu.Lock()
		defer loop.mu.Unlock()

		return !loop.lingering()
	}, time.Second, time.Millisecond)
}

// TestLoop_ContextCancel exits when the parent context ends.
func TestLoop_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	loop := New(newFakeSource(), Config{WaitTimeout: 5 * time.Millisecond})
	require.NoError(t, loop.Start(ctx))

	cancel()
	require.Eventually(t, func() bool {
		loop.mu.Lock()
		defer loop.mu.Unlock()

		return !loop.lingering()
	}, time.Second, time.Millisecond)
	require.NoError(t, loop.Stop())
}
