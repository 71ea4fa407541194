package emulation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/facetrack/internal/domain/face"
)

type recordingPublisher struct {
	mu     sync.Mutex
	states []face.RawState
	err    error
	onTick func(n int)
}

func (p *recordingPublisher) Publish(state *face.RawState) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}

	p.states = append(p.states, *state)
	if p.onTick != nil {
		p.onTick(len(p.states))
	}

	return nil
}

// TestProducer_Run publishes records until the context ends.
func TestProducer_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher := &recordingPublisher{
		onTick: func(n int) {
			if n == 5 {
				cancel()
			}
		},
	}

	source := mapSource{ParameterAddress("JawOpen"): "0.9"}

	iterations, err := NewProducer(source, publisher, time.Millisecond, 0).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, iterations)
	require.Len(t, publisher.states, 5)
	require.Equal(t, float32(0.9), publisher.states[0].ExpressionWeights[face.JawDrop])
}

// TestProducer_RunCanceledDuringWarmup publishes nothing when stopped early.
func TestProducer_RunCanceledDuringWarmup(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	publisher := new(recordingPublisher)

	iterations, err := NewProducer(mapSource{}, publisher, time.Millisecond, time.Hour).Run(ctx)
	require.NoError(t, err)
	require.Zero(t, iterations)
	require.Empty(t, publisher.states)
}

// TestProducer_RunPublishError stops on the first failed publish.
func TestProducer_RunPublishError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	_, err := NewProducer(mapSource{}, &recordingPublisher{err: boom}, time.Millisecond, 0).Run(context.Background())
	require.ErrorIs(t, err, boom)
}
