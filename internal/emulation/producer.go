package emulation

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/logger"
)

// Producer timings.
const (
	DefaultInterval = 20 * time.Millisecond
	DefaultWarmup   = time.Second

	// progressEvery is how many iterations pass between two progress logs.
	progressEvery = 100
)

// Publisher stores a record and signals the consumer.
type Publisher interface {
	Publish(state *face.RawState) error
}

// Producer periodically publishes synthetic records.
type Producer struct {
	source    ValueSource
	publisher Publisher
	interval  time.Duration
	warmup    time.Duration
}

// NewProducer creates a producer. Non-positive timings fall back to the defaults.
func NewProducer(source ValueSource, publisher Publisher, interval, warmup time.Duration) *Producer {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if warmup < 0 {
		warmup = DefaultWarmup
	}

	return &Producer{
		source:    source,
		publisher: publisher,
		interval:  interval,
		warmup:    warmup,
	}
}

// Run waits for the warmup, then publishes one record per interval until ctx ends.
// It returns the number of published records.
func (p *Producer) Run(ctx context.Context) (int, error) {
	logger.InfoKV(ctx, "Synthetic producer warming up", "warmup", p.warmup.String())

	select {
	case <-ctx.Done():
		return 0, nil
	case <-time.After(p.warmup):
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	iterations := 0

	for {
		state := BuildState(p.source)
		if err := p.publisher.Publish(&state); err != nil {
			return iterations, fmt.Errorf("publish synthetic state: %w", err)
		}

		iterations++
		if iterations%progressEvery == 0 {
			logger.InfoKV(ctx, "Synthetic producer running", "iterations", iterations)
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}

		if ctx.Err() != nil {
			logger.InfoKV(ctx, "Synthetic producer stopped", "iterations", iterations)

			return iterations, nil
		}
	}
}
