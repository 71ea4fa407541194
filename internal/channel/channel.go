package channel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/logger"
	"github.com/oshokin/facetrack/internal/shm"
)

var (
	// ErrChannelUnavailable is returned by Open when every attempt failed.
	ErrChannelUnavailable = errors.New("tracking channel unavailable")
	// ErrClosed is returned when reading from a closed channel.
	ErrClosed = errors.New("tracking channel closed")
)

// Config locates the shared segment and signal.
type Config struct {
	// Dir is the directory holding the named objects, usually /dev/shm.
	Dir string
	// SegmentName is the name of the state segment.
	SegmentName string
	// SignalName is the name of the update signal.
	SignalName string
	// MaxAttempts bounds the number of attach attempts made by Open.
	MaxAttempts int
	// RetryInterval is the pause between two attempts.
	RetryInterval time.Duration
}

// SegmentPath returns the file backing the state segment.
func (c Config) SegmentPath() string {
	return filepath.Join(c.Dir, c.SegmentName)
}

// SignalPath returns the file backing the update signal.
func (c Config) SignalPath() string {
	return filepath.Join(c.Dir, c.SignalName)
}

type attachFunc func(cfg Config) (*shm.Segment, *shm.Signal, error)

type options struct {
	attach attachFunc
}

// Option customizes Open.
type Option func(*options)

// withAttach replaces the function used for a single attach attempt.
func withAttach(fn attachFunc) Option {
	return func(o *options) {
		o.attach = fn
	}
}

// Channel is the consumer side of the shared tracking state.
type Channel struct {
	segment *shm.Segment
	signal  *shm.Signal
}

// Open attaches to the segment and the signal, retrying up to cfg.MaxAttempts
// times with cfg.RetryInterval between attempts.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Channel, error) {
	o := options{attach: attach}
	for _, opt := range opts {
		opt(&o)
	}

	attempts := max(cfg.MaxAttempts, 1)

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		segment, signal, err := o.attach(cfg)
		if err == nil {
			logger.DebugKV(ctx, "Tracking channel opened",
				"segment", cfg.SegmentPath(),
				"attempt", attempt)

			return &Channel{segment: segment, signal: signal}, nil
		}

		lastErr = err

		logger.DebugKV(ctx, "Tracking channel not ready",
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err)

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open tracking channel: %w", ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrChannelUnavailable, attempts, lastErr)
}

func attach(cfg Config) (*shm.Segment, *shm.Signal, error) {
	segment, err := shm.Attach(cfg.SegmentPath(), face.RawStateSize)
	if err != nil {
		return nil, nil, err
	}

	signal, err := shm.AttachSignal(cfg.SignalPath())
	if err != nil {
		_ = segment.Close()

		return nil, nil, err
	}

	return segment, signal, nil
}

// Read decodes the latest record into dst.
func (c *Channel) Read(dst *face.RawState) error {
	if c.segment == nil {
		return ErrClosed
	}

	data := c.segment.Bytes()
	if data == nil {
		return ErrClosed
	}

	return dst.Decode(data)
}

// WaitForUpdate blocks until the producer signals a write or timeout elapses.
func (c *Channel) WaitForUpdate(timeout time.Duration) bool {
	if c.signal == nil {
		return false
	}

	return c.signal.Wait(timeout)
}

// Close releases the segment and the signal. It is safe to call more than once
// and on a partially opened channel.
func (c *Channel) Close() error {
	var errs []error

	if c.signal != nil {
		errs = append(errs, c.signal.Close())
	}

	if c.segment != nil {
		errs = append(errs, c.segment.Close())
	}

	return errors.Join(errs...)
}
