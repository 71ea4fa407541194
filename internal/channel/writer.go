package channel

import (
	"errors"
	"fmt"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/shm"
)

// Writer is the producer side of the shared tracking state.
type Writer struct {
	segment *shm.Segment
	signal  *shm.Signal
}

// Create creates (or reuses) the segment and the signal described by cfg.
func Create(cfg Config) (*Writer, error) {
	segment, err := shm.Create(cfg.SegmentPath(), face.RawStateSize)
	if err != nil {
		return nil, fmt.Errorf("create tracking channel: %w", err)
	}

	signal, err := shm.CreateSignal(cfg.SignalPath())
	if err != nil {
		_ = segment.Close()

		return nil, fmt.Errorf("create tracking channel: %w", err)
	}

	return &Writer{segment: segment, signal: signal}, nil
}

// Write stores state as the latest record. It does not raise the signal.
// The record is encoded off to the side and copied in one pass to keep the
// window for torn reads short.
func (w *Writer) Write(state *face.RawState) error {
	data := w.segment.Bytes()
	if data == nil {
		return ErrClosed
	}

	var buf [face.RawStateSize]byte
	if err := state.Encode(buf[:]); err != nil {
		return err
	}

	copy(data, buf[:])

	return nil
}

// Signal tells the consumer that a new record was written.
func (w *Writer) Signal() {
	w.signal.Set()
}

// Publish writes state and raises the signal.
func (w *Writer) Publish(state *face.RawState) error {
	if err := w.Write(state); err != nil {
		return err
	}

	w.Signal()

	return nil
}

// Close releases the mapping. The named objects stay in place.
func (w *Writer) Close() error {
	return errors.Join(w.signal.Close(), w.segment.Close())
}
