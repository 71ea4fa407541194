package shm

import (
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"
)

// SignalSize is the size of the segment backing a Signal.
const SignalSize = 4

// Signal is a named auto-reset signal shared between processes.
// Set may be called from any goroutine; Wait is meant for a single waiter.
type Signal struct {
	seg    *Segment
	word   *uint32
	seen   uint32
	closed atomic.Bool
}

// CreateSignal creates (or reuses) the signal at path.
func CreateSignal(path string) (*Signal, error) {
	seg, err := Create(path, SignalSize)
	if err != nil {
		return nil, fmt.Errorf("create signal: %w", err)
	}

	return newSignal(seg), nil
}

// AttachSignal opens an existing signal. Signals raised before the attach are not observed.
func AttachSignal(path string) (*Signal, error) {
	seg, err := Attach(path, SignalSize)
	if err != nil {
		return nil, fmt.Errorf("attach signal: %w", err)
	}

	return newSignal(seg), nil
}

func newSignal(seg *Segment) *Signal {
	// The mapping is page aligned, so the word is suitably aligned for atomics.
	word := (*uint32)(unsafe.Pointer(&seg.Bytes()[0]))

	return &Signal{
		seg:  seg,
		word: word,
		seen: atomic.LoadUint32(word),
	}
}

// Set raises the signal and wakes the waiter, if any.
func (s *Signal) Set() {
	if s.closed.Load() {
		return
	}

	atomic.AddUint32(s.word, 1)
	wake(s.word)
}

// Wait blocks until the signal is raised or timeout elapses.
// It returns true and resets the signal when it was raised.
func (s *Signal) Wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for !s.closed.Load() {
		current := atomic.LoadUint32(s.word)
		if current != s.seen {
			s.seen = current

			return true
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}

		wait(s.word, current, remaining)
	}

	return false
}

// Close releases the mapping. Wait and Set become no-ops afterwards.
func (s *Signal) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	return s.seg.Close()
}
