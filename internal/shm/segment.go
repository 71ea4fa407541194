package shm

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrSizeMismatch is returned by Attach when the existing segment has a different size.
var ErrSizeMismatch = errors.New("segment size mismatch")

const segmentPerm = 0o666

// Segment is a shared mapping of a file.
type Segment struct {
	path string

	mu   sync.Mutex
	data []byte
}

// Create creates (or reuses) the segment at path, sizes it to size bytes and maps it.
// Existing content is kept when the size already matches.
func Create(path string, size int) (*Segment, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_CLOEXEC, segmentPerm)
	if err != nil {
		return nil, fmt.Errorf("create segment %s: %w", path, err)
	}

	defer unix.Close(fd) //nolint:errcheck // the mapping outlives the descriptor

	if err = unix.Ftruncate(fd, int64(size)); err != nil {
		return nil, fmt.Errorf("resize segment %s: %w", path, err)
	}

	return mapSegment(fd, path, size)
}

// Attach maps an existing segment. The segment must be exactly size bytes long.
func Attach(path string, size int) (*Segment, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open segment %s: %w", path, err)
	}

	defer unix.Close(fd) //nolint:errcheck // the mapping outlives the descriptor

	var st unix.Stat_t
	if err = unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("stat segment %s: %w", path, err)
	}

	if st.Size != int64(size) {
		return nil, fmt.Errorf("attach segment %s (%d bytes, want %d): %w", path, st.Size, size, ErrSizeMismatch)
	}

	return mapSegment(fd, path, size)
}

func mapSegment(fd int, path string, size int) (*Segment, error) {
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("map segment %s: %w", path, err)
	}

	return &Segment{path: path, data: data}, nil
}

// Path returns the file backing the segment.
func (s *Segment) Path() string {
	return s.path
}

// Bytes returns the mapped memory, or nil once the segment is closed.
// The slice must not be used after Close.
func (s *Segment) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data
}

// Close unmaps the segment. The backing file is left in place for other processes.
// Calling Close more than once is a no-op.
func (s *Segment) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil
	}

	data := s.data
	s.data = nil

	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("unmap segment %s: %w", s.path, err)
	}

	return nil
}
