package shm

import (
	"math"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Futex operations. The shared (non-private) variants are required because the
// word lives in a mapping used by several processes.
const (
	futexWait = 0
	futexWake = 1
)

// wait sleeps while *addr == val, at most for timeout. Spurious returns are fine:
// the caller re-checks the word.
func wait(addr *uint32, val uint32, timeout time.Duration) {
	ts := unix.NsecToTimespec(timeout.Nanoseconds())

	//nolint:errcheck // EAGAIN, EINTR and ETIMEDOUT all mean "check again"
	unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWait,
		uintptr(val),
		uintptr(unsafe.Pointer(&ts)),
		0,
		0,
	)
}

func wake(addr *uint32) {
	//nolint:errcheck // nothing to do when nobody waits
	unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWake,
		math.MaxInt32,
		0,
		0,
		0,
	)
}
