//go:build !linux

package shm

import "time"

const pollInterval = time.Millisecond

func wait(_ *uint32, _ uint32, timeout time.Duration) {
	time.Sleep(min(timeout, pollInterval))
}

func wake(_ *uint32) {}
