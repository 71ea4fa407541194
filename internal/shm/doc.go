// Package shm maps named shared-memory segments and named auto-reset signals.
//
// Segments are regular files under a memory-backed directory (usually /dev/shm)
// mapped MAP_SHARED, so the producer and the consumer see the same bytes. This is
// the only package that touches raw mapped memory.
//
// A Signal is a 4-byte segment holding a sequence word. Set increments the word
// and wakes waiters; Wait returns true once per observed change, which gives the
// auto-reset behavior: any number of Set calls between two waits collapse into
// one. On Linux waiters sleep on a futex, elsewhere they poll.
package shm
