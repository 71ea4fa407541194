// Package ingest runs the background loop that turns producer updates into
// published expression snapshots.
//
// The loop owns the Normalizer and the working set. After every pass it
// publishes a fresh immutable face.Snapshot through an atomic pointer, so the
// per-frame mapper always reads a complete set without locking.
package ingest
