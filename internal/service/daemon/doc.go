// Package daemon wires the facetrack bridge: it attaches to the shared tracking
// channel, runs the ingest loop and the per-frame avatar mapping, and exposes
// the result through the telemetry gRPC service.
package daemon
