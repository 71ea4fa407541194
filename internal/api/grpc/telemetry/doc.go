// Package telemetry implements the gRPC transport for the daemon's telemetry.
//
// It adapts domain types to structpb payloads and exposes a server that calls
// into a provided business-service interface.
package telemetry
