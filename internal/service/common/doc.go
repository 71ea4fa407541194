// Package common holds helpers shared by the facetrack command-line tools.
//
// It provides a lightweight gRPC client for the daemon's telemetry service with
// timeouts and a utility to detect the current system actor (hostname/username)
// for the multipliers audit trail.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
