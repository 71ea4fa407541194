// Package integration runs the facetrack binaries' services together over
// real shared memory, UDP and gRPC.
package integration
