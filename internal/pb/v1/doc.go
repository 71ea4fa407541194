// Package pb describes the facetrack.v1 gRPC API.
//
// The service carries well-known protobuf types only (google.protobuf.Empty
// and google.protobuf.Struct), so no code generation step is needed: the
// service descriptor and the client stub are written by hand in the shape
// protoc-gen-go-grpc produces, and payload.go defines the Struct layouts.
package pb
