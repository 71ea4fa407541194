// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder (colored on terminals),
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, WarnKV, etc.).
//
// Services accept a context and extract the logger from it, so the ingest loop,
// the frame loop and the synthetic producer each log under their own name.
package logger
