// Package face contains the core domain types of the tracking bridge.
//
// It defines the raw record shared with the external tracking producer
// (RawState and its fixed byte layout), the normalized expression set consumed by
// the avatar mapper, the tracking activity tri-state, the runtime multipliers and
// the host-owned output sinks (EyesState, MouthState).
package face
