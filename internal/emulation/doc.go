// Package emulation provides the synthetic producer used to drive the bridge
// without a headset.
//
// An OSCReader listens for face tracking parameters sent over OSC (the
// /avatar/parameters/FT/v2 family), BuildState turns the latest values into a
// RawState, and a Producer publishes one every tick into the tracking channel.
package emulation
