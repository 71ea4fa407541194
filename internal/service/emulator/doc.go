// Package emulator runs the synthetic producer: it listens for OSC avatar
// parameters and publishes them to the shared tracking channel as if a
// headset were connected.
package emulator
