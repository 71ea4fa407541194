// Package ctl implements the facetrackctl commands: status reports the
// daemon's tracking state as tables and tune changes the runtime multipliers.
package ctl
