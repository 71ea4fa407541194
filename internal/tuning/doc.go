// Package tuning holds the runtime multipliers read by the avatar mapper on
// every frame and changed by operators through the telemetry service.
package tuning
