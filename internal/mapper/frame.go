package mapper

import "github.com/oshokin/facetrack/internal/domain/face"

// Frame runs one host frame: it raises or clears the tracking flags from the
// ingest activity, then updates the mouth and the eyes from snapshot.
// This is the only place where an eye's tracking latch is raised again.
func (m Mapper) Frame(
	snapshot *face.Snapshot,
	mult face.Multipliers,
	eyes *face.EyesState,
	mouth *face.MouthState,
	deltaTime float64,
) {
	active := snapshot.Activity == face.ActivityActive

	mouth.IsDeviceActive = active
	m.UpdateMouth(&snapshot.Set, mouth)

	eyes.IsEyeTrackingActive = active
	eyes.Left.IsTracking = active
	eyes.Right.IsTracking = active

	m.UpdateEyes(&snapshot.Set, mult, eyes)

	eyes.Timestamp += deltaTime
}
