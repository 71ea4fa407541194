package face

// FrameState is the output of the last mapped frame together with its input.
type FrameState struct {
	// SessionID identifies the daemon run that produced the frame.
	SessionID string
	// Frames counts mapped frames since the session started.
	Frames uint64
	// Snapshot is the expression snapshot the frame was mapped from.
	Snapshot Snapshot
	// Eyes is the eye-gaze sink after the frame.
	Eyes EyesState
	// Mouth is the mouth sink after the frame.
	Mouth MouthState
}
