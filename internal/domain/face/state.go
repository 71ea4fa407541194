package face

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ConfidenceCount is the number of expression confidence values in RawState.
const ConfidenceCount = 2

// RawState is the record written by the external tracking producer.
// Its byte layout (see RawStateSize and the offsets below) is shared with the
// producer and must not change.
type RawState struct {
	FaceIsValid                  bool
	EyeFollowingBlendshapesValid bool
	ExpressionWeights            [ExpressionCount]float32
	ExpressionConfidences        [ConfidenceCount]float32
	LeftEyeIsValid               bool
	RightEyeIsValid              bool
	LeftEyePose                  Pose
	RightEyePose                 Pose
	LeftEyeConfidence            float32
	RightEyeConfidence           float32
}

// Byte offsets of the RawState fields. Booleans are single bytes, floats are
// 4-byte IEEE 754 in the host's native byte order, padding follows C alignment.
const (
	offsetFaceIsValid           = 0
	offsetBlendshapesValid      = 1
	offsetExpressionWeights     = 4
	offsetExpressionConfidences = offsetExpressionWeights + ExpressionCount*4
	offsetLeftEyeIsValid        = offsetExpressionConfidences + ConfidenceCount*4
	offsetRightEyeIsValid       = offsetLeftEyeIsValid + 1
	offsetLeftEyePose           = offsetLeftEyeIsValid + 4
	offsetRightEyePose          = offsetLeftEyePose + poseSize
	offsetLeftEyeConfidence     = offsetRightEyePose + poseSize
	offsetRightEyeConfidence    = offsetLeftEyeConfidence + 4

	poseSize = 7 * 4

	// RawStateSize is the exact size of the shared segment.
	RawStateSize = offsetRightEyeConfidence + 4
)

// ErrShortBuffer is returned when a buffer cannot hold a RawState.
var ErrShortBuffer = errors.New("buffer shorter than raw state")

// IdentityRawState returns an all-invalid state whose eye poses are identity.
func IdentityRawState() RawState {
	return RawState{
		LeftEyePose:  IdentityPose,
		RightEyePose: IdentityPose,
	}
}

// Decode fills s from the first RawStateSize bytes of b.
func (s *RawState) Decode(b []byte) error {
	if len(b) < RawStateSize {
		return fmt.Errorf("decode raw state (%d bytes): %w", len(b), ErrShortBuffer)
	}

	b = b[:RawStateSize]

	s.FaceIsValid = b[offsetFaceIsValid] != 0
	s.EyeFollowingBlendshapesValid = b[offsetBlendshapesValid] != 0

	for i := range s.ExpressionWeights {
		s.ExpressionWeights[i] = getFloat(b, offsetExpressionWeights+i*4)
	}

	for i := range s.ExpressionConfidences {
		s.ExpressionConfidences[i] = getFloat(b, offsetExpressionConfidences+i*4)
	}

	s.LeftEyeIsValid = b[offsetLeftEyeIsValid] != 0
	s.RightEyeIsValid = b[offsetRightEyeIsValid] != 0
	s.LeftEyePose = getPose(b, offsetLeftEyePose)
	s.RightEyePose = getPose(b, offsetRightEyePose)
	s.LeftEyeConfidence = getFloat(b, offsetLeftEyeConfidence)
	s.RightEyeConfidence = getFloat(b, offsetRightEyeConfidence)

	return nil
}

// Encode writes s into the first RawStateSize bytes of b. Padding bytes are zeroed.
func (s *RawState) Encode(b []byte) error {
	if len(b) < RawStateSize {
		return fmt.Errorf("encode raw state (%d bytes): %w", len(b), ErrShortBuffer)
	}

	b = b[:RawStateSize]
	clear(b)

	b[offsetFaceIsValid] = boolByte(s.FaceIsValid)
	b[offsetBlendshapesValid] = boolByte(s.EyeFollowingBlendshapesValid)

	for i, w := range s.ExpressionWeights {
		putFloat(b, offsetExpressionWeights+i*4, w)
	}

	for i, c := range s.ExpressionConfidences {
		putFloat(b, offsetExpressionConfidences+i*4, c)
	}

	b[offsetLeftEyeIsValid] = boolByte(s.LeftEyeIsValid)
	b[offsetRightEyeIsValid] = boolByte(s.RightEyeIsValid)
	putPose(b, offsetLeftEyePose, s.LeftEyePose)
	putPose(b, offsetRightEyePose, s.RightEyePose)
	putFloat(b, offsetLeftEyeConfidence, s.LeftEyeConfidence)
	putFloat(b, offsetRightEyeConfidence, s.RightEyeConfidence)

	return nil
}

func getFloat(b []byte, off int) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(b[off : off+4]))
}

func putFloat(b []byte, off int, v float32) {
	binary.NativeEndian.PutUint32(b[off:off+4], math.Float32bits(v))
}

func getPose(b []byte, off int) Pose {
	return Pose{
		Orientation: Quat{
			X: getFloat(b, off),
			Y: getFloat(b, off+4),
			Z: getFloat(b, off+8),
			W: getFloat(b, off+12),
		},
		Position: Vec3{
			X: getFloat(b, off+16),
			Y: getFloat(b, off+20),
			Z: getFloat(b, off+24),
		},
	}
}

func putPose(b []byte, off int, p Pose) {
	putFloat(b, off, p.Orientation.X)
	putFloat(b, off+4, p.Orientation.Y)
	putFloat(b, off+8, p.Orientation.Z)
	putFloat(b, off+12, p.Orientation.W)
	putFloat(b, off+16, p.Position.X)
	putFloat(b, off+20, p.Position.Y)
	putFloat(b, off+24, p.Position.Z)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}
