package normalize

import (
	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/gaze"
)

// Correction constants. They were tuned empirically against the headset's output.
const (
	ambiguousClosedThreshold float32 = 0.25
	closedBias               float32 = 0.9
	closedGain               float32 = 3
	squeezeMargin            float32 = 0.01
	deadZone                 float32 = 0.5
	browGain                 float32 = 3

	lookUpScale    float32 = 0.55
	lookDownScale  float32 = 1.5
	lookSideScale  float32 = 0.85
	lookNormalizer float32 = 0.75

	// pitchRange and yawRange are the angles, in degrees, mapped to a full look weight.
	pitchRange = 29.0
	yawRange   = 27.0
)

// GazeSample is the gaze of one eye in degrees, recomputed on every pass.
type GazeSample struct {
	Yaw   float64
	Pitch float64
}

// Result describes what a normalization pass took from the raw record.
type Result struct {
	// LeftEye is true when the left eye pose was copied.
	LeftEye bool
	// RightEye is true when the right eye pose was copied.
	RightEye bool
	// Blendshapes is true when the expression weights were copied.
	Blendshapes bool

	// LeftGaze and RightGaze are derived from the carried eye orientations.
	LeftGaze  GazeSample
	RightGaze GazeSample
}

// Tracking reports whether any part of the record was valid.
func (r Result) Tracking() bool {
	return r.LeftEye || r.RightEye || r.Blendshapes
}

// Normalizer holds the raw values carried between passes.
// It is not safe for concurrent use; the ingest loop owns one instance.
type Normalizer struct {
	carried face.ExpressionSet
}

// New returns a Normalizer whose carried set is all zero.
func New() *Normalizer {
	return new(Normalizer)
}

// Apply merges raw into the carried values and writes the corrected set to out.
func (n *Normalizer) Apply(raw *face.RawState, out *face.ExpressionSet) Result {
	var result Result

	if raw.LeftEyeIsValid {
		n.carried.SetPose(face.LeftRotX, face.LeftPosX, raw.LeftEyePose)
		result.LeftEye = true
	}

	if raw.RightEyeIsValid {
		n.carried.SetPose(face.RightRotX, face.RightPosX, raw.RightEyePose)
		result.RightEye = true
	}

	if raw.FaceIsValid && raw.EyeFollowingBlendshapesValid {
		copy(n.carried[:face.ExpressionCount], raw.ExpressionWeights[:])
		result.Blendshapes = true
	}

	*out = n.carried
	result.LeftGaze, result.RightGaze = correct(out)

	return result
}

// correct applies the heuristic corrections in place, in their fixed order.
func correct(s *face.ExpressionSet) (left, right GazeSample) {
	correctEyelid(s, face.EyesClosedL, face.EyesLookDownL, face.EyesLookUpL)
	correctEyelid(s, face.EyesClosedR, face.EyesLookDownR, face.EyesLookUpR)

	clampSqueeze(s, face.EyesClosedL, face.LidTightenerL)
	clampSqueeze(s, face.EyesClosedR, face.LidTightenerR)

	s[face.UpperLidRaiserL] = max(0, s[face.UpperLidRaiserL]-deadZone)
	s[face.UpperLidRaiserR] = max(0, s[face.UpperLidRaiserR]-deadZone)
	s[face.LidTightenerL] = max(0, s[face.LidTightenerL]-deadZone)
	s[face.LidTightenerR] = max(0, s[face.LidTightenerR]-deadZone)

	for _, brow := range [...]face.Expression{
		face.InnerBrowRaiserL, face.BrowLowererL, face.OuterBrowRaiserL,
		face.InnerBrowRaiserR, face.BrowLowererR, face.OuterBrowRaiserR,
	} {
		s[brow] = min(1, s[brow]*browGain)
	}

	s[face.EyesLookUpL] *= lookUpScale
	s[face.EyesLookUpR] *= lookUpScale
	s[face.EyesLookDownL] *= lookDownScale
	s[face.EyesLookDownR] *= lookDownScale
	s[face.EyesLookLeftL] *= lookSideScale
	s[face.EyesLookRightL] *= lookSideScale
	s[face.EyesLookLeftR] *= lookSideScale
	s[face.EyesLookRightR] *= lookSideScale

	left = eyeGaze(s, face.LeftRotX)
	right = eyeGaze(s, face.RightRotX)

	// The angle-derived weights replace the rescaled ones above.
	lookFromAngles(s, left, face.EyesLookLeftL, face.EyesLookRightL, face.EyesLookUpL, face.EyesLookDownL)
	lookFromAngles(s, right, face.EyesLookLeftR, face.EyesLookRightR, face.EyesLookUpR, face.EyesLookDownR)

	return left, right
}

// correctEyelid turns the closure weight into the openness-like value the mapper expects.
// Equal look-up and look-down weights with a high closure are read as an open eye.
func correctEyelid(s *face.ExpressionSet, closed, lookDown, lookUp face.Expression) {
	if s[lookDown] == s[lookUp] && s[closed] > ambiguousClosedThreshold {
		s[closed] = 0

		return
	}

	s[closed] = closedBias - (s[closed]*closedGain)/(1+s[lookDown]*closedGain)
}

// clampSqueeze keeps squeeze strictly below what the eyelid value allows.
func clampSqueeze(s *face.ExpressionSet, closed, squeeze face.Expression) {
	if limit := 1 - s[closed]; limit < s[squeeze] {
		s[squeeze] = limit - squeezeMargin
	}
}

func eyeGaze(s *face.ExpressionSet, rot face.Expression) GazeSample {
	q := s.Quat(rot)
	yaw, pitch := gaze.QuaternionToYawPitch(float64(q.X), float64(q.Y), float64(q.Z), float64(q.W))

	return GazeSample{Yaw: yaw, Pitch: pitch}
}

// lookFromAngles maps pitch onto the left/right weights and yaw onto up/down.
func lookFromAngles(s *face.ExpressionSet, g GazeSample, left, right, up, down face.Expression) {
	if g.Pitch > 0 {
		s[left] = min(1, float32(g.Pitch/pitchRange)) * lookNormalizer
		s[right] = 0
	} else {
		s[left] = 0
		s[right] = min(1, float32(-g.Pitch/pitchRange)) * lookNormalizer
	}

	if g.Yaw > 0 {
		s[up] = min(1, float32(g.Yaw/yawRange)) * lookNormalizer
		s[down] = 0
	} else {
		s[up] = 0
		s[down] = min(1, float32(-g.Yaw/yawRange)) * lookNormalizer
	}
}
