package mapper

import (
	"math"

	"github.com/oshokin/facetrack/internal/domain/face"
)

// Side selects an eye.
type Side int

// Eye sides.
const (
	Left Side = iota
	Right
)

// EyeData is the per-eye sample read from the expression set before gating.
type EyeData struct {
	Position face.Vec3
	Rotation face.Quat
	Open     float32
	Squeeze  float32
	Wide     float32
}

// Valid reports whether every gated value is finite and the rotation is in range.
func (d EyeData) Valid() bool {
	return face.IsFinite(d.Open) &&
		d.Position.IsFinite() &&
		face.IsFinite(d.Wide) &&
		face.IsFinite(d.Squeeze) &&
		d.Rotation.IsValid()
}

// Mapper maps expression sets onto the host sinks. The zero value applies the
// corrected right eye rotation; set LegacyRightEyeRotation to keep the
// original behavior.
type Mapper struct {
	LegacyRightEyeRotation bool
}

// EyeData reads the sample of one eye. The position y axis and the rotation
// x/y/z components are negated to move into the host's coordinate system.
func (m Mapper) EyeData(set *face.ExpressionSet, side Side) EyeData {
	switch side {
	case Right:
		pos := set.Vec3(face.RightPosX)
		rot := set.Quat(face.RightRotX)

		if m.LegacyRightEyeRotation {
			left := set.Quat(face.LeftRotX)
			rot.X, rot.Y, rot.Z = left.X, left.Y, left.Z
		}

		return EyeData{
			Position: face.Vec3{X: pos.X, Y: -pos.Y, Z: pos.Z},
			Rotation: face.Quat{X: -rot.X, Y: -rot.Y, Z: -rot.Z, W: rot.W},
			Open:     max(0, set[face.EyesClosedR]),
			Squeeze:  set[face.LidTightenerR],
			Wide:     set[face.UpperLidRaiserR],
		}
	default:
		pos := set.Vec3(face.LeftPosX)
		rot := set.Quat(face.LeftRotX)

		return EyeData{
			Position: face.Vec3{X: pos.X, Y: -pos.Y, Z: pos.Z},
			Rotation: face.Quat{X: -rot.X, Y: -rot.Y, Z: -rot.Z, W: rot.W},
			Open:     max(0, set[face.EyesClosedL]),
			Squeeze:  set[face.LidTightenerL],
			Wide:     set[face.UpperLidRaiserL],
		}
	}
}

// eyeChannels names the expression slots feeding the per-eye extras.
type eyeChannels struct {
	cornerPuller    face.Expression
	cornerDepressor face.Expression
	innerBrowRaiser face.Expression
	outerBrowRaiser face.Expression
	browLowerer     face.Expression
}

var (
	leftChannels = eyeChannels{
		cornerPuller:    face.LipCornerPullerL,
		cornerDepressor: face.LipCornerDepressorL,
		innerBrowRaiser: face.InnerBrowRaiserL,
		outerBrowRaiser: face.OuterBrowRaiserL,
		browLowerer:     face.BrowLowererL,
	}
	rightChannels = eyeChannels{
		cornerPuller:    face.LipCornerPullerR,
		cornerDepressor: face.LipCornerDepressorR,
		innerBrowRaiser: face.InnerBrowRaiserR,
		outerBrowRaiser: face.OuterBrowRaiserR,
		browLowerer:     face.BrowLowererR,
	}
)

// UpdateEyes writes both eyes and the combined eye.
// The IsTracking flags already in eyes act as a latch: an eye that is not
// tracking stays that way here, only the frame driver raises it again.
func (m Mapper) UpdateEyes(set *face.ExpressionSet, mult face.Multipliers, eyes *face.EyesState) {
	m.updateEye(set, mult, &eyes.Left, m.EyeData(set, Left), leftChannels)
	m.updateEye(set, mult, &eyes.Right, m.EyeData(set, Right), rightChannels)

	combined := &eyes.Combined

	if eyes.Left.IsTracking || eyes.Right.IsTracking {
		tracked := eyes.Right
		if eyes.Left.IsTracking {
			tracked = eyes.Left
		}

		combined.Position = tracked.Position
		combined.Rotation = tracked.Rotation
		combined.IsTracking = true
	} else {
		combined.IsTracking = false
	}

	// Overwrites the branch above regardless of which eye is tracking.
	combined.IsTracking = eyes.Left.IsTracking || eyes.Right.IsTracking
	setVec3(&combined.Position, eyes.Left.Position.Add(eyes.Right.Position).Scale(0.5))
	setQuat(&combined.Rotation, face.Slerp(eyes.Left.Rotation, eyes.Right.Rotation, 0.5))
	combined.PupilDiameter = face.PupilDiameter

	setFloat(&combined.Openness, average(eyes.Left.Openness, eyes.Right.Openness))
	setFloat(&combined.Squeeze, average(eyes.Left.Squeeze, eyes.Right.Squeeze))
	setFloat(&combined.Widen, average(eyes.Left.Widen, eyes.Right.Widen))
	setFloat(&combined.Frown, average(eyes.Left.Frown, eyes.Right.Frown))
	setFloat(&combined.InnerBrowVertical, average(eyes.Left.InnerBrowVertical, eyes.Right.InnerBrowVertical))
	setFloat(&combined.OuterBrowVertical, average(eyes.Left.OuterBrowVertical, eyes.Right.OuterBrowVertical))
}

func (m Mapper) updateEye(
	set *face.ExpressionSet,
	mult face.Multipliers,
	eye *face.EyeState,
	data EyeData,
	ch eyeChannels,
) {
	setVec3(&eye.Position, data.Position)
	eye.PupilDiameter = face.PupilDiameter

	// The expression multiplier binds to the depressor only.
	setFloat(&eye.Frown, set[ch.cornerPuller]-set[ch.cornerDepressor]*mult.ExpressionMultiplier)
	setFloat(&eye.InnerBrowVertical, set[ch.innerBrowRaiser])
	setFloat(&eye.OuterBrowVertical, set[ch.outerBrowRaiser])
	// Squeeze reports the brow lowerer, not the lid tightener gated below.
	setFloat(&eye.Squeeze, set[ch.browLowerer])

	eye.IsTracking = data.Valid() && eye.IsTracking
	if !eye.IsTracking {
		return
	}

	setQuat(&eye.Rotation, face.Slerp(face.IdentityQuat, data.Rotation, mult.MovementMultiplier))
	setFloat(&eye.Openness, float32(math.Pow(float64(filterInvalid(data.Open)), float64(mult.OpennessExponent))))
	setFloat(&eye.Widen, data.Wide*mult.WideMultiplier)
}

func average(a, b float32) float32 {
	return (a + b) * 0.5
}

func filterInvalid(v float32) float32 {
	if !face.IsFinite(v) {
		return 0
	}

	return v
}

func setFloat(dst *float32, v float32) {
	if face.IsFinite(v) {
		*dst = v
	}
}

func setVec3(dst *face.Vec3, v face.Vec3) {
	if v.IsFinite() {
		*dst = v
	}
}

func setQuat(dst *face.Quat, q face.Quat) {
	if face.IsFinite(q.X) && face.IsFinite(q.Y) && face.IsFinite(q.Z) && face.IsFinite(q.W) {
		*dst = q
	}
}
