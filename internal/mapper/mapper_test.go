package mapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/facetrack/internal/domain/face"
	"github.com/oshokin/facetrack/internal/normalize"
)

func identitySet() face.ExpressionSet {
	raw := face.IdentityRawState()
	raw.FaceIsValid = true
	raw.EyeFollowingBlendshapesValid = true
	raw.LeftEyeIsValid = true
	raw.RightEyeIsValid = true

	var set face.ExpressionSet

	normalize.New().Apply(&raw, &set)

	return set
}

func trackingEyes() *face.EyesState {
	eyes := face.NewEyesState()
	eyes.Left.IsTracking = true
	eyes.Right.IsTracking = true

	return eyes
}

// TestFrame_IdentityScenario maps an open-eyed identity frame end to end.
func TestFrame_IdentityScenario(t *testing.T) {
	t.Parallel()

	snapshot := &face.Snapshot{Set: identitySet(), Activity: face.ActivityActive}
	eyes := face.NewEyesState()

	var mouth face.MouthState

	Mapper{LegacyRightEyeRotation: true}.Frame(snapshot, face.DefaultMultipliers(), eyes, &mouth, 0.011)

	require.True(t, eyes.IsEyeTrackingActive)
	require.True(t, eyes.Left.IsTracking)
	require.True(t, eyes.Right.IsTracking)
	require.True(t, eyes.Combined.IsTracking)
	require.InDelta(t, 0.9, eyes.Left.Openness, 1e-6)
	require.InDelta(t, 0.9, eyes.Right.Openness, 1e-6)
	require.InDelta(t, 0.9, eyes.Combined.Openness, 1e-6)
	require.InDelta(t, 1, eyes.Left.Rotation.W, 1e-6)
	require.Equal(t, face.PupilDiameter, eyes.Combined.PupilDiameter)
	require.InDelta(t, 0.011, eyes.Timestamp, 1e-12)

	require.True(t, mouth.IsDeviceActive)
	require.True(t, mouth.IsTracking)

	for name, v := range mouth.Channels() {
		require.Zero(t, v, name)
	}
}

// TestUpdateEyes_Latch keeps a non-tracking eye down even when its data is valid.
func TestUpdateEyes_Latch(t *testing.T) {
	t.Parallel()

	set := identitySet()
	eyes := trackingEyes()
	eyes.Left.IsTracking = false
	eyes.Left.Openness = 0.25

	Mapper{}.UpdateEyes(&set, face.DefaultMultipliers(), eyes)

	require.False(t, eyes.Left.IsTracking)
	require.InDelta(t, 0.25, eyes.Left.Openness, 1e-6, "a latched eye keeps its previous openness")
	require.True(t, eyes.Right.IsTracking)
	require.True(t, eyes.Combined.IsTracking)
}

// TestFrame_ActivityDrivesLatch raises the latch only through the ingest activity.
func TestFrame_ActivityDrivesLatch(t *testing.T) {
	t.Parallel()

	var (
		m     = Mapper{}
		eyes  = face.NewEyesState()
		mouth face.MouthState
		snap  = &face.Snapshot{Set: identitySet(), Activity: face.ActivityInactive}
	)

	m.Frame(snap, face.DefaultMultipliers(), eyes, &mouth, 0)
	require.False(t, eyes.Left.IsTracking)
	require.False(t, eyes.Combined.IsTracking)
	require.False(t, mouth.IsDeviceActive)

	m.Frame(snap.WithActivity(face.ActivityActive), face.DefaultMultipliers(), eyes, &mouth, 0)
	require.True(t, eyes.Left.IsTracking)
	require.True(t, eyes.Combined.IsTracking)
}

// TestUpdateEyes_NonFiniteKeepsSink drops the sample and keeps the previous values.
func TestUpdateEyes_NonFiniteKeepsSink(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.EyesClosedL] = float32(math.NaN())
	set[face.LeftPosX] = float32(math.Inf(1))
	set[face.BrowLowererL] = float32(math.NaN())

	eyes := trackingEyes()
	eyes.Left.Openness = 0.4
	eyes.Left.Squeeze = 0.3
	eyes.Left.Position = face.Vec3{X: 1}

	Mapper{}.UpdateEyes(&set, face.DefaultMultipliers(), eyes)

	require.False(t, eyes.Left.IsTracking)
	require.InDelta(t, 0.4, eyes.Left.Openness, 1e-6)
	require.InDelta(t, 0.3, eyes.Left.Squeeze, 1e-6)
	require.Equal(t, face.Vec3{X: 1}, eyes.Left.Position)
	require.True(t, eyes.Right.IsTracking)
}

// TestUpdateEyes_RotationOutOfRange rejects a quaternion component beyond one.
func TestUpdateEyes_RotationOutOfRange(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.RightRotW] = 1.5

	eyes := trackingEyes()

	Mapper{}.UpdateEyes(&set, face.DefaultMultipliers(), eyes)

	require.True(t, eyes.Left.IsTracking)
	require.False(t, eyes.Right.IsTracking)
}

// TestUpdateEyes_CombinedOverwrite averages both eyes even when one is not tracking.
func TestUpdateEyes_CombinedOverwrite(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.LeftPosX] = 0.03
	set[face.RightPosX] = -0.03
	set[face.LeftPosZ] = 0.1
	set[face.RightPosZ] = 0.2

	eyes := trackingEyes()
	eyes.Right.IsTracking = false

	Mapper{}.UpdateEyes(&set, face.DefaultMultipliers(), eyes)

	require.True(t, eyes.Left.IsTracking)
	require.False(t, eyes.Right.IsTracking)
	require.True(t, eyes.Combined.IsTracking)
	require.InDelta(t, 0, eyes.Combined.Position.X, 1e-6)
	require.InDelta(t, 0.15, eyes.Combined.Position.Z, 1e-6)
}

// TestUpdateEyes_Multipliers applies the exponent, wide, movement and expression multipliers.
func TestUpdateEyes_Multipliers(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.EyesClosedL] = 0.5
	set[face.UpperLidRaiserL] = 0.2
	set[face.LipCornerPullerL] = 0.5
	set[face.LipCornerDepressorL] = 0.2
	set[face.BrowLowererL] = 0.7
	set[face.LidTightenerL] = 0.1
	set[face.InnerBrowRaiserL] = 0.6
	set[face.OuterBrowRaiserL] = 0.4

	// 60 degrees about Y.
	set[face.LeftRotY] = float32(math.Sin(math.Pi / 6))
	set[face.LeftRotW] = float32(math.Cos(math.Pi / 6))

	mult := face.Multipliers{
		OpennessExponent:     2,
		WideMultiplier:       3,
		MovementMultiplier:   0.5,
		ExpressionMultiplier: 2,
	}

	eyes := trackingEyes()

	Mapper{}.UpdateEyes(&set, mult, eyes)

	require.True(t, eyes.Left.IsTracking)
	require.InDelta(t, 0.25, eyes.Left.Openness, 1e-6)
	require.InDelta(t, 0.6, eyes.Left.Widen, 1e-6)
	require.InDelta(t, 0.1, eyes.Left.Frown, 1e-6, "only the depressor is scaled")
	require.InDelta(t, 0.7, eyes.Left.Squeeze, 1e-6, "squeeze reports the brow lowerer")
	require.InDelta(t, 0.6, eyes.Left.InnerBrowVertical, 1e-6)
	require.InDelta(t, 0.4, eyes.Left.OuterBrowVertical, 1e-6)

	// Half of a negated 60 degree rotation is 30 degrees.
	require.InDelta(t, -math.Sin(math.Pi/12), eyes.Left.Rotation.Y, 1e-5)
	require.InDelta(t, math.Cos(math.Pi/12), eyes.Left.Rotation.W, 1e-5)
}

// TestUpdateEyes_NoMovement keeps the identity rotation with a zero movement multiplier.
func TestUpdateEyes_NoMovement(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.LeftRotX] = 0.3
	set[face.LeftRotW] = float32(math.Sqrt(1 - 0.09))

	mult := face.DefaultMultipliers()
	mult.MovementMultiplier = 0

	eyes := trackingEyes()

	Mapper{}.UpdateEyes(&set, mult, eyes)
	require.InDelta(t, 0, eyes.Left.Rotation.X, 1e-6)
	require.InDelta(t, 1, eyes.Left.Rotation.W, 1e-6)
}

// TestEyeData_RightRotation reuses the left x/y/z only in legacy mode.
func TestEyeData_RightRotation(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.LeftRotX], set[face.LeftRotY], set[face.LeftRotZ], set[face.LeftRotW] = 0.1, 0.2, 0.3, 0.9
	set[face.RightRotX], set[face.RightRotY], set[face.RightRotZ], set[face.RightRotW] = 0.4, 0.5, 0.6, 0.7
	set[face.RightPosY] = 0.05

	legacy := Mapper{LegacyRightEyeRotation: true}.EyeData(&set, Right)
	require.Equal(t, face.Quat{X: -0.1, Y: -0.2, Z: -0.3, W: 0.7}, legacy.Rotation)
	require.Equal(t, float32(-0.05), legacy.Position.Y)

	fixed := Mapper{}.EyeData(&set, Right)
	require.Equal(t, face.Quat{X: -0.4, Y: -0.5, Z: -0.6, W: 0.7}, fixed.Rotation)

	left := Mapper{LegacyRightEyeRotation: true}.EyeData(&set, Left)
	require.Equal(t, face.Quat{X: -0.1, Y: -0.2, Z: -0.3, W: 0.9}, left.Rotation)
}

// TestEyeData_OpenClampsNegative floors the openness input at zero.
func TestEyeData_OpenClampsNegative(t *testing.T) {
	t.Parallel()

	set := identitySet()
	set[face.EyesClosedR] = -2.1

	require.Zero(t, Mapper{}.EyeData(&set, Right).Open)
}
