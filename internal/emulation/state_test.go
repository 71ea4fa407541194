package emulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/facetrack/internal/domain/face"
)

type mapSource map[string]string

func (m mapSource) GetValue(address string) (string, bool) {
	v, ok := m[address]

	return v, ok
}

// TestParameterValue parses plain and quoted numbers and falls back to zero.
func TestParameterValue(t *testing.T) {
	t.Parallel()

	source := mapSource{
		"/plain":  "0.5",
		"/quoted": `"0.25"`,
		"/text":   `"abc"`,
		"/multi":  "0.5 1",
		"/lone":   `"`,
	}

	tests := []struct {
		address string
		want    float32
	}{
		{address: "/plain", want: 0.5},
		{address: "/quoted", want: 0.25},
		{address: "/text", want: 0},
		{address: "/multi", want: 0},
		{address: "/lone", want: 0},
		{address: "/missing", want: 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ParameterValue(source, tt.address), tt.address)
	}
}

// TestBuildState maps every parameter and marks the record fully valid.
func TestBuildState(t *testing.T) {
	t.Parallel()

	source := mapSource{
		ParameterAddress("EyeLidLeft"):    "0.3",
		ParameterAddress("JawX"):          "0.2",
		ParameterAddress("MouthX"):        "0.4",
		ParameterAddress("SmileSadRight"): `"0.6"`,
		ParameterAddress("MouthUpperUp"):  "0.7",
	}

	state := BuildState(source)

	require.True(t, state.FaceIsValid)
	require.True(t, state.EyeFollowingBlendshapesValid)
	require.True(t, state.LeftEyeIsValid)
	require.True(t, state.RightEyeIsValid)
	require.Equal(t, face.IdentityPose, state.LeftEyePose)
	require.Equal(t, face.IdentityPose, state.RightEyePose)

	w := state.ExpressionWeights
	require.Equal(t, float32(0.3), w[face.EyesClosedL])
	require.Equal(t, float32(-0.2), w[face.JawSidewaysLeft])
	require.Equal(t, float32(0.2), w[face.JawSidewaysRight])
	require.Equal(t, float32(0.4), w[face.MouthLeft])
	require.Equal(t, float32(-0.4), w[face.MouthRight])
	require.Equal(t, float32(0.6), w[face.LipCornerPullerR])
	require.Equal(t, float32(0.7), w[face.UpperLipRaiserL])
	require.Zero(t, w[face.TongueOut])
}

// TestBindings covers the whole parameter family once per channel.
func TestBindings(t *testing.T) {
	t.Parallel()

	require.Len(t, bindings, 22)

	seen := make(map[face.Expression]bool, len(bindings))
	for _, b := range bindings {
		require.False(t, seen[b.channel], "channel %d bound twice", b.channel)
		seen[b.channel] = true
	}
}
