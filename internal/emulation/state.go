package emulation

import (
	"strconv"
	"strings"

	"github.com/oshokin/facetrack/internal/domain/face"
)

// ValueSource looks up the latest text received for an OSC address.
type ValueSource interface {
	GetValue(address string) (string, bool)
}

// parameterPrefix is the address family of the face tracking parameters.
const parameterPrefix = "/avatar/parameters/FT/v2/"

// binding feeds one expression channel from one parameter, optionally negated.
type binding struct {
	parameter string
	channel   face.Expression
	negate    bool
}

// bindings lists every parameter the synthetic producer understands.
var bindings = []binding{
	{parameter: "BrowExpressionLeft", channel: face.BrowLowererL},
	{parameter: "BrowExpressionRight", channel: face.BrowLowererR},
	{parameter: "CheekPuffLeft", channel: face.CheekPuffL},
	{parameter: "CheekPuffRight", channel: face.CheekPuffR},
	{parameter: "EyeLidLeft", channel: face.EyesClosedL},
	{parameter: "EyeLidRight", channel: face.EyesClosedR},
	{parameter: "EyeSquintLeft", channel: face.LidTightenerL},
	{parameter: "EyeSquintRight", channel: face.LidTightenerR},
	{parameter: "JawOpen", channel: face.JawDrop},
	{parameter: "JawX", channel: face.JawSidewaysLeft, negate: true},
	{parameter: "JawX", channel: face.JawSidewaysRight},
	{parameter: "LipFunnelLower", channel: face.LipFunnelerLB},
	{parameter: "LipFunnelUpper", channel: face.LipFunnelerLT},
	{parameter: "LipPucker", channel: face.LipPuckerL},
	{parameter: "MouthX", channel: face.MouthLeft},
	{parameter: "MouthX", channel: face.MouthRight, negate: true},
	{parameter: "MouthStretchTightenLeft", channel: face.LipStretcherL},
	{parameter: "MouthStretchTightenRight", channel: face.LipStretcherR},
	{parameter: "MouthUpperUp", channel: face.UpperLipRaiserL},
	{parameter: "MouthLowerDown", channel: face.LowerLipDepressorL},
	{parameter: "SmileSadLeft", channel: face.LipCornerPullerL},
	{parameter: "SmileSadRight", channel: face.LipCornerPullerR},
}

// ParameterAddress returns the full OSC address of a face tracking parameter.
func ParameterAddress(name string) string {
	return parameterPrefix + name
}

// ParameterValue reads a parameter as a float. A quoted number is accepted;
// a missing or unparsable value reads as zero.
func ParameterValue(source ValueSource, address string) float32 {
	value, ok := source.GetValue(address)
	if !ok {
		return 0
	}

	if f, err := strconv.ParseFloat(value, 32); err == nil {
		return float32(f)
	}

	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		if f, err := strconv.ParseFloat(strings.Trim(value, `"`), 32); err == nil {
			return float32(f)
		}
	}

	return 0
}

// BuildState synthesizes a fully valid record from the latest parameter values.
// Eye poses are identity; channels without a parameter stay zero.
func BuildState(source ValueSource) face.RawState {
	state := face.IdentityRawState()
	state.FaceIsValid = true
	state.EyeFollowingBlendshapesValid = true
	state.LeftEyeIsValid = true
	state.RightEyeIsValid = true

	for _, b := range bindings {
		v := ParameterValue(source, ParameterAddress(b.parameter))
		if b.negate {
			v = -v
		}

		state.ExpressionWeights[b.channel] = v
	}

	return state
}
