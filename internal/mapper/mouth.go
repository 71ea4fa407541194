package mapper

import "github.com/oshokin/facetrack/internal/domain/face"

// UpdateMouth writes the mouth channels. No multiplier applies here.
func (m Mapper) UpdateMouth(set *face.ExpressionSet, mouth *face.MouthState) {
	mouth.IsTracking = true

	setFloat(&mouth.MouthLeftSmileFrown, set[face.LipCornerPullerL]-set[face.LipCornerDepressorL])
	setFloat(&mouth.MouthRightSmileFrown, set[face.LipCornerPullerR]-set[face.LipCornerDepressorR])
	setFloat(&mouth.MouthLeftDimple, set[face.DimplerL])
	setFloat(&mouth.MouthRightDimple, set[face.DimplerR])
	setFloat(&mouth.CheekLeftPuffSuck, set[face.CheekPuffL]-set[face.CheekSuckL])
	setFloat(&mouth.CheekRightPuffSuck, set[face.CheekPuffR]-set[face.CheekSuckR])
	setFloat(&mouth.CheekLeftRaise, set[face.CheekRaiserL])
	setFloat(&mouth.CheekRightRaise, set[face.CheekRaiserR])

	setFloat(&mouth.LipUpperLeftRaise, set[face.UpperLipRaiserL])
	setFloat(&mouth.LipUpperRightRaise, set[face.UpperLipRaiserR])
	setFloat(&mouth.LipLowerLeftRaise, set[face.LowerLipDepressorL])
	setFloat(&mouth.LipLowerRightRaise, set[face.LowerLipDepressorR])
	setFloat(&mouth.MouthPoutLeft, set[face.LipPuckerL])
	setFloat(&mouth.MouthPoutRight, set[face.LipPuckerR])

	horizontal := set[face.MouthRight] - set[face.MouthLeft]
	setFloat(&mouth.LipUpperHorizontal, horizontal)
	setFloat(&mouth.LipLowerHorizontal, horizontal)

	setFloat(&mouth.LipTopLeftOverturn, set[face.LipFunnelerLT])
	setFloat(&mouth.LipTopRightOverturn, set[face.LipFunnelerRT])
	setFloat(&mouth.LipBottomLeftOverturn, set[face.LipFunnelerLB])
	setFloat(&mouth.LipBottomRightOverturn, set[face.LipFunnelerRB])

	setFloat(&mouth.LipTopLeftOverUnder, -set[face.LipSuckLT])
	setFloat(&mouth.LipTopRightOverUnder, -set[face.LipSuckRT])
	setFloat(&mouth.LipBottomLeftOverUnder, -set[face.LipSuckLB])
	setFloat(&mouth.LipBottomRightOverUnder, -set[face.LipSuckRB])

	// Stretch-tighten subtracts the eyelid tightener, as the original driver does.
	setFloat(&mouth.LipLeftStretchTighten, set[face.LipStretcherL]-set[face.LidTightenerL])
	setFloat(&mouth.LipRightStretchTighten, set[face.LipStretcherR]-set[face.LidTightenerR])
	setFloat(&mouth.LipsLeftPress, set[face.LipPressorL])
	setFloat(&mouth.LipsRightPress, set[face.LipPressorR])

	setVec3(&mouth.Jaw, face.Vec3{
		X: set[face.JawSidewaysRight] - set[face.JawSidewaysLeft],
		Y: -set[face.LipsToward],
		Z: set[face.JawThrust],
	})
	setFloat(&mouth.JawOpen, face.Clamp01(set[face.JawDrop]-set[face.LipsToward]))
	setVec3(&mouth.Tongue, face.Vec3{Z: set[face.TongueOut] - set[face.TongueRetreat]})

	setFloat(&mouth.NoseWrinkleLeft, set[face.NoseWrinklerL])
	setFloat(&mouth.NoseWrinkleRight, set[face.NoseWrinklerR])
	setFloat(&mouth.ChinRaiseBottom, set[face.ChinRaiserB])
	setFloat(&mouth.ChinRaiseTop, set[face.ChinRaiserT])
}
