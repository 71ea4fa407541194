package face

// Expression indexes a slot of the expression weights and of the ExpressionSet.
// The first ExpressionCount values follow the producer's blendshape order.
type Expression int

// Blendshape channels, in producer order.
const (
	BrowLowererL Expression = iota
	BrowLowererR
	CheekPuffL
	CheekPuffR
	CheekRaiserL
	CheekRaiserR
	CheekSuckL
	CheekSuckR
	ChinRaiserB
	ChinRaiserT
	DimplerL
	DimplerR
	EyesClosedL
	EyesClosedR
	EyesLookDownL
	EyesLookDownR
	EyesLookLeftL
	EyesLookLeftR
	EyesLookRightL
	EyesLookRightR
	EyesLookUpL
	EyesLookUpR
	InnerBrowRaiserL
	InnerBrowRaiserR
	JawDrop
	JawSidewaysLeft
	JawSidewaysRight
	JawThrust
	LidTightenerL
	LidTightenerR
	LipCornerDepressorL
	LipCornerDepressorR
	LipCornerPullerL
	LipCornerPullerR
	LipFunnelerLB
	LipFunnelerLT
	LipFunnelerRB
	LipFunnelerRT
	LipPressorL
	LipPressorR
	LipPuckerL
	LipPuckerR
	LipStretcherL
	LipStretcherR
	LipSuckLB
	LipSuckLT
	LipSuckRB
	LipSuckRT
	LipTightenerL
	LipTightenerR
	LipsToward
	LowerLipDepressorL
	LowerLipDepressorR
	MouthLeft
	MouthRight
	NoseWrinklerL
	NoseWrinklerR
	OuterBrowRaiserL
	OuterBrowRaiserR
	UpperLidRaiserL
	UpperLidRaiserR
	UpperLipRaiserL
	UpperLipRaiserR
	TongueTipInterdental
	TongueTipAlveolar
	TongueFrontDorsalPalate
	TongueMidDorsalPalate
	TongueBackDorsalVelar
	TongueOut
	TongueRetreat

	// ExpressionCount is the number of blendshape weights in RawState.
	ExpressionCount = int(iota)
)

// Eye pose slots appended after the blendshapes in an ExpressionSet.
const (
	LeftRotX Expression = Expression(ExpressionCount) + iota
	LeftRotY
	LeftRotZ
	LeftRotW
	RightRotX
	RightRotY
	RightRotZ
	RightRotW
	LeftPosX
	LeftPosY
	LeftPosZ
	RightPosX
	RightPosY
	RightPosZ
)

// ExpressionSetSize is the number of slots in an ExpressionSet: the blendshapes
// plus eight pose slots per eye (the last one per eye is unused).
const ExpressionSetSize = ExpressionCount + 8*2

// ExpressionSet is the normalized expression set handed from the ingest loop to
// the avatar mapper.
type ExpressionSet [ExpressionSetSize]float32

// Get returns the value of a slot.
func (s *ExpressionSet) Get(e Expression) float32 {
	return s[e]
}

// Set assigns the value of a slot.
func (s *ExpressionSet) Set(e Expression, v float32) {
	s[e] = v
}

// Quat returns the orientation stored in the four slots starting at x.
func (s *ExpressionSet) Quat(x Expression) Quat {
	return Quat{X: s[x], Y: s[x+1], Z: s[x+2], W: s[x+3]}
}

// Vec3 returns the position stored in the three slots starting at x.
func (s *ExpressionSet) Vec3(x Expression) Vec3 {
	return Vec3{X: s[x], Y: s[x+1], Z: s[x+2]}
}

// SetPose stores an eye pose into the rotation and position slots.
func (s *ExpressionSet) SetPose(rot, pos Expression, pose Pose) {
	s[rot] = pose.Orientation.X
	s[rot+1] = pose.Orientation.Y
	s[rot+2] = pose.Orientation.Z
	s[rot+3] = pose.Orientation.W

	s[pos] = pose.Position.X
	s[pos+1] = pose.Position.Y
	s[pos+2] = pose.Position.Z
}
