package face

import "strconv"

var expressionNames = [...]string{
	BrowLowererL:            "BrowLowererL",
	BrowLowererR:            "BrowLowererR",
	CheekPuffL:              "CheekPuffL",
	CheekPuffR:              "CheekPuffR",
	CheekRaiserL:            "CheekRaiserL",
	CheekRaiserR:            "CheekRaiserR",
	CheekSuckL:              "CheekSuckL",
	CheekSuckR:              "CheekSuckR",
	ChinRaiserB:             "ChinRaiserB",
	ChinRaiserT:             "ChinRaiserT",
	DimplerL:                "DimplerL",
	DimplerR:                "DimplerR",
	EyesClosedL:             "EyesClosedL",
	EyesClosedR:             "EyesClosedR",
	EyesLookDownL:           "EyesLookDownL",
	EyesLookDownR:           "EyesLookDownR",
	EyesLookLeftL:           "EyesLookLeftL",
	EyesLookLeftR:           "EyesLookLeftR",
	EyesLookRightL:          "EyesLookRightL",
	EyesLookRightR:          "EyesLookRightR",
	EyesLookUpL:             "EyesLookUpL",
	EyesLookUpR:             "EyesLookUpR",
	InnerBrowRaiserL:        "InnerBrowRaiserL",
	InnerBrowRaiserR:        "InnerBrowRaiserR",
	JawDrop:                 "JawDrop",
	JawSidewaysLeft:         "JawSidewaysLeft",
	JawSidewaysRight:        "JawSidewaysRight",
	JawThrust:               "JawThrust",
	LidTightenerL:           "LidTightenerL",
	LidTightenerR:           "LidTightenerR",
	LipCornerDepressorL:     "LipCornerDepressorL",
	LipCornerDepressorR:     "LipCornerDepressorR",
	LipCornerPullerL:        "LipCornerPullerL",
	LipCornerPullerR:        "LipCornerPullerR",
	LipFunnelerLB:           "LipFunnelerLB",
	LipFunnelerLT:           "LipFunnelerLT",
	LipFunnelerRB:           "LipFunnelerRB",
	LipFunnelerRT:           "LipFunnelerRT",
	LipPressorL:             "LipPressorL",
	LipPressorR:             "LipPressorR",
	LipPuckerL:              "LipPuckerL",
	LipPuckerR:              "LipPuckerR",
	LipStretcherL:           "LipStretcherL",
	LipStretcherR:           "LipStretcherR",
	LipSuckLB:               "LipSuckLB",
	LipSuckLT:               "LipSuckLT",
	LipSuckRB:               "LipSuckRB",
	LipSuckRT:               "LipSuckRT",
	LipTightenerL:           "LipTightenerL",
	LipTightenerR:           "LipTightenerR",
	LipsToward:              "LipsToward",
	LowerLipDepressorL:      "LowerLipDepressorL",
	LowerLipDepressorR:      "LowerLipDepressorR",
	MouthLeft:               "MouthLeft",
	MouthRight:              "MouthRight",
	NoseWrinklerL:           "NoseWrinklerL",
	NoseWrinklerR:           "NoseWrinklerR",
	OuterBrowRaiserL:        "OuterBrowRaiserL",
	OuterBrowRaiserR:        "OuterBrowRaiserR",
	UpperLidRaiserL:         "UpperLidRaiserL",
	UpperLidRaiserR:         "UpperLidRaiserR",
	UpperLipRaiserL:         "UpperLipRaiserL",
	UpperLipRaiserR:         "UpperLipRaiserR",
	TongueTipInterdental:    "TongueTipInterdental",
	TongueTipAlveolar:       "TongueTipAlveolar",
	TongueFrontDorsalPalate: "TongueFrontDorsalPalate",
	TongueMidDorsalPalate:   "TongueMidDorsalPalate",
	TongueBackDorsalVelar:   "TongueBackDorsalVelar",
	TongueOut:               "TongueOut",
	TongueRetreat:           "TongueRetreat",
	LeftRotX:                "LeftRotX",
	LeftRotY:                "LeftRotY",
	LeftRotZ:                "LeftRotZ",
	LeftRotW:                "LeftRotW",
	RightRotX:               "RightRotX",
	RightRotY:               "RightRotY",
	RightRotZ:               "RightRotZ",
	RightRotW:               "RightRotW",
	LeftPosX:                "LeftPosX",
	LeftPosY:                "LeftPosY",
	LeftPosZ:                "LeftPosZ",
	RightPosX:               "RightPosX",
	RightPosY:               "RightPosY",
	RightPosZ:               "RightPosZ",
}

// String returns the channel name, or its index for the spare slots.
func (e Expression) String() string {
	if e >= 0 && int(e) < len(expressionNames) {
		return expressionNames[e]
	}

	return "Expression(" + strconv.Itoa(int(e)) + ")"
}
