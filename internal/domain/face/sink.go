package face

// PupilDiameter is the fixed pupil diameter reported for every eye, in meters.
const PupilDiameter float32 = 0.004

// EyeState is the host-owned output record for a single eye.
type EyeState struct {
	Position          Vec3
	Rotation          Quat
	Openness          float32
	Squeeze           float32
	Widen             float32
	Frown             float32
	InnerBrowVertical float32
	OuterBrowVertical float32
	PupilDiameter     float32
	IsTracking        bool
}

// EyesState is the host-owned eye-gaze sink: both eyes plus the combined eye.
type EyesState struct {
	Left                EyeState
	Right               EyeState
	Combined            EyeState
	IsEyeTrackingActive bool
	// Timestamp accumulates frame delta time, in seconds.
	Timestamp float64
}

// NewEyesState returns a sink with identity rotations, ready for the first frame.
func NewEyesState() *EyesState {
	eye := EyeState{Rotation: IdentityQuat, PupilDiameter: PupilDiameter}

	return &EyesState{Left: eye, Right: eye, Combined: eye}
}

// MouthState is the host-owned mouth and face sink.
type MouthState struct {
	IsDeviceActive bool
	IsTracking     bool

	MouthLeftSmileFrown  float32
	MouthRightSmileFrown float32
	MouthLeftDimple      float32
	MouthRightDimple     float32
	CheekLeftPuffSuck    float32
	CheekRightPuffSuck   float32
	CheekLeftRaise       float32
	CheekRightRaise      float32

	LipUpperLeftRaise  float32
	LipUpperRightRaise float32
	LipLowerLeftRaise  float32
	LipLowerRightRaise float32
	MouthPoutLeft      float32
	MouthPoutRight     float32
	LipUpperHorizontal float32
	LipLowerHorizontal float32

	LipTopLeftOverturn     float32
	LipTopRightOverturn    float32
	LipBottomLeftOverturn  float32
	LipBottomRightOverturn float32

	LipTopLeftOverUnder     float32
	LipTopRightOverUnder    float32
	LipBottomLeftOverUnder  float32
	LipBottomRightOverUnder float32

	LipLeftStretchTighten  float32
	LipRightStretchTighten float32
	LipsLeftPress          float32
	LipsRightPress         float32

	Jaw     Vec3
	JawOpen float32
	Tongue  Vec3

	NoseWrinkleLeft  float32
	NoseWrinkleRight float32
	ChinRaiseBottom  float32
	ChinRaiseTop     float32
}

// Channels returns the scalar mouth channels keyed by name, with the jaw and
// tongue vectors flattened into their components.
func (m *MouthState) Channels() map[string]float32 {
	return map[string]float32{
		"mouth_left_smile_frown":      m.MouthLeftSmileFrown,
		"mouth_right_smile_frown":     m.MouthRightSmileFrown,
		"mouth_left_dimple":           m.MouthLeftDimple,
		"mouth_right_dimple":          m.MouthRightDimple,
		"cheek_left_puff_suck":        m.CheekLeftPuffSuck,
		"cheek_right_puff_suck":       m.CheekRightPuffSuck,
		"cheek_left_raise":            m.CheekLeftRaise,
		"cheek_right_raise":           m.CheekRightRaise,
		"lip_upper_left_raise":        m.LipUpperLeftRaise,
		"lip_upper_right_raise":       m.LipUpperRightRaise,
		"lip_lower_left_raise":        m.LipLowerLeftRaise,
		"lip_lower_right_raise":       m.LipLowerRightRaise,
		"mouth_pout_left":             m.MouthPoutLeft,
		"mouth_pout_right":            m.MouthPoutRight,
		"lip_upper_horizontal":        m.LipUpperHorizontal,
		"lip_lower_horizontal":        m.LipLowerHorizontal,
		"lip_top_left_overturn":       m.LipTopLeftOverturn,
		"lip_top_right_overturn":      m.LipTopRightOverturn,
		"lip_bottom_left_overturn":    m.LipBottomLeftOverturn,
		"lip_bottom_right_overturn":   m.LipBottomRightOverturn,
		"lip_top_left_over_under":     m.LipTopLeftOverUnder,
		"lip_top_right_over_under":    m.LipTopRightOverUnder,
		"lip_bottom_left_over_under":  m.LipBottomLeftOverUnder,
		"lip_bottom_right_over_under": m.LipBottomRightOverUnder,
		"lip_left_stretch_tighten":    m.LipLeftStretchTighten,
		"lip_right_stretch_tighten":   m.LipRightStretchTighten,
		"lips_left_press":             m.LipsLeftPress,
		"lips_right_press":            m.LipsRightPress,
		"jaw_x":                       m.Jaw.X,
		"jaw_y":                       m.Jaw.Y,
		"jaw_z":                       m.Jaw.Z,
		"jaw_open":                    m.JawOpen,
		"tongue_x":                    m.Tongue.X,
		"tongue_y":                    m.Tongue.Y,
		"tongue_z":                    m.Tongue.Z,
		"nose_wrinkle_left":           m.NoseWrinkleLeft,
		"nose_wrinkle_right":          m.NoseWrinkleRight,
		"chin_raise_bottom":           m.ChinRaiseBottom,
		"chin_raise_top":              m.ChinRaiseTop,
	}
}
