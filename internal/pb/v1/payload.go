package pb

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/facetrack/internal/domain/face"
)

// Struct keys shared by the payloads.
const (
	KeyMultipliers = "multipliers"
	KeyUpdatedAt   = "updated_at"
	KeyActor       = "actor"
	KeyHostname    = "hostname"
	KeyUsername    = "username"

	KeySessionID   = "session_id"
	KeyActivity    = "activity"
	KeySeq         = "seq"
	KeyFrames      = "frames"
	KeyExpressions = "expressions"
	KeyEyes        = "eyes"
	KeyMouth       = "mouth"
)

// Multiplier names as they appear in payloads.
const (
	OpennessExponent     = "openness_exponent"
	WideMultiplier       = "wide_multiplier"
	MovementMultiplier   = "movement_multiplier"
	ExpressionMultiplier = "expression_multiplier"
)

// ErrInvalidPayload is returned when a Struct does not have the expected layout.
var ErrInvalidPayload = errors.New("invalid payload")

// MultiplierNames lists the multiplier keys in display order.
func MultiplierNames() []string {
	return []string{OpennessExponent, WideMultiplier, MovementMultiplier, ExpressionMultiplier}
}

func multiplierFields(m *face.Multipliers) map[string]*float32 {
	return map[string]*float32{
		OpennessExponent:     &m.OpennessExponent,
		WideMultiplier:       &m.WideMultiplier,
		MovementMultiplier:   &m.MovementMultiplier,
		ExpressionMultiplier: &m.ExpressionMultiplier,
	}
}

// MultipliersRecordToStruct encodes a multipliers record.
func MultipliersRecordToStruct(record *face.MultipliersRecord) (*structpb.Struct, error) {
	values := make(map[string]any, 4)
	for name, v := range multiplierFields(&record.Multipliers) {
		values[name] = float64(*v)
	}

	payload := map[string]any{KeyMultipliers: values}

	if !record.UpdatedAt.IsZero() {
		payload[KeyUpdatedAt] = record.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	if record.Actor != nil {
		payload[KeyActor] = actorValue(record.Actor)
	}

	s, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, fmt.Errorf("encode multipliers: %w", err)
	}

	return s, nil
}

// MultipliersRecordFromStruct decodes a multipliers record. All four multipliers must be present.
func MultipliersRecordFromStruct(s *structpb.Struct) (*face.MultipliersRecord, error) {
	record := new(face.MultipliersRecord)

	present, err := mergeMultipliers(&record.Multipliers, s)
	if err != nil {
		return nil, err
	}

	if present != len(MultiplierNames()) {
		return nil, fmt.Errorf("%w: expected %d multipliers, got %d", ErrInvalidPayload, len(MultiplierNames()), present)
	}

	if raw := s.GetFields()[KeyUpdatedAt].GetStringValue(); raw != "" {
		if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, KeyUpdatedAt, err)
		}
	}

	record.Actor = actorFromValue(s.GetFields()[KeyActor])

	return record, nil
}

// SetMultipliersRequest builds a request changing only the named multipliers.
func SetMultipliersRequest(values map[string]float32, actor *face.Actor) (*structpb.Struct, error) {
	multipliers := make(map[string]any, len(values))
	for name, v := range values {
		multipliers[name] = float64(v)
	}

	payload := map[string]any{KeyMultipliers: multipliers}
	if actor != nil {
		payload[KeyActor] = actorValue(actor)
	}

	s, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, fmt.Errorf("encode multipliers request: %w", err)
	}

	return s, nil
}

// ParseSetMultipliers merges the request over base and returns the actor, if any.
func ParseSetMultipliers(base face.Multipliers, s *structpb.Struct) (face.Multipliers, *face.Actor, error) {
	if _, err := mergeMultipliers(&base, s); err != nil {
		return face.Multipliers{}, nil, err
	}

	return base, actorFromValue(s.GetFields()[KeyActor]), nil
}

// mergeMultipliers overwrites the multipliers present in s and returns how many were.
func mergeMultipliers(dst *face.Multipliers, s *structpb.Struct) (int, error) {
	values := s.GetFields()[KeyMultipliers].GetStructValue()
	if values == nil {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidPayload, KeyMultipliers)
	}

	fields := multiplierFields(dst)

	for name, value := range values.GetFields() {
		field, ok := fields[name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown multiplier %q", ErrInvalidPayload, name)
		}

		number, ok := value.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return 0, fmt.Errorf("%w: multiplier %q must be a number", ErrInvalidPayload, name)
		}

		*field = float32(number.NumberValue)
	}

	return len(values.GetFields()), nil
}

func actorValue(actor *face.Actor) map[string]any {
	return map[string]any{
		KeyHostname: actor.Hostname,
		KeyUsername: actor.Username,
	}
}

func actorFromValue(v *structpb.Value) *face.Actor {
	fields := v.GetStructValue().GetFields()
	if fields == nil {
		return nil
	}

	return &face.Actor{
		Hostname: fields[KeyHostname].GetStringValue(),
		Username: fields[KeyUsername].GetStringValue(),
	}
}

// FrameToStruct encodes the last mapped frame.
func FrameToStruct(frame *face.FrameState) (*structpb.Struct, error) {
	expressions := make(map[string]any, face.ExpressionSetSize)
	for e := range face.RightPosZ + 1 {
		expressions[e.String()] = float64(frame.Snapshot.Set[e])
	}

	mouth := make(map[string]any)
	for name, v := range frame.Mouth.Channels() {
		mouth[name] = float64(v)
	}

	payload := map[string]any{
		KeySessionID:   frame.SessionID,
		KeyActivity:    frame.Snapshot.Activity.String(),
		KeySeq:         float64(frame.Snapshot.Seq),
		KeyFrames:      float64(frame.Frames),
		KeyExpressions: expressions,
		KeyEyes: map[string]any{
			"active":    frame.Eyes.IsEyeTrackingActive,
			"timestamp": frame.Eyes.Timestamp,
			"left":      eyeValue(&frame.Eyes.Left),
			"right":     eyeValue(&frame.Eyes.Right),
			"combined":  eyeValue(&frame.Eyes.Combined),
		},
		KeyMouth: mouth,
	}

	if !frame.Snapshot.UpdatedAt.IsZero() {
		payload[KeyUpdatedAt] = frame.Snapshot.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	s, err := structpb.NewStruct(payload)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	return s, nil
}

// EyeFields lists the per-eye keys in display order.
func EyeFields() []string {
	return []string{
		"tracking", "openness", "squeeze", "widen", "frown",
		"inner_brow_vertical", "outer_brow_vertical",
		"rotation_x", "rotation_y", "rotation_z", "rotation_w",
		"position_x", "position_y", "position_z",
	}
}

func eyeValue(eye *face.EyeState) map[string]any {
	return map[string]any{
		"tracking":            eye.IsTracking,
		"openness":            float64(eye.Openness),
		"squeeze":             float64(eye.Squeeze),
		"widen":               float64(eye.Widen),
		"frown":               float64(eye.Frown),
		"inner_brow_vertical": float64(eye.InnerBrowVertical),
		"outer_brow_vertical": float64(eye.OuterBrowVertical),
		"rotation_x":          float64(eye.Rotation.X),
		"rotation_y":          float64(eye.Rotation.Y),
		"rotation_z":          float64(eye.Rotation.Z),
		"rotation_w":          float64(eye.Rotation.W),
		"position_x":          float64(eye.Position.X),
		"position_y":          float64(eye.Position.Y),
		"position_z":          float64(eye.Position.Z),
	}
}

// SortedKeys returns the keys of a Struct in lexical order.
func SortedKeys(s *structpb.Struct) []string {
	keys := make([]string, 0, len(s.GetFields()))
	for k := range s.GetFields() {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
