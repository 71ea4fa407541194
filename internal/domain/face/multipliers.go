package face

import (
	"errors"
	"fmt"
	"time"
)

// Multipliers are the operator-tunable scalars applied by the avatar mapper.
type Multipliers struct {
	// OpennessExponent is applied as a power to eye openness.
	OpennessExponent float32 `yaml:"openness_exponent" env:"OPENNESS_EXPONENT"`
	// WideMultiplier scales eye widening.
	WideMultiplier float32 `yaml:"wide_multiplier" env:"WIDE_MULTIPLIER"`
	// MovementMultiplier scales eye rotation (0 = none, 1 = full).
	MovementMultiplier float32 `yaml:"movement_multiplier" env:"MOVEMENT_MULTIPLIER"`
	// ExpressionMultiplier scales the frown-derived eye channels.
	ExpressionMultiplier float32 `yaml:"expression_multiplier" env:"EXPRESSION_MULTIPLIER"`
}

// errMultiplierNotFinite is returned when a multiplier is NaN or infinite.
var errMultiplierNotFinite = errors.New("multiplier must be a finite number")

// DefaultMultipliers returns the neutral multipliers (all 1).
func DefaultMultipliers() Multipliers {
	return Multipliers{
		OpennessExponent:     1,
		WideMultiplier:       1,
		MovementMultiplier:   1,
		ExpressionMultiplier: 1,
	}
}

// Validate checks that every multiplier is finite.
func (m Multipliers) Validate() error {
	values := map[string]float32{
		"openness_exponent":     m.OpennessExponent,
		"wide_multiplier":       m.WideMultiplier,
		"movement_multiplier":   m.MovementMultiplier,
		"expression_multiplier": m.ExpressionMultiplier,
	}

	for name, v := range values {
		if !IsFinite(v) {
			return fmt.Errorf("%s: %w", name, errMultiplierNotFinite)
		}
	}

	return nil
}

// Actor identifies who changed the multipliers.
type Actor struct {
	// Hostname is the machine the change came from.
	Hostname string
	// Username is the account that made the change.
	Username string
}

// MultipliersRecord is a persisted set of multipliers with its audit data.
type MultipliersRecord struct {
	Multipliers Multipliers
	// UpdatedAt is zero for multipliers that were never tuned.
	UpdatedAt time.Time
	// Actor is nil for multipliers that were never tuned.
	Actor *Actor
}
