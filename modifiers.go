package blockfaces

import (
	"fmt"
	"math"
)

// Modifiers are the caller-tunable inputs of a render, each in [0,1].
type Modifiers struct {
	// Intensity (mod1) scales the magnitude of the blend.
	Intensity float64 `json:"mod1" mapstructure:"intensity"`
	// Saturation (mod2): 0 renders grey, 0.5 leaves colour unchanged and 1
	// doubles the distance from grey.
	Saturation float64 `json:"mod2" mapstructure:"saturation"`
	// Faces (mod3) picks the portrait count when the pipeline is driven by
	// the modifier rather than by transactions.
	Faces float64 `json:"mod3" mapstructure:"faces"`
}

var DefaultModifiers = Modifiers{
	Intensity:  0.4,
	Saturation: 0.5,
	Faces:      0,
}

// ModifierRangeError reports a modifier outside [0,1].
type ModifierRangeError struct {
	Name  string
	Value float64
}

func (e *ModifierRangeError) Error() string {
	return fmt.Sprintf("modifier %s=%v is outside [0,1]", e.Name, e.Value)
}

func (m Modifiers) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"intensity", m.Intensity},
		{"saturation", m.Saturation},
		{"faces", m.Faces},
	} {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return &ModifierRangeError{Name: f.name, Value: f.value}
		}
	}
	return nil
}
