package blend

import "fmt"

// EmptyWeightSumError reports raw coefficients that cancel out exactly, which
// leaves nothing to normalize by.
type EmptyWeightSumError struct {
	ActiveCount int
	Crossfade   float64
}

func (e *EmptyWeightSumError) Error() string {
	return fmt.Sprintf("blend weights sum to zero (active=%d, crossfade=%g)", e.ActiveCount, e.Crossfade)
}

// NonFiniteError reports a NaN or infinity produced during blending.
type NonFiniteError struct {
	Stage string
	Index int
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("non-finite %s value %v at %d", e.Stage, e.Value, e.Index)
}
