// Package blend turns a set of portraits into one composite: it derives the
// signed blend coefficients, accumulates the weighted pixel sum and applies
// the saturation and clamping pass.
//
// Every operation here must produce identical bits on every platform.
// Products that feed an addition are wrapped in an explicit float64
// conversion, which stops the compiler from fusing them into an FMA.
package blend

import (
	"math"

	"github.com/32bitkid/blockfaces/library"
	"github.com/32bitkid/blockfaces/twister"
)

// Config holds the knobs of the weight generator.
type Config struct {
	MinFaces     int
	UseWarp      bool
	WarpExponent float64
	// NormTarget is the magnitude the raw coefficients sum to before the
	// intensity modifier is applied.
	NormTarget float64
}

var DefaultConfig = Config{
	MinFaces:     5,
	UseWarp:      true,
	WarpExponent: 64,
	NormTarget:   7,
}

// Weights is the outcome of Generate.
type Weights struct {
	// Coefficients are the normalized per-image weights.
	Coefficients []float64
	// Raw are the coefficients before normalization.
	Raw         []float64
	Sum         float64
	NormFactor  float64
	ActiveCount int
	Crossfade   float64
	Warp        float64
}

// ActiveFromCount is the number of active images for a block with txCount
// transactions: minFaces plus one per transaction, capped at size.
// The crossfade of a count-driven selection is always zero.
func ActiveFromCount(txCount, minFaces, size int) (int, float64) {
	if txCount < 0 {
		txCount = 0
	}
	return minFaces + min(txCount, size-minFaces), 0
}

// ActiveFromModifier maps m in [0,1] onto [minFaces, size]. The fractional
// part becomes the crossfade of the last active image.
func ActiveFromModifier(m float64, minFaces, size int) (int, float64) {
	m = clamp(m, 0, 1)
	x := float64(minFaces) + float64(m*float64(size-minFaces))
	if size < minFaces {
		x = float64(size)
	}
	active := int(math.Ceil(x))
	crossfade := x - math.Floor(x)
	return clamp(active, min(minFaces, size), size), crossfade
}

// Warp amplifies the gas utilisation ratio. It stays near zero until the
// ratio approaches one.
func Warp(ratio float64, cfg Config) float64 {
	if !cfg.UseWarp {
		return 0
	}
	return math.Pow(ratio, cfg.WarpExponent)
}

// Generate draws active signed coefficients from src and normalizes them so
// that they sum to ±NormTarget*intensity.
func Generate(src twister.Source, active int, crossfade, warp, intensity float64, cfg Config) (*Weights, error) {
	if active < 1 {
		return nil, &library.IndexOutOfRangeError{Index: active - 1, Len: active}
	}
	if !isFinite(warp) {
		return nil, &NonFiniteError{Stage: "warp", Value: warp}
	}

	w := &Weights{
		Raw:         make([]float64, active),
		ActiveCount: active,
		Crossfade:   crossfade,
		Warp:        warp,
	}

	scale := 1 + warp
	for i := 0; i < active-1; i++ {
		w.Raw[i] = float64(scale*src.Float64()) - warp
	}
	w.Raw[active-1] = crossfade * (float64(scale*src.Float64()) - warp)

	for _, c := range w.Raw {
		w.Sum += c
	}
	if w.Sum == 0 {
		return nil, &EmptyWeightSumError{ActiveCount: active, Crossfade: crossfade}
	}
	if !isFinite(w.Sum) {
		return nil, &NonFiniteError{Stage: "weight sum", Value: w.Sum}
	}

	w.NormFactor = cfg.NormTarget * intensity / math.Abs(w.Sum)
	if !isFinite(w.NormFactor) {
		return nil, &NonFiniteError{Stage: "norm factor", Value: w.NormFactor}
	}

	w.Coefficients = make([]float64, active)
	for i, c := range w.Raw {
		w.Coefficients[i] = c * w.NormFactor
	}
	return w, nil
}
