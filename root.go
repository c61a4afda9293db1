// Package blockfaces renders a chain block into a portrait composite.
//
// A render is a pure function of the block, the portrait library and the
// modifiers. The block hash seeds a Mersenne Twister that draws a signed blend
// coefficient for every active portrait; the parent hash independently
// decides, with a probability of one in a thousand, whether the rare set of
// portraits replaces the standard one; the gas utilisation of the block warps
// the coefficients; and a saturation pass finishes the image.
//
// Rendering the same block twice yields byte-identical pixels and
// attributes, on any machine.
package blockfaces

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// FaceDriver selects what decides the number of blended portraits.
type FaceDriver uint8

const (
	// DriveByTransactions adds one portrait per transaction above MinFaces.
	DriveByTransactions FaceDriver = iota
	// DriveByModifier spreads Modifiers.Faces over [MinFaces, set size] and
	// crossfades the last portrait by the fractional remainder.
	DriveByModifier
)

func (d FaceDriver) String() string {
	switch d {
	case DriveByTransactions:
		return "transactions"
	case DriveByModifier:
		return "modifier"
	}
	return "FaceDriver(UNKNOWN)"
}

// ParseFaceDriver is the inverse of FaceDriver.String.
func ParseFaceDriver(s string) (FaceDriver, error) {
	switch s {
	case "", "transactions":
		return DriveByTransactions, nil
	case "modifier":
		return DriveByModifier, nil
	}
	return 0, fmt.Errorf("unknown face driver %q", s)
}

// Pipeline collects the switches that distinguish one rendition of the
// algorithm from another.
type Pipeline struct {
	UseWarp          bool
	WarpExponent     float64
	VariantSelection bool
	Saturation       bool
	Driver           FaceDriver
	MinFaces         int
	NormTarget       float64
	RareThreshold    float64
}

var DefaultPipeline = Pipeline{
	UseWarp:          true,
	WarpExponent:     64,
	VariantSelection: true,
	Saturation:       true,
	Driver:           DriveByTransactions,
	MinFaces:         5,
	NormTarget:       7,
	RareThreshold:    0.001,
}

// PipelineError reports a pipeline setting that cannot produce a render.
type PipelineError struct {
	Name  string
	Value interface{}
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline %s=%v is invalid", e.Name, e.Value)
}

// Validate rejects settings that would render black or make the rare set
// unreachable.
func (p Pipeline) Validate() error {
	switch {
	case p.Driver != DriveByTransactions && p.Driver != DriveByModifier:
		return &PipelineError{Name: "driver", Value: p.Driver}
	case p.MinFaces < 1:
		return &PipelineError{Name: "min_faces", Value: p.MinFaces}
	case !(p.NormTarget > 0) || math.IsInf(p.NormTarget, 0):
		return &PipelineError{Name: "norm_target", Value: p.NormTarget}
	case !(p.WarpExponent >= 0) || math.IsInf(p.WarpExponent, 0):
		return &PipelineError{Name: "warp_exponent", Value: p.WarpExponent}
	case !(p.RareThreshold >= 0 && p.RareThreshold <= 1):
		return &PipelineError{Name: "rare_threshold", Value: p.RareThreshold}
	}
	return nil
}

// Options adjust a render. Fields left nil or zero keep the value set by an
// earlier option, or the default. A non-nil Pipeline replaces the whole
// pipeline.
type Options struct {
	Pipeline *Pipeline
	Logger   *zap.Logger
	// Workers bounds the concurrency of RenderBatch.
	Workers int
}

type settings struct {
	pipeline Pipeline
	logger   *zap.Logger
	workers  int
}

func collect(options []Options) settings {
	s := settings{pipeline: DefaultPipeline, logger: zap.NewNop()}
	for _, opts := range options {
		if opts.Pipeline != nil {
			s.pipeline = *opts.Pipeline
		}
		if opts.Logger != nil {
			s.logger = opts.Logger
		}
		if opts.Workers > 0 {
			s.workers = opts.Workers
		}
	}
	return s
}
