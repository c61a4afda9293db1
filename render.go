package blockfaces

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/32bitkid/blockfaces/blend"
	"github.com/32bitkid/blockfaces/block"
	"github.com/32bitkid/blockfaces/library"
	"github.com/32bitkid/blockfaces/twister"
)

// Result is the output of a render.
type Result struct {
	Image       *image.NRGBA
	Attributes  []Attribute
	Variant     library.Variant
	Seed        uint64
	ActiveCount int
	Crossfade   float64
	Warp        float64
	GasRatio    float64
	Weights     []float64
}

// Render composes the artwork for d. Any malformed input aborts the render;
// there is no partial output.
func Render(d block.Digest, lib *library.Library, mods Modifiers, options ...Options) (*Result, error) {
	s := collect(options)
	p := s.pipeline

	if lib == nil {
		return nil, errors.New("render: nil library")
	}
	if err := mods.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	seed, err := block.Seed(d.Hash)
	if err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}

	variant := library.Standard
	if p.VariantSelection {
		if variant, err = SelectVariant(d.ParentHash, p.RareThreshold); err != nil {
			return nil, err
		}
	}

	set, err := lib.Set(variant)
	if err != nil {
		return nil, err
	}

	var active int
	var crossfade float64
	switch p.Driver {
	case DriveByModifier:
		active, crossfade = blend.ActiveFromModifier(mods.Faces, p.MinFaces, set.Len())
	default:
		active, crossfade = blend.ActiveFromCount(d.TxCount(), p.MinFaces, set.Len())
	}

	ratio, err := d.GasRatio()
	if err != nil {
		return nil, err
	}

	cfg := blend.Config{
		MinFaces:     p.MinFaces,
		UseWarp:      p.UseWarp,
		WarpExponent: p.WarpExponent,
		NormTarget:   p.NormTarget,
	}
	warp := blend.Warp(ratio, cfg)

	weights, err := blend.Generate(twister.NewFromSeed(seed), active, crossfade, warp, mods.Intensity, cfg)
	if err != nil {
		return nil, err
	}

	assets, err := set.Head(active)
	if err != nil {
		return nil, err
	}
	buf, err := blend.Composite(assets, weights.Coefficients)
	if err != nil {
		return nil, err
	}
	if p.Saturation {
		blend.Saturate(buf, mods.Saturation)
	}
	img, err := blend.Finalize(buf)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rendered block",
		zap.Uint64("number", d.Number),
		zap.Uint64("seed", seed),
		zap.Stringer("variant", variant),
		zap.Int("active", active),
		zap.Float64("crossfade", crossfade),
		zap.Float64("gasRatio", ratio),
		zap.Float64("warp", warp),
		zap.Float64("normFactor", weights.NormFactor),
	)

	return &Result{
		Image:       img,
		Attributes:  attributesFor(d, variant, active, ratio, img),
		Variant:     variant,
		Seed:        seed,
		ActiveCount: active,
		Crossfade:   crossfade,
		Warp:        warp,
		GasRatio:    ratio,
		Weights:     weights.Coefficients,
	}, nil
}
