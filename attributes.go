package blockfaces

import (
	"image"
	"math"

	"github.com/32bitkid/blockfaces/blend"
	"github.com/32bitkid/blockfaces/block"
	"github.com/32bitkid/blockfaces/library"
)

// Attribute is one metadata trait, shaped like an OpenSea attribute.
type Attribute struct {
	DisplayType string      `json:"display_type,omitempty"`
	TraitType   string      `json:"trait_type"`
	Value       interface{} `json:"value"`
}

// Trait names.
const (
	TraitAge        = "AGE"
	TraitEdition    = "edition"
	TraitFaces      = "FACES"
	TraitCongestion = "CONGESTION"
	TraitTone       = "TONE"
	TraitPalette    = "PALETTE"
)

func attributesFor(d block.Digest, v library.Variant, active int, ratio float64, img *image.NRGBA) []Attribute {
	mean := blend.MeanColor(img)
	return []Attribute{
		{TraitType: TraitAge, Value: AgeLabel(v)},
		{DisplayType: "number", TraitType: TraitEdition, Value: d.Number},
		{DisplayType: "number", TraitType: TraitFaces, Value: active},
		{DisplayType: "boost_percentage", TraitType: TraitCongestion, Value: math.Round(ratio*10000) / 100},
		{TraitType: TraitTone, Value: blend.ToneName(mean)},
		{TraitType: TraitPalette, Value: mean.Clamped().Hex()},
	}
}

// Lookup returns the value of the named trait.
func (r *Result) Lookup(trait string) (interface{}, bool) {
	for _, a := range r.Attributes {
		if a.TraitType == trait {
			return a.Value, true
		}
	}
	return nil, false
}
