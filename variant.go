package blockfaces

import (
	"fmt"

	"github.com/32bitkid/blockfaces/block"
	"github.com/32bitkid/blockfaces/library"
	"github.com/32bitkid/blockfaces/twister"
)

// Age trait values.
const (
	AgeBaby  = "BABY"
	AgeAdult = "Adult"
)

// ChooseVariant draws one sample from src and picks the rare set when it
// falls below threshold.
func ChooseVariant(src twister.Source, threshold float64) library.Variant {
	if src.Float64() < threshold {
		return library.Rare
	}
	return library.Standard
}

// SelectVariant seeds a fresh stream from parentHash, independent of the
// stream that draws blend weights, and chooses the active set.
func SelectVariant(parentHash string, threshold float64) (library.Variant, error) {
	seed, err := block.Seed(parentHash)
	if err != nil {
		return library.Standard, fmt.Errorf("parent hash: %w", err)
	}
	return ChooseVariant(twister.NewFromSeed(seed), threshold), nil
}

// AgeLabel is the AGE trait for v.
func AgeLabel(v library.Variant) string {
	if v == library.Rare {
		return AgeBaby
	}
	return AgeAdult
}
