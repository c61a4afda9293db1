package blend

import (
	"fmt"
	"image"

	"github.com/32bitkid/blockfaces/library"
)

// Buffer is the floating point accumulator of a composite. Values holds
// interleaved R, G, B, A samples and is never clamped.
type Buffer struct {
	Width  int
	Height int
	Values []float64
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Values: make([]float64, 4*width*height),
	}
}

// Composite accumulates weights[im] * pixel for every asset and every byte,
// alpha included. Assets must all share one size.
func Composite(assets []*library.Asset, weights []float64) (*Buffer, error) {
	if len(assets) == 0 {
		return nil, &library.IndexOutOfRangeError{Index: 0, Len: 0}
	}
	if len(weights) != len(assets) {
		return nil, fmt.Errorf("blend: %d weights for %d assets", len(weights), len(assets))
	}

	width, height := assets[0].Width, assets[0].Height
	for i, a := range assets {
		if a.Width != width || a.Height != height {
			return nil, &library.DimensionMismatchError{
				Index:    i,
				Name:     a.Name,
				Expected: image.Pt(width, height),
				Actual:   image.Pt(a.Width, a.Height),
			}
		}
		if err := a.CheckPixels(i); err != nil {
			return nil, err
		}
	}

	buf := NewBuffer(width, height)
	values := buf.Values
	for im, a := range assets {
		w := weights[im]
		for i, p := range a.Pix {
			values[i] += float64(w * float64(p))
		}
	}
	return buf, nil
}
