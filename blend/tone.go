package blend

import (
	"image"

	clr "github.com/lucasb-eyer/go-colorful"
)

// MeanColor averages the colour channels of img.
func MeanColor(img *image.NRGBA) clr.Color {
	b := img.Bounds()
	var r, g, bl uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			r += uint64(row[4*x+0])
			g += uint64(row[4*x+1])
			bl += uint64(row[4*x+2])
		}
	}
	n := uint64(b.Dx() * b.Dy())
	if n == 0 {
		return clr.Color{}
	}
	return clr.Color{
		R: float64(r) / float64(n) / 255,
		G: float64(g) / float64(n) / 255,
		B: float64(bl) / float64(n) / 255,
	}
}

const mutedChroma = 0.08

// ToneName buckets a colour into a coarse hue family using its HCL hue.
// Colours with very little chroma are "Muted" regardless of hue.
func ToneName(c clr.Color) string {
	h, chroma, l := c.Clamped().Hcl()
	switch {
	case l < 0.08:
		return "Shadow"
	case chroma < mutedChroma:
		return "Muted"
	case h < 105 || h >= 330:
		return "Warm"
	case h < 180:
		return "Verdant"
	default:
		return "Cool"
	}
}
