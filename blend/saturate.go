package blend

import (
	"image"
	"math"
)

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Saturate moves every pixel toward (satMod < 0.5) or away from
// (satMod > 0.5) its grey value, in place. satMod of 0.5 is the identity.
func Saturate(buf *Buffer, satMod float64) {
	satVal := 1 - float64(2*satMod)
	keep := 1 - satVal

	v := buf.Values
	for i := 0; i+3 < len(v); i += 4 {
		r, g, b := v[i], v[i+1], v[i+2]
		grey := float64(lumaR*r) + float64(lumaG*g) + float64(lumaB*b)
		mixed := float64(satVal * grey)
		v[i+0] = mixed + float64(keep*r)
		v[i+1] = mixed + float64(keep*g)
		v[i+2] = mixed + float64(keep*b)
	}
}

// Finalize quantises the accumulator into an opaque image. Channels are
// clamped to [0,255] and rounded half to even; alpha is always 255.
// A NaN or infinite sample anywhere is an error and no image is returned.
func Finalize(buf *Buffer) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	v := buf.Values
	for i := 0; i+3 < len(v); i += 4 {
		for c := 0; c < 4; c++ {
			if !isFinite(v[i+c]) {
				return nil, &NonFiniteError{Stage: "composite", Index: i + c, Value: v[i+c]}
			}
		}
		img.Pix[i+0] = quantise(v[i+0])
		img.Pix[i+1] = quantise(v[i+1])
		img.Pix[i+2] = quantise(v[i+2])
		img.Pix[i+3] = 0xff
	}
	return img, nil
}

func quantise(v float64) uint8 {
	return uint8(math.RoundToEven(clamp(v, 0, 255)))
}
