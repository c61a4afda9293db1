// Package library holds the source portraits a render blends together.
//
// A Library has two disjoint sets, standard and rare. Exactly one of them is
// active for a given render. Assets are decoded once and are read-only from
// then on, so one Library can back any number of concurrent renders.
package library

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
	"image/color"
)

// Variant selects one of the two sets of a Library.
type Variant uint8

const (
	Standard Variant = iota
	Rare
)

func (v Variant) String() string {
	switch v {
	case Standard:
		return "Variant(Standard)"
	case Rare:
		return "Variant(Rare)"
	}
	return "Variant(UNKNOWN)"
}

// DefaultSetSize is the number of portraits in each production set.
const DefaultSetSize = 25

// Asset is a decoded, non-premultiplied RGBA image with stride 4*Width.
type Asset struct {
	Name   string
	Width  int
	Height int
	Pix    []uint8
}

// FromImage copies img into a new Asset.
func FromImage(name string, img image.Image) *Asset {
	b := img.Bounds()
	a := &Asset{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, 4*b.Dx()*b.Dy()),
	}
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == 4*a.Width {
		copy(a.Pix, nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y):])
		return a
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			a.Pix[i+0], a.Pix[i+1], a.Pix[i+2], a.Pix[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return a
}

// Image exposes the asset as an *image.NRGBA sharing its pixel memory.
// Callers must not write to it.
func (a *Asset) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    a.Pix,
		Stride: 4 * a.Width,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

// Set is an ordered group of assets sharing identical dimensions.
type Set struct {
	assets []*Asset
	width  int
	height int
}

// NewSet validates that every asset has the dimensions of the first one.
func NewSet(assets ...*Asset) (*Set, error) {
	s := &Set{assets: assets}
	if len(assets) == 0 {
		return s, nil
	}
	s.width, s.height = assets[0].Width, assets[0].Height
	for i, a := range assets {
		if a.Width != s.width || a.Height != s.height {
			return nil, &DimensionMismatchError{
				Index:    i,
				Name:     a.Name,
				Expected: image.Pt(s.width, s.height),
				Actual:   image.Pt(a.Width, a.Height),
			}
		}
		if err := a.CheckPixels(i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) Len() int { return len(s.assets) }

// Bounds is the shared size of every asset in the set.
func (s *Set) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// At returns the i-th asset.
func (s *Set) At(i int) (*Asset, error) {
	if i < 0 || i >= len(s.assets) {
		return nil, &IndexOutOfRangeError{Index: i, Len: len(s.assets)}
	}
	return s.assets[i], nil
}

// Head returns the first n assets, failing if the set is shorter.
func (s *Set) Head(n int) ([]*Asset, error) {
	if n < 0 || n > len(s.assets) {
		return nil, &IndexOutOfRangeError{Index: n - 1, Len: len(s.assets)}
	}
	return s.assets[:n:n], nil
}

// Library pairs the standard and rare sets.
type Library struct {
	Standard *Set
	Rare     *Set
}

// Set returns the set backing v. A missing rare set is an error rather than
// a silent fallback to the standard one.
func (l *Library) Set(v Variant) (*Set, error) {
	var s *Set
	switch v {
	case Standard:
		s = l.Standard
	case Rare:
		s = l.Rare
	}
	if s == nil || s.Len() == 0 {
		return nil, &IndexOutOfRangeError{Index: 0, Len: 0, Variant: v}
	}
	return s, nil
}

// Fingerprint is a digest of every asset in the library, in order. Two
// libraries with the same fingerprint render identically.
func (l *Library) Fingerprint() string {
	h := sha256.New()
	for _, s := range []*Set{l.Standard, l.Rare} {
		if s == nil {
			h.Write([]byte{0})
			continue
		}
		var dims [12]byte
		binary.BigEndian.PutUint32(dims[0:], uint32(s.Len()))
		binary.BigEndian.PutUint32(dims[4:], uint32(s.width))
		binary.BigEndian.PutUint32(dims[8:], uint32(s.height))
		h.Write([]byte{1})
		h.Write(dims[:])
		for _, a := range s.assets {
			h.Write(a.Pix)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
