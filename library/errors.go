package library

import (
	"fmt"
	"image"
)

// DimensionMismatchError reports an asset whose size differs from the rest
// of its set, or whose pixel data does not cover its own size. In the
// latter case Actual equals Expected and the byte counts differ.
type DimensionMismatchError struct {
	Index    int
	Name     string
	Expected image.Point
	Actual   image.Point

	WantBytes int
	GotBytes  int
}

func (e *DimensionMismatchError) Error() string {
	if e.WantBytes != e.GotBytes {
		return fmt.Sprintf("asset %d (%s) is %dx%d but holds %d pixel bytes, expected %d",
			e.Index, e.Name, e.Actual.X, e.Actual.Y, e.GotBytes, e.WantBytes)
	}
	return fmt.Sprintf("asset %d (%s) is %dx%d, expected %dx%d",
		e.Index, e.Name, e.Actual.X, e.Actual.Y, e.Expected.X, e.Expected.Y)
}

// CheckPixels reports an asset, at index i of its set, whose pixel data
// does not match its size.
func (a *Asset) CheckPixels(i int) error {
	want := 4 * a.Width * a.Height
	if len(a.Pix) == want {
		return nil
	}
	size := image.Pt(a.Width, a.Height)
	return &DimensionMismatchError{
		Index:     i,
		Name:      a.Name,
		Expected:  size,
		Actual:    size,
		WantBytes: want,
		GotBytes:  len(a.Pix),
	}
}

// IndexOutOfRangeError reports a request for more assets than a set holds.
type IndexOutOfRangeError struct {
	Index   int
	Len     int
	Variant Variant
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("%s: set is empty", e.Variant)
	}
	return fmt.Sprintf("asset index %d out of range [0, %d)", e.Index, e.Len)
}

// PackFormatError reports a corrupt or unsupported pack file.
type PackFormatError struct {
	Reason string
}

func (e *PackFormatError) Error() string {
	return "pack: " + e.Reason
}
