package library

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(name string, w, h int, c color.NRGBA) *Asset {
	a := &Asset{Name: name, Width: w, Height: h, Pix: make([]uint8, 4*w*h)}
	for i := 0; i < len(a.Pix); i += 4 {
		a.Pix[i+0], a.Pix[i+1], a.Pix[i+2], a.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return a
}

func TestNewSetDimensionMismatch(t *testing.T) {
	_, err := NewSet(
		solid("a", 4, 4, color.NRGBA{A: 255}),
		solid("b", 4, 4, color.NRGBA{A: 255}),
		solid("c", 4, 5, color.NRGBA{A: 255}),
	)
	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Index)
	assert.Equal(t, "c", mismatch.Name)
	assert.Equal(t, image.Pt(4, 4), mismatch.Expected)
	assert.Equal(t, image.Pt(4, 5), mismatch.Actual)
}

func TestNewSetShortPixels(t *testing.T) {
	a := solid("a", 2, 2, color.NRGBA{})
	a.Pix = a.Pix[:8]
	_, err := NewSet(solid("first", 2, 2, color.NRGBA{}), a)
	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Index)
	assert.Equal(t, image.Pt(2, 2), mismatch.Expected)
	assert.Equal(t, image.Pt(2, 2), mismatch.Actual)
	assert.Equal(t, 16, mismatch.WantBytes)
	assert.Equal(t, 8, mismatch.GotBytes)
	assert.Contains(t, mismatch.Error(), "holds 8 pixel bytes, expected 16")
}

func TestSetHead(t *testing.T) {
	s, err := NewSet(solid("a", 1, 1, color.NRGBA{}), solid("b", 1, 1, color.NRGBA{}))
	require.NoError(t, err)

	head, err := s.Head(2)
	require.NoError(t, err)
	assert.Len(t, head, 2)

	_, err = s.Head(3)
	var oor *IndexOutOfRangeError
	assert.True(t, errors.As(err, &oor))

	_, err = s.At(-1)
	assert.True(t, errors.As(err, &oor))
}

func TestLibrarySet(t *testing.T) {
	std, err := NewSet(solid("a", 1, 1, color.NRGBA{}))
	require.NoError(t, err)
	lib := &Library{Standard: std}

	got, err := lib.Set(Standard)
	require.NoError(t, err)
	assert.Same(t, std, got)

	_, err = lib.Set(Rare)
	var oor *IndexOutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, Rare, oor.Variant)
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 11))
	src.Set(10, 10, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(11, 10, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	a := FromImage("x", src)
	assert.Equal(t, 2, a.Width)
	assert.Equal(t, 1, a.Height)
	assert.Equal(t, []uint8{10, 20, 30, 255, 1, 2, 3, 255}, a.Pix)

	img := a.Image()
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, img.NRGBAAt(1, 0))
}

func TestPackRoundTrip(t *testing.T) {
	s, err := NewSet(
		solid("1.jpg", 3, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4}),
		solid("2.jpg", 3, 2, color.NRGBA{R: 5, G: 6, B: 7, A: 8}),
	)
	require.NoError(t, err)

	for _, method := range []CompressionMethod{CompressNone, CompressLZW} {
		var buf bytes.Buffer
		require.NoError(t, WritePack(&buf, s, method))
		assert.Equal(t, []byte("FPAK"), buf.Bytes()[:4])
		assert.Equal(t, byte(method), buf.Bytes()[4])

		got, err := ReadPack(&buf)
		require.NoError(t, err)
		require.Equal(t, 2, got.Len())
		assert.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())
		for i := 0; i < 2; i++ {
			want, _ := s.At(i)
			have, _ := got.At(i)
			assert.Equal(t, want, have)
		}
	}
}

func TestWritePackUnknownMethod(t *testing.T) {
	s, err := NewSet(solid("1", 1, 1, color.NRGBA{}))
	require.NoError(t, err)
	var pfe *PackFormatError
	assert.True(t, errors.As(WritePack(&bytes.Buffer{}, s, 9), &pfe))
}

func TestPackErrors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("NOPE\x00\x01\x00\x01\x00\x01")},
		{"bad method", []byte("FPAK\x07\x01\x00\x01\x00\x01")},
		{"zero size", []byte("FPAK\x00\x01\x00\x00\x00\x01")},
		{"missing names", []byte("FPAK\x00\x01\x00\x01\x00\x01")},
		{"short pixels", []byte("FPAK\x00\x01\x00\x01\x00\x01\x00\xff\xff")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadPack(bytes.NewReader(c.data))
			var pfe *PackFormatError
			assert.True(t, errors.As(err, &pfe), "%v", err)
		})
	}
}

func TestLoadDirOrdersNumerically(t *testing.T) {
	dir := t.TempDir()
	shades := map[string]uint8{"1.png": 10, "2.png": 20, "10.png": 100, "extra.png": 200}
	for name, v := range shades {
		img := imaging.New(2, 2, color.NRGBA{R: v, G: v, B: v, A: 255})
		require.NoError(t, imaging.Save(img, filepath.Join(dir, name)))
	}

	s, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())

	var order []string
	for i := 0; i < s.Len(); i++ {
		a, _ := s.At(i)
		order = append(order, a.Name)
	}
	assert.Equal(t, []string{"1.png", "2.png", "10.png", "extra.png"}, order)

	a, _ := s.At(2)
	assert.Equal(t, []uint8{100, 100, 100, 255}, a.Pix[:4])
}

func TestLoadAcceptsPackFiles(t *testing.T) {
	dir := t.TempDir()
	std := filepath.Join(dir, "standard.fpk")

	s, err := NewSet(solid("1", 1, 1, color.NRGBA{R: 9, A: 255}))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WritePack(&buf, s, CompressLZW))
	require.NoError(t, os.WriteFile(std, buf.Bytes(), 0o644))

	lib, err := Load(std, "")
	require.NoError(t, err)
	assert.Equal(t, 1, lib.Standard.Len())
	assert.Nil(t, lib.Rare)
}

func TestFingerprint(t *testing.T) {
	a, err := NewSet(solid("a", 2, 2, color.NRGBA{R: 1, A: 255}))
	require.NoError(t, err)
	b, err := NewSet(solid("a", 2, 2, color.NRGBA{R: 2, A: 255}))
	require.NoError(t, err)

	fa := (&Library{Standard: a}).Fingerprint()
	assert.Equal(t, fa, (&Library{Standard: a}).Fingerprint())
	assert.NotEqual(t, fa, (&Library{Standard: b}).Fingerprint())
	assert.NotEqual(t, fa, (&Library{Standard: a, Rare: a}).Fingerprint())
	assert.Len(t, fa, 64)
}
