package library

import (
	"bufio"
	"bytes"
	"compress/lzw"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/32bitkid/bitreader"
)

// A pack is a set of raw RGBA portraits in one file:
//
// bits  |
//  0-31 | magic "FPAK"
// 32-39 | compression method
// 40-47 | asset count
// 48-63 | width
// 64-79 | height
//
// The header is followed by one name record per asset (a length byte and
// that many bytes) and then count*width*height*4 bytes of pixel data,
// compressed with the given method.
const (
	packMagic      uint32 = 'F'<<24 | 'P'<<16 | 'A'<<8 | 'K'
	packHeaderSize        = 10
)

type CompressionMethod uint8

const (
	CompressNone CompressionMethod = iota
	CompressLZW
)

type (
	decompressor func(io.Reader) io.ReadCloser
	compressor   func(io.Writer) io.WriteCloser
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

var decompressors = map[CompressionMethod]decompressor{
	CompressNone: io.NopCloser,
	CompressLZW:  func(r io.Reader) io.ReadCloser { return lzw.NewReader(r, lzw.LSB, 8) },
}

var compressors = map[CompressionMethod]compressor{
	CompressNone: func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} },
	CompressLZW:  func(w io.Writer) io.WriteCloser { return lzw.NewWriter(w, lzw.LSB, 8) },
}

type packHeader struct {
	method CompressionMethod
	count  int
	width  int
	height int
}

func readPackHeader(b []byte) (packHeader, error) {
	bits := bitreader.NewReader(bytes.NewReader(b))

	magic, err := bits.Read32(32)
	if err != nil {
		return packHeader{}, err
	}
	if magic != packMagic {
		return packHeader{}, &PackFormatError{Reason: fmt.Sprintf("bad magic %#08x", magic)}
	}

	method, err := bits.Read8(8)
	if err != nil {
		return packHeader{}, err
	}
	if _, ok := decompressors[CompressionMethod(method)]; !ok {
		return packHeader{}, &PackFormatError{Reason: fmt.Sprintf("unhandled compression method: %d", method)}
	}

	count, err := bits.Read8(8)
	if err != nil {
		return packHeader{}, err
	}
	width, err := bits.Read16(16)
	if err != nil {
		return packHeader{}, err
	}
	height, err := bits.Read16(16)
	if err != nil {
		return packHeader{}, err
	}
	if count > 0 && (width == 0 || height == 0) {
		return packHeader{}, &PackFormatError{Reason: "zero-sized assets"}
	}
	return packHeader{
		method: CompressionMethod(method),
		count:  int(count),
		width:  int(width),
		height: int(height),
	}, nil
}

// ReadPack decodes a pack from r.
func ReadPack(r io.Reader) (*Set, error) {
	src := bufio.NewReader(r)

	raw := make([]byte, packHeaderSize)
	if _, err := io.ReadFull(src, raw); err != nil {
		return nil, &PackFormatError{Reason: "short header: " + err.Error()}
	}
	header, err := readPackHeader(raw)
	if err != nil {
		return nil, err
	}

	names := make([]string, header.count)
	for i := range names {
		n, err := src.ReadByte()
		if err != nil {
			return nil, &PackFormatError{Reason: "short name table: " + err.Error()}
		}
		name := make([]byte, n)
		if _, err := io.ReadFull(src, name); err != nil {
			return nil, &PackFormatError{Reason: "short name table: " + err.Error()}
		}
		names[i] = string(name)
	}

	pixels := decompressors[header.method](src)
	defer pixels.Close()

	size := 4 * header.width * header.height
	assets := make([]*Asset, header.count)
	for i := range assets {
		pix := make([]uint8, size)
		if _, err := io.ReadFull(pixels, pix); err != nil {
			return nil, &PackFormatError{Reason: fmt.Sprintf("asset %d: %v", i, err)}
		}
		assets[i] = &Asset{Name: names[i], Width: header.width, Height: header.height, Pix: pix}
	}
	return NewSet(assets...)
}

// OpenPack reads a pack file from disk.
func OpenPack(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPack(f)
}

// WritePack encodes s as a pack.
func WritePack(w io.Writer, s *Set, method CompressionMethod) error {
	compress, ok := compressors[method]
	if !ok {
		return &PackFormatError{Reason: fmt.Sprintf("unhandled compression method: %d", method)}
	}
	if s.Len() > 0xff {
		return &PackFormatError{Reason: fmt.Sprintf("too many assets: %d", s.Len())}
	}
	if s.width > 0xffff || s.height > 0xffff {
		return &PackFormatError{Reason: fmt.Sprintf("assets too large: %dx%d", s.width, s.height)}
	}

	dst := bufio.NewWriter(w)
	header := struct {
		Magic  uint32
		Method CompressionMethod
		Count  uint8
		Width  uint16
		Height uint16
	}{packMagic, method, uint8(s.Len()), uint16(s.width), uint16(s.height)}
	if err := binary.Write(dst, binary.BigEndian, &header); err != nil {
		return err
	}

	for _, a := range s.assets {
		name := a.Name
		if len(name) > 0xff {
			name = name[:0xff]
		}
		if err := dst.WriteByte(uint8(len(name))); err != nil {
			return err
		}
		if _, err := dst.WriteString(name); err != nil {
			return err
		}
	}
	pixels := compress(dst)
	for _, a := range s.assets {
		if _, err := pixels.Write(a.Pix); err != nil {
			return err
		}
	}
	if err := pixels.Close(); err != nil {
		return err
	}
	return dst.Flush()
}
