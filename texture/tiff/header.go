// Package tiff reads the baseline TIFF layouts used for large environment
// maps straight from memory-mapped files, without decoding the whole image.
package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

type TiffHeader struct {
	ByteOrder       binary.ByteOrder
	Width, Height   int
	SamplesPerPixel int
	BitsPerSample   []int
	Photometric     int
	Compression     int
	PlanarConfig    int

	// Strip layout
	RowsPerStrip    int
	StripOffsets    []int
	StripByteCounts []int

	// Tile layout
	TileWidth      int
	TileHeight     int
	TileOffsets    []int
	TileByteCounts []int
}

// https://www.loc.gov/preservation/digital/formats/content/tiff_tags.shtml
const (
	TagImageWidth                = 256
	TagImageLength               = 257
	TagBitsPerSample             = 258
	TagCompression               = 259
	TagPhotometricInterpretation = 262
	TagStripOffsets              = 273
	TagSamplesPerPixel           = 277
	TagRowsPerStrip              = 278
	TagStripByteCounts           = 279
	TagPlanarConfiguration       = 284
	TagTileWidth                 = 322
	TagTileLength                = 323
	TagTileOffsets               = 324
	TagTileByteCounts            = 325
)

// IFD field types this package decodes.
const (
	typeShort = 3
	typeLong  = 4
)

const (
	CompressionNone    = 1
	CompressionDeflate = 8

	PhotometricBlackIsZero = 1
	PhotometricRGB         = 2
)

// maxFieldCount bounds array fields such as strip and tile offset tables.
const maxFieldCount = 1 << 24

var ErrInvalidTiffHeader = errors.New("invalid TIFF header")

// field is one directory entry: its type, value count and the 4-byte slot
// holding either the value itself or the offset of the values.
type field struct {
	typ   uint16
	count uint32
	slot  []byte
}

func (f field) scalar(bo binary.ByteOrder) int {
	// SHORT values are left-justified in the slot
	if f.typ == typeShort {
		return int(bo.Uint16(f.slot))
	}
	return int(bo.Uint32(f.slot))
}

func (f field) values(r io.ReaderAt, bo binary.ByteOrder) ([]int, error) {
	var width int
	switch f.typ {
	case typeShort:
		width = 2
	case typeLong:
		width = 4
	default:
		return nil, errUnsupported(fmt.Sprintf("field type %d", f.typ))
	}
	if f.count > maxFieldCount {
		return nil, errCorrupt("field with %d values", f.count)
	}

	n := int(f.count)
	data := f.slot
	if n*width > len(f.slot) {
		data = make([]byte, n*width)
		if _, err := r.ReadAt(data, int64(bo.Uint32(f.slot))); err != nil {
			return nil, errCorrupt("field values: %v", err)
		}
	}

	out := make([]int, n)
	for i := range out {
		if width == 2 {
			out[i] = int(bo.Uint16(data[2*i:]))
		} else {
			out[i] = int(bo.Uint32(data[4*i:]))
		}
	}
	return out, nil
}

// readDirectory reads the byte order and the first image file directory.
func readDirectory(r io.ReaderAt) (binary.ByteOrder, map[uint16]field, error) {
	preamble := make([]byte, 8)
	if _, err := r.ReadAt(preamble, 0); err != nil {
		return nil, nil, ErrInvalidTiffHeader
	}

	var bo binary.ByteOrder
	switch string(preamble[:2]) {
	case "II":
		bo = binary.LittleEndian
	case "MM":
		bo = binary.BigEndian
	default:
		return nil, nil, ErrInvalidTiffHeader
	}
	if bo.Uint16(preamble[2:4]) != 42 {
		return nil, nil, ErrInvalidTiffHeader
	}
	ifd := int64(bo.Uint32(preamble[4:8]))

	countRaw := make([]byte, 2)
	if _, err := r.ReadAt(countRaw, ifd); err != nil {
		return nil, nil, errCorrupt("directory at %d: %v", ifd, err)
	}
	raw := make([]byte, 12*int(bo.Uint16(countRaw)))
	if _, err := r.ReadAt(raw, ifd+2); err != nil {
		return nil, nil, errCorrupt("directory entries: %v", err)
	}

	fields := make(map[uint16]field, len(raw)/12)
	for e := raw; len(e) >= 12; e = e[12:] {
		fields[bo.Uint16(e[0:2])] = field{
			typ:   bo.Uint16(e[2:4]),
			count: bo.Uint32(e[4:8]),
			slot:  e[8:12],
		}
	}
	return bo, fields, nil
}

func parseTiffHeader(r io.ReaderAt) (TiffHeader, error) {
	bo, fields, err := readDirectory(r)
	if err != nil {
		return TiffHeader{}, err
	}

	hdr := TiffHeader{
		ByteOrder:       bo,
		SamplesPerPixel: -1,
		Photometric:     -1,
		Compression:     CompressionNone,
		PlanarConfig:    1,
	}
	scalars := map[uint16]*int{
		TagImageWidth:                &hdr.Width,
		TagImageLength:               &hdr.Height,
		TagCompression:               &hdr.Compression,
		TagPhotometricInterpretation: &hdr.Photometric,
		TagSamplesPerPixel:           &hdr.SamplesPerPixel,
		TagRowsPerStrip:              &hdr.RowsPerStrip,
		TagPlanarConfiguration:       &hdr.PlanarConfig,
		TagTileWidth:                 &hdr.TileWidth,
		TagTileLength:                &hdr.TileHeight,
	}
	arrays := map[uint16]*[]int{
		TagBitsPerSample:   &hdr.BitsPerSample,
		TagStripOffsets:    &hdr.StripOffsets,
		TagStripByteCounts: &hdr.StripByteCounts,
		TagTileOffsets:     &hdr.TileOffsets,
		TagTileByteCounts:  &hdr.TileByteCounts,
	}

	for tag, f := range fields {
		if dst, ok := scalars[tag]; ok {
			*dst = f.scalar(bo)
		} else if dst, ok := arrays[tag]; ok {
			if *dst, err = f.values(r, bo); err != nil {
				return TiffHeader{}, fmt.Errorf("tag %d: %w", tag, err)
			}
		}
	}

	if hdr.Width <= 0 || hdr.Height <= 0 {
		return TiffHeader{}, ErrInvalidTiffHeader
	}
	if hdr.RowsPerStrip <= 0 {
		hdr.RowsPerStrip = hdr.Height
	}
	return hdr, nil
}

// checkPixelFormat accepts 8-bit grayscale and 8-bit RGB, chunky layout.
func checkPixelFormat(h TiffHeader) error {
	if len(h.BitsPerSample) == 0 || h.BitsPerSample[0] != 8 || h.PlanarConfig != 1 {
		return errUnsupported("sample layout")
	}
	switch h.Photometric {
	case PhotometricBlackIsZero:
		if h.SamplesPerPixel != 1 {
			return errUnsupported("grayscale format")
		}
	case PhotometricRGB:
		if h.SamplesPerPixel != 3 {
			return errUnsupported("RGB format")
		}
	default:
		return errUnsupported("photometric interpretation")
	}
	return nil
}
