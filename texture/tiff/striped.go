package tiff

import (
	"image"
	"image/color"

	"github.com/echoflaresat/whitted/colors"
	"golang.org/x/exp/mmap"
)

type stripedTiff struct {
	header TiffHeader
	reader *mmap.ReaderAt
}

// LoadStripedTiff maps an uncompressed, striped 8-bit RGB or grayscale TIFF.
// The returned image reads pixels lazily and must be closed.
func LoadStripedTiff(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	img, err := newStripedTiff(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}
	return img, nil
}

func newStripedTiff(reader *mmap.ReaderAt) (*stripedTiff, error) {
	header, err := parseTiffHeader(reader)
	if err != nil {
		return nil, err
	}
	if len(header.TileOffsets) > 0 {
		return nil, errUnsupported("tiled layout in striped reader")
	}
	if header.Compression != CompressionNone {
		return nil, errUnsupported("compression for strips")
	}
	if err := checkPixelFormat(header); err != nil {
		return nil, err
	}

	strips := (header.Height + header.RowsPerStrip - 1) / header.RowsPerStrip
	if len(header.StripOffsets) < strips || len(header.StripOffsets) != len(header.StripByteCounts) {
		return nil, errCorrupt("expected %d strips, got %d offsets", strips, len(header.StripOffsets))
	}
	stripSize := header.RowsPerStrip * header.Width * header.SamplesPerPixel
	for i, off := range header.StripOffsets[:strips] {
		size := stripSize
		if i == strips-1 {
			size = (header.Height - i*header.RowsPerStrip) * header.Width * header.SamplesPerPixel
		}
		if off < 0 || off+size > reader.Len() {
			return nil, errCorrupt("strip %d out of file bounds", i)
		}
	}

	return &stripedTiff{header: header, reader: reader}, nil
}

func (t *stripedTiff) Close() error {
	return t.reader.Close()
}

func (t *stripedTiff) ColorModel() color.Model {
	return colors.Model
}

func (t *stripedTiff) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.header.Width, t.header.Height)
}

func (t *stripedTiff) At(x, y int) color.Color {
	h := t.header
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return colors.Black()
	}

	strip := y / h.RowsPerStrip
	localY := y % h.RowsPerStrip
	idx := h.StripOffsets[strip] + (localY*h.Width+x)*h.SamplesPerPixel

	switch h.Photometric {
	case PhotometricRGB:
		return colors.From8BitRgb(t.reader.At(idx), t.reader.At(idx+1), t.reader.At(idx+2))
	default:
		v := t.reader.At(idx)
		return colors.From8BitRgb(v, v, v)
	}
}
