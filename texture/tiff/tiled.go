package tiff

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/echoflaresat/whitted/colors"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/exp/mmap"
)

// tileCacheSize is the number of decoded tiles kept in memory.
const tileCacheSize = 200

type tiledTiff struct {
	header      TiffHeader
	reader      *mmap.ReaderAt
	cache       *lru.Cache // tileIndex -> []byte
	tilesAcross int
}

// LoadTiledTiff maps a tiled 8-bit RGB or grayscale TIFF, raw or DEFLATE
// compressed. Decoded tiles are cached; the image is safe for concurrent use
// and must be closed.
func LoadTiledTiff(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	img, err := newTiledTiff(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}
	return img, nil
}

func newTiledTiff(reader *mmap.ReaderAt) (*tiledTiff, error) {
	header, err := parseTiffHeader(reader)
	if err != nil {
		return nil, err
	}
	if header.TileWidth <= 0 || header.TileHeight <= 0 {
		return nil, errUnsupported("striped layout in tiled reader")
	}
	if header.Compression != CompressionNone && header.Compression != CompressionDeflate {
		return nil, errUnsupported(fmt.Sprintf("compression %d", header.Compression))
	}
	if err := checkPixelFormat(header); err != nil {
		return nil, err
	}

	tilesAcross := (header.Width + header.TileWidth - 1) / header.TileWidth
	tilesDown := (header.Height + header.TileHeight - 1) / header.TileHeight
	if len(header.TileOffsets) < tilesAcross*tilesDown || len(header.TileOffsets) != len(header.TileByteCounts) {
		return nil, errCorrupt("expected %d tiles, got %d offsets", tilesAcross*tilesDown, len(header.TileOffsets))
	}
	for i, off := range header.TileOffsets {
		if off < 0 || off+header.TileByteCounts[i] > reader.Len() {
			return nil, errCorrupt("tile %d out of file bounds", i)
		}
	}

	if header.Compression == CompressionDeflate {
		for i := range header.TileOffsets[:tilesAcross*tilesDown] {
			if err := checkZlibHeader(reader, header.TileOffsets[i], header.TileByteCounts[i]); err != nil {
				return nil, errCorrupt("tile %d: %v", i, err)
			}
		}
	}

	cache, err := lru.New(tileCacheSize)
	if err != nil {
		return nil, err
	}

	t := &tiledTiff{
		header:      header,
		reader:      reader,
		cache:       cache,
		tilesAcross: tilesAcross,
	}
	// decode the first tile up front so an unreadable map fails here
	first, err := t.loadTile(0)
	if err != nil {
		return nil, err
	}
	cache.Add(0, first)
	return t, nil
}

// checkZlibHeader validates the two-byte zlib stream header of a tile.
func checkZlibHeader(reader *mmap.ReaderAt, off, size int) error {
	if size < 2 {
		return errors.New("too short for a zlib stream")
	}
	cmf, flg := reader.At(off), reader.At(off+1)
	if cmf&0x0f != 8 || (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return errors.New("not a zlib stream")
	}
	return nil
}

func (t *tiledTiff) Close() error {
	t.cache.Purge()
	return t.reader.Close()
}

func (t *tiledTiff) ColorModel() color.Model {
	return colors.Model
}

func (t *tiledTiff) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.header.Width, t.header.Height)
}

func (t *tiledTiff) At(x, y int) color.Color {
	h := t.header
	if x < 0 || y < 0 || x >= h.Width || y >= h.Height {
		return colors.Black()
	}

	tileIndex := (y/h.TileHeight)*t.tilesAcross + x/h.TileWidth

	var tile []byte
	if val, ok := t.cache.Get(tileIndex); ok {
		tile = val.([]byte)
	} else {
		var err error
		tile, err = t.loadTile(tileIndex)
		if err != nil {
			// cached empty so the warning is logged once per tile
			slog.Warn("unreadable TIFF tile", "tile", tileIndex, "error", err)
		}
		t.cache.Add(tileIndex, tile)
	}
	if len(tile) == 0 {
		return colors.Black()
	}

	localX := x % h.TileWidth
	localY := y % h.TileHeight
	pixOffset := (localY*h.TileWidth + localX) * h.SamplesPerPixel

	switch h.Photometric {
	case PhotometricRGB:
		return colors.From8BitRgb(tile[pixOffset], tile[pixOffset+1], tile[pixOffset+2])
	default:
		v := tile[pixOffset]
		return colors.From8BitRgb(v, v, v)
	}
}

func (t *tiledTiff) loadTile(index int) ([]byte, error) {
	h := t.header
	buf := make([]byte, h.TileByteCounts[index])
	if _, err := t.reader.ReadAt(buf, int64(h.TileOffsets[index])); err != nil {
		return nil, fmt.Errorf("failed to read tile %d: %w", index, err)
	}

	tile := buf
	if h.Compression == CompressionDeflate {
		r, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, errCorrupt("tile %d: %v", index, err)
		}
		defer r.Close()
		tile, err = io.ReadAll(r)
		if err != nil {
			return nil, errCorrupt("tile %d: %v", index, err)
		}
	}

	if want := h.TileWidth * h.TileHeight * h.SamplesPerPixel; len(tile) < want {
		return nil, errCorrupt("tile %d has %d bytes, want %d", index, len(tile), want)
	}
	return tile, nil
}
