// Package texture samples environment images by direction.
package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/echoflaresat/tiff"
	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/imageio"
	mmtiff "github.com/echoflaresat/whitted/texture/tiff"
	"github.com/echoflaresat/whitted/vectors"
)

// Texture is an equirectangular (longitude/latitude) image.
type Texture struct {
	Width  int
	Height int
	img    image.Image
	min    image.Point
}

// New wraps an already decoded image.
func New(img image.Image) Texture {
	b := img.Bounds()
	return Texture{Width: b.Dx(), Height: b.Dy(), img: img, min: b.Min}
}

// Load reads an environment image. Uncompressed striped and tiled TIFF files
// are memory-mapped; other TIFF flavors and PNG, JPEG, BMP, WebP and PPM
// images are decoded into memory.
func Load(path string) (Texture, error) {
	img, err := loadImage(path)
	if err != nil {
		return Texture{}, fmt.Errorf("load texture %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return Texture{}, fmt.Errorf("load texture %s: empty image", path)
	}
	return New(img), nil
}

func loadImage(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	img, err := mmtiff.LoadStripedTiff(path)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, mmtiff.ErrInvalidTiffHeader) {
		slog.Warn("failed to load striped TIFF", "path", path, "error", err)
	}

	img, err = mmtiff.LoadTiledTiff(path)
	if err == nil {
		return img, nil
	}
	isTiff := !errors.Is(err, mmtiff.ErrInvalidTiffHeader)
	if isTiff {
		slog.Warn("failed to load tiled TIFF", "path", path, "error", err)
		return decodeTiff(path)
	}

	// fallback to image codecs
	return imageio.Load(path)
}

func decodeTiff(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tiff.Decode(f)
}

// Close releases memory-mapped image data, if any.
func (t Texture) Close() error {
	if c, ok := t.img.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Sample maps the direction d (Z up) to longitude/latitude texture
// coordinates and returns the nearest pixel.
func (t Texture) Sample(d vectors.Vec3) colors.Color {
	return t.getColorAtXY(t.getXY(d))
}

func (t Texture) getColorAtXY(x, y int) colors.Color {
	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}
	return colors.FromStandardColor(t.img.At(x+t.min.X, y+t.min.Y))
}

func (t Texture) getXY(d vectors.Vec3) (int, int) {
	lat := math.Atan2(d.Z, math.Sqrt(d.X*d.X+d.Y*d.Y))
	lon := math.Atan2(d.Y, d.X)
	if lon < 0 {
		lon += 2 * math.Pi
	}

	u := float64(t.Width)/2.0 + lon/(2*math.Pi)*float64(t.Width-1)
	u = math.Mod(u, float64(t.Width))
	if u < 0 {
		u += float64(t.Width)
	}
	v := (0.5 - (lat / math.Pi)) * float64(t.Height-1)

	return int(u), int(v)
}
