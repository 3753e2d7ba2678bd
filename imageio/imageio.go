// Package imageio reads and writes rendered images and environment maps.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP format with image.Decode
	_ "golang.org/x/image/webp" // register WebP format with image.Decode
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Save writes img to path, choosing the encoder from the file extension:
// .png, .jpg/.jpeg or .ppm.
func Save(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(f *os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error {
			return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
		}
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error {
			return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
		}
	case ".ppm":
		encode = func(f *os.File) error {
			return EncodePPM(f, img)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Load decodes any registered format: PNG, JPEG, BMP, WebP or PPM.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
