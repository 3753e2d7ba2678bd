package texture

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/imageio"
	"github.com/echoflaresat/whitted/vectors"
)

// gradient encodes the pixel position in the color: R = x*50, G = y*50.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(50 * x), G: uint8(50 * y), A: 255})
		}
	}
	return img
}

func pixel(x, y int) colors.Color {
	return colors.From8BitRgb(uint8(50*x), uint8(50*y), 0)
}

func TestSample(t *testing.T) {
	tex := New(gradient(4, 3))

	cases := []struct {
		name string
		dir  vectors.Vec3
		x, y int
	}{
		{"zenith", vectors.New(0, 0, 1), 2, 0},
		{"nadir", vectors.New(0, 0, -1), 2, 2},
		{"east horizon", vectors.New(1, 0, 0), 2, 1},
		{"west horizon", vectors.New(-1, 0, 0), 3, 1},
		{"unnormalized", vectors.New(-7, 0, 0), 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := tex.Sample(c.dir); got != pixel(c.x, c.y) {
				t.Errorf("Sample(%v) = %v, want pixel (%d,%d)", c.dir, got, c.x, c.y)
			}
		})
	}
}

func TestNew_SubImage(t *testing.T) {
	sub := gradient(6, 5).SubImage(image.Rect(2, 1, 6, 4))
	tex := New(sub)
	if tex.Width != 4 || tex.Height != 3 {
		t.Fatalf("size = %dx%d, want 4x3", tex.Width, tex.Height)
	}
	// zenith maps to local (2,0), which is (4,1) in the parent image
	if got := tex.Sample(vectors.New(0, 0, 1)); got != pixel(4, 1) {
		t.Errorf("Sample(zenith) = %v, want %v", got, pixel(4, 1))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.png")
	if err := imageio.Save(path, gradient(4, 3)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer tex.Close()

	if tex.Width != 4 || tex.Height != 3 {
		t.Errorf("size = %dx%d, want 4x3", tex.Width, tex.Height)
	}
	if got := tex.Sample(vectors.New(0, 0, -1)); got != pixel(2, 2) {
		t.Errorf("Sample(nadir) = %v, want %v", got, pixel(2, 2))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
