package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(100 * y), B: 7, A: 255})
		}
	}
	return img
}

func imagesEqual(t *testing.T, want, got image.Image) {
	t.Helper()
	if want.Bounds().Size() != got.Bounds().Size() {
		t.Fatalf("size = %v, want %v", got.Bounds().Size(), want.Bounds().Size())
	}
	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			w := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			if w != g {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestPPM_EncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePPM(&buf, testImage()); err != nil {
		t.Fatalf("EncodePPM: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "P6\n3 2\n255\n") {
		t.Errorf("unexpected header %q", buf.String()[:12])
	}

	img, format, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "ppm" {
		t.Errorf("format = %q, want ppm", format)
	}
	imagesEqual(t, testImage(), img)
}

func TestPPM_DecodeASCIIWithComment(t *testing.T) {
	src := "P3\n# written by hand\n2 1\n# max\n15\n15 0 0   0 15 15\n"
	img, err := DecodePPM(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodePPM: %v", err)
	}
	if got := img.At(0, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("At(0,0) = %v", got)
	}
	if got := img.At(1, 0); got != (color.NRGBA{G: 255, B: 255, A: 255}) {
		t.Errorf("At(1,0) = %v", got)
	}
}

func TestPPM_DecodeErrors(t *testing.T) {
	cases := map[string]string{
		"bad magic":    "P5\n1 1\n255\n\x00",
		"bad size":     "P3\n0 1\n255\n",
		"truncated":    "P6\n2 2\n255\n\x00\x00\x00",
		"above maxval": "P3\n1 1\n10\n11 0 0\n",
		"not a number": "P3\nx 1\n255\n",
		"overflowing":  "P6\n3037000500 3037000500\n255\n",
		"too large":    "P6\n100000 100000\n255\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodePPM(strings.NewReader(src)); err == nil {
				t.Error("expected an error")
			}
			if _, _, err := image.Decode(strings.NewReader(src)); err == nil {
				t.Error("image.Decode: expected an error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.ppm"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, testImage()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			img, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			imagesEqual(t, testImage(), img)
		})
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.gif"), testImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
