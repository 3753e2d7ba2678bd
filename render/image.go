package render

import (
	"image"
	"image/color"

	"github.com/echoflaresat/whitted/colors"
)

// Image is a row-major grid of colors covering Rect. For a full frame Rect
// starts at (0,0), the upper-left pixel.
type Image struct {
	Rect image.Rectangle
	Pix  []colors.Color
}

func NewImage(r image.Rectangle) *Image {
	return &Image{Rect: r, Pix: make([]colors.Color, r.Dx()*r.Dy())}
}

func (img *Image) offset(x, y int) int {
	return (y-img.Rect.Min.Y)*img.Rect.Dx() + (x - img.Rect.Min.X)
}

// Pixel returns the color at (x, y), which must lie inside Rect.
func (img *Image) Pixel(x, y int) colors.Color {
	return img.Pix[img.offset(x, y)]
}

func (img *Image) Set(x, y int, c colors.Color) {
	img.Pix[img.offset(x, y)] = c
}

func (img *Image) ColorModel() color.Model {
	return colors.Model
}

func (img *Image) Bounds() image.Rectangle {
	return img.Rect
}

func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return colors.Black()
	}
	return img.Pixel(x, y)
}
