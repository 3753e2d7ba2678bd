package render

import (
	"math"

	"github.com/echoflaresat/whitted/vectors"
)

// Camera is a view box: an origin and the directions of the rays through the
// four corner pixels. Pixel directions are interpolated between the corners,
// which is close to, but not exactly, a perspective projection.
type Camera struct {
	Origin vectors.Vec3
	DirUL  vectors.Vec3 // upper-left, pixel (0,0)
	DirUR  vectors.Vec3 // upper-right, pixel (width-1,0)
	DirLL  vectors.Vec3 // lower-left, pixel (0,height-1)
	DirLR  vectors.Vec3 // lower-right, pixel (width-1,height-1)
}

func NewCamera(origin, dirUL, dirUR, dirLL, dirLR vectors.Vec3) Camera {
	return Camera{Origin: origin, DirUL: dirUL, DirUR: dirUR, DirLL: dirLL, DirLR: dirLR}
}

// NewLookAtCamera builds the view box of a pinhole camera at origin looking
// at target. fovDeg is the horizontal field of view and aspect is width/height.
func NewLookAtCamera(origin, target, up vectors.Vec3, fovDeg, aspect float64) Camera {
	fwd := target.Sub(origin).Normalize()
	right := fwd.Cross(up)
	if right.Norm() < 1e-6 {
		right = fwd.Cross(vectors.Vec3{X: 1, Y: 0, Z: 0}) // up parallel to the view axis
	}
	right = right.Normalize()
	camUp := right.Cross(fwd).Normalize()

	halfW := math.Tan(fovDeg * math.Pi / 180.0 / 2.0)
	halfH := halfW / aspect

	corner := func(sx, sy float64) vectors.Vec3 {
		return fwd.Add(right.Scale(sx * halfW)).Add(camUp.Scale(sy * halfH))
	}
	return Camera{
		Origin: origin,
		DirUL:  corner(-1, 1),
		DirUR:  corner(1, 1),
		DirLL:  corner(-1, -1),
		DirLR:  corner(1, -1),
	}
}

// Direction returns the unit direction of the primary ray through pixel
// (x, y) of a width×height image. The left and right edge directions are
// interpolated vertically and renormalized, then interpolated horizontally.
func (c Camera) Direction(x, y, width, height int) vectors.Vec3 {
	ty := fraction(y, height)
	dirL := c.DirUL.Lerp(c.DirLL, ty).Normalize()
	dirR := c.DirUR.Lerp(c.DirLR, ty).Normalize()

	tx := fraction(x, width)
	return dirL.Lerp(dirR, tx).Normalize()
}

// fraction maps i in [0, n-1] onto [0, 1]; a single pixel sits in the middle.
func fraction(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}
