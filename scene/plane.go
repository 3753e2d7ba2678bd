package scene

import (
	"math"

	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/vectors"
)

// PeriodicPlane is an infinite plane through C spanned by U and V. Points
// whose plane coordinates lie within BandWidth of an integer grid line get
// the band material, all others the main material.
type PeriodicPlane struct {
	C         vectors.Vec3
	U, V      vectors.Vec3 // unit tangents
	BandWidth float64
	Main      material.Material
	Band      material.Material

	normal vectors.Vec3
}

// NewPeriodicPlane normalizes u and v once; they are unit vectors thereafter.
func NewPeriodicPlane(c, u, v vectors.Vec3, main, band material.Material, bandWidth float64) (*PeriodicPlane, error) {
	n := u.Cross(v)
	if u.Norm() < planeEpsilon || v.Norm() < planeEpsilon || n.Norm() < planeEpsilon*u.Norm()*v.Norm() {
		return nil, ErrDegenerateTangents
	}
	return &PeriodicPlane{
		C:         c,
		U:         u.Normalize(),
		V:         v.Normalize(),
		BandWidth: bandWidth,
		Main:      main,
		Band:      band,
		normal:    n.Normalize(),
	}, nil
}

// Coordinates returns the coordinates of p along U and V, relative to C.
// Measuring from C keeps the band grid anchored to the plane origin when C
// is moved within the plane.
func (pl *PeriodicPlane) Coordinates(p vectors.Vec3) (x, y float64) {
	d := p.Sub(pl.C)
	return pl.U.Dot(d), pl.V.Dot(d)
}

func (pl *PeriodicPlane) Normal(vectors.Vec3) vectors.Vec3 {
	return pl.normal
}

func (pl *PeriodicPlane) Material(p vectors.Vec3) material.Material {
	x, y := pl.Coordinates(p)
	if distToGrid(x) < pl.BandWidth || distToGrid(y) < pl.BandWidth {
		return pl.Band
	}
	return pl.Main
}

// distToGrid returns the distance from x to the nearest integer.
func distToGrid(x float64) float64 {
	f := x - math.Floor(x)
	return math.Min(f, 1-f)
}

func (pl *PeriodicPlane) Intersect(ray Ray) (float64, vectors.Vec3) {
	c := pl.normal.Dot(ray.Direction)
	d := pl.C.Sub(ray.Origin).Dot(pl.normal)

	if math.Abs(c) <= planeEpsilon {
		if math.Abs(d) <= planeEpsilon {
			return Coplanar, ray.Origin
		}
		return Miss, vectors.Vec3{}
	}

	gamma := d / c
	if gamma <= planeEpsilon {
		// behind the origin
		return Miss, vectors.Vec3{}
	}
	return Hit, ray.At(gamma)
}
