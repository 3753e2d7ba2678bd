// Package scene holds the geometry and lights of a render and answers
// nearest-hit queries against them.
//
// Intersection results follow a sign convention: a negative value means the
// ray hits the surface and the returned point is valid, a non-negative value
// means it misses. Every caller tests the sign, never a distance.
package scene

import (
	"errors"

	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/vectors"
)

const (
	// Hit is returned for an ordinary intersection.
	Hit = -1.0
	// Coplanar is returned when a ray runs inside a plane. The reported point
	// is the ray origin.
	Coplanar = -2.0
	// Miss is returned when the ray does not reach the surface.
	Miss = 1.0
)

// planeEpsilon is the threshold under which the denominator of the plane
// intersection formula is treated as zero.
const planeEpsilon = 1e-5

var (
	ErrDegenerateTangents = errors.New("tangent vectors must be non-zero and not parallel")
	ErrInvalidRadius      = errors.New("sphere radius must be positive")
)

// Surface is implemented by *Sphere, *PeriodicPlane and *WaterPlane.
// Implementations are immutable once built and safe for concurrent use.
type Surface interface {
	// Intersect returns a negative value and the intersection point when the
	// ray hits the surface, and a non-negative value otherwise.
	Intersect(ray Ray) (float64, vectors.Vec3)
	// Normal returns the surface normal at (or near) p.
	Normal(p vectors.Vec3) vectors.Vec3
	// Material returns the material at p.
	Material(p vectors.Vec3) material.Material
}

// IsHit reports whether an intersection result denotes a hit.
func IsHit(ri float64) bool {
	return ri < 0
}
