package scene

import (
	"fmt"
	"math"

	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/vectors"
)

type Sphere struct {
	Center vectors.Vec3
	Radius float64
	Mat    material.Material
}

func NewSphere(center vectors.Vec3, radius float64, m material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return &Sphere{Center: center, Radius: radius, Mat: m}, nil
}

// Intersect solves |O + tD - C|^2 = r^2 for the smallest positive t.
func (s *Sphere) Intersect(ray Ray) (float64, vectors.Vec3) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return Miss, vectors.Vec3{}
	}
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return Miss, vectors.Vec3{}
	}

	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / (2.0 * a)
	t2 := (-b + sqrtDisc) / (2.0 * a)

	// t1 <= t2 since a > 0
	t := t1
	if t <= 0 {
		t = t2
	}
	if t <= 0 {
		return Miss, vectors.Vec3{}
	}
	return Hit, ray.At(t)
}

func (s *Sphere) Normal(p vectors.Vec3) vectors.Vec3 {
	return p.Sub(s.Center).Normalize()
}

func (s *Sphere) Material(vectors.Vec3) material.Material {
	return s.Mat
}
