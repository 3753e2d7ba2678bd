package scene

import (
	"math"
	"testing"

	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/vectors"
)

const tolerance = 1e-9

func assertVec(t *testing.T, name string, got, want vectors.Vec3) {
	t.Helper()
	if math.Abs(got.X-want.X) > tolerance ||
		math.Abs(got.Y-want.Y) > tolerance ||
		math.Abs(got.Z-want.Z) > tolerance {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func mustSphere(t *testing.T, c vectors.Vec3, r float64, m material.Material) *Sphere {
	t.Helper()
	s, err := NewSphere(c, r, m)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func mustPlane(t *testing.T, c, u, v vectors.Vec3, main, band material.Material, w float64) *PeriodicPlane {
	t.Helper()
	p, err := NewPeriodicPlane(c, u, v, main, band, w)
	if err != nil {
		t.Fatalf("NewPeriodicPlane: %v", err)
	}
	return p
}
