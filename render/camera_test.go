package render

import (
	"math"
	"testing"

	"github.com/echoflaresat/whitted/vectors"
)

func assertUnit(t *testing.T, v vectors.Vec3) {
	t.Helper()
	if math.Abs(v.Norm()-1) > tolerance {
		t.Errorf("|%v| = %f, want 1", v, v.Norm())
	}
}

func TestCamera_Corners(t *testing.T) {
	cam := NewCamera(vectors.Zero(),
		vectors.New(-1, 1, -1),
		vectors.New(1, 1, -1),
		vectors.New(-1, -1, -1),
		vectors.New(1, -1, -1),
	)

	tests := []struct {
		x, y int
		want vectors.Vec3
	}{
		{0, 0, cam.DirUL},
		{9, 0, cam.DirUR},
		{0, 7, cam.DirLL},
		{9, 7, cam.DirLR},
	}
	for _, tt := range tests {
		got := cam.Direction(tt.x, tt.y, 10, 8)
		want := tt.want.Normalize()
		if vectors.Distance(got, want) > tolerance {
			t.Errorf("Direction(%d,%d) = %v, want %v", tt.x, tt.y, got, want)
		}
	}
}

func TestCamera_DirectionsAreUnit(t *testing.T) {
	cam := NewLookAtCamera(vectors.New(3, -7, 2), vectors.Zero(), vectors.New(0, 0, 1), 70, 16.0/9.0)
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			assertUnit(t, cam.Direction(x, y, 16, 9))
		}
	}
}

func TestCamera_SinglePixelLooksForward(t *testing.T) {
	origin := vectors.New(0, 0, 10)
	cam := NewLookAtCamera(origin, vectors.Zero(), vectors.New(0, 1, 0), 60, 1)

	got := cam.Direction(0, 0, 1, 1)
	if vectors.Distance(got, vectors.New(0, 0, -1)) > tolerance {
		t.Errorf("Direction = %v, want (0,0,-1)", got)
	}
}

func TestNewLookAtCamera_Orientation(t *testing.T) {
	cam := NewLookAtCamera(vectors.Zero(), vectors.New(0, 1, 0), vectors.New(0, 0, 1), 90, 2)

	// looking along +Y with Z up: +X is to the right, +Z is up
	if cam.DirUL.X >= 0 || cam.DirUR.X <= 0 {
		t.Errorf("left/right corners swapped: UL %v, UR %v", cam.DirUL, cam.DirUR)
	}
	if cam.DirUL.Z <= 0 || cam.DirLL.Z >= 0 {
		t.Errorf("top/bottom corners swapped: UL %v, LL %v", cam.DirUL, cam.DirLL)
	}
	// 90° horizontal field of view
	if math.Abs(cam.DirUR.X-1) > tolerance || math.Abs(cam.DirUR.Y-1) > tolerance {
		t.Errorf("DirUR = %v, want x = y = 1", cam.DirUR)
	}
	// aspect 2 halves the vertical extent
	if math.Abs(cam.DirUR.Z-0.5) > tolerance {
		t.Errorf("DirUR.Z = %f, want 0.5", cam.DirUR.Z)
	}
}

func TestNewLookAtCamera_UpAlongViewAxis(t *testing.T) {
	cam := NewLookAtCamera(vectors.New(0, 0, 10), vectors.Zero(), vectors.New(0, 0, 1), 45, 1)
	for _, d := range []vectors.Vec3{cam.DirUL, cam.DirUR, cam.DirLL, cam.DirLR} {
		if math.IsNaN(d.X) || math.IsNaN(d.Y) || math.IsNaN(d.Z) {
			t.Fatalf("corner %v is not finite", d)
		}
	}
	assertUnit(t, cam.Direction(1, 1, 3, 3))
}
