package scene

import (
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/vectors"
)

// Light is implemented by *PointLight and *DirectionalLight.
type Light interface {
	// Direction returns the unit vector from p towards the light.
	Direction(p vectors.Vec3) vectors.Vec3
	// Color returns the light reaching p, ignoring occluders.
	Color(p vectors.Vec3) colors.Color
	// Distance returns how far the light is from p, +Inf for lights at infinity.
	Distance(p vectors.Vec3) float64
}

// PointLight emits uniformly from a position, without falloff.
type PointLight struct {
	Position vectors.Vec3
	Emission colors.Color
}

func (l *PointLight) Direction(p vectors.Vec3) vectors.Vec3 {
	return l.Position.Sub(p).Normalize()
}

func (l *PointLight) Color(vectors.Vec3) colors.Color {
	return l.Emission
}

func (l *PointLight) Distance(p vectors.Vec3) float64 {
	return vectors.Distance(l.Position, p)
}

// DirectionalLight is a light at infinity, such as the sun.
type DirectionalLight struct {
	Toward   vectors.Vec3 // unit vector pointing at the light
	Emission colors.Color
}

func NewDirectionalLight(toward vectors.Vec3, c colors.Color) *DirectionalLight {
	return &DirectionalLight{Toward: toward.Normalize(), Emission: c}
}

func (l *DirectionalLight) Direction(vectors.Vec3) vectors.Vec3 {
	return l.Toward
}

func (l *DirectionalLight) Color(vectors.Vec3) colors.Color {
	return l.Emission
}

func (l *DirectionalLight) Distance(vectors.Vec3) float64 {
	return math.Inf(1)
}

// NewLight builds a light from a homogeneous position: W == 0 gives a
// directional light shining from (X,Y,Z), anything else a point light.
func NewLight(pos vectors.Point4, c colors.Color) Light {
	p, finite := pos.Affine()
	if !finite {
		return NewDirectionalLight(p, c)
	}
	return &PointLight{Position: p, Emission: c}
}
