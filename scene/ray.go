package scene

import "github.com/echoflaresat/whitted/vectors"

// Ray is a half line with a remaining recursion budget. A ray with Depth <= 0
// never spawns reflected or refracted rays.
type Ray struct {
	Origin    vectors.Vec3
	Direction vectors.Vec3
	Depth     int
}

func NewRay(origin, direction vectors.Vec3, depth int) Ray {
	return Ray{Origin: origin, Direction: direction, Depth: depth}
}

// At returns Origin + t*Direction.
func (r Ray) At(t float64) vectors.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
