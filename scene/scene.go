package scene

import "github.com/echoflaresat/whitted/vectors"

// Scene is an ordered collection of surfaces and lights. It must not be
// modified while a render is in progress.
type Scene struct {
	Surfaces []Surface
	Lights   []Light
}

func New() *Scene {
	return &Scene{}
}

func (s *Scene) Add(surfaces ...Surface) {
	s.Surfaces = append(s.Surfaces, surfaces...)
}

func (s *Scene) AddLight(lights ...Light) {
	s.Lights = append(s.Lights, lights...)
}

// Intersect returns the intersection closest to the ray origin. Among
// equally distant hits the surface added first wins. On a miss it returns
// Miss and a nil surface.
func (s *Scene) Intersect(ray Ray) (float64, Surface, vectors.Vec3) {
	best := Miss
	var bestSurface Surface
	var bestPoint vectors.Vec3
	bestDist := 0.0

	for _, surf := range s.Surfaces {
		ri, p := surf.Intersect(ray)
		if !IsHit(ri) {
			continue
		}
		d := vectors.Distance(p, ray.Origin)
		if bestSurface == nil || d < bestDist {
			best, bestSurface, bestPoint, bestDist = ri, surf, p, d
		}
	}
	return best, bestSurface, bestPoint
}
