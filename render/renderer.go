// Package render turns a scene into an image by recursive ray tracing.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
	"golang.org/x/sync/errgroup"
)

const (
	// Epsilon is how far secondary rays start from the point that spawned
	// them, so they do not hit the same surface again immediately.
	Epsilon = 1e-4

	// BlackThreshold is the largest channel value below which a transmitted
	// light color counts as black.
	BlackThreshold = 0.003

	// maxShadowSteps bounds the occluders a shadow probe walks through.
	maxShadowSteps = 64

	// glowCosine is the cosine of the angular radius within which lights
	// are drawn onto the background.
	glowCosine = 0.99
)

var ErrNoScene = errors.New("render: no scene attached")

// Renderer traces a scene through a camera. The scene is borrowed, not
// owned, and must not change while rendering.
type Renderer struct {
	Scene      *scene.Scene
	Camera     Camera
	Background Background // nil means black

	Width, Height int
	MaxDepth      int
}

// Render traces the full frame using up to workers goroutines, one image row
// at a time. workers <= 1 renders the rows sequentially, top to bottom.
func (r *Renderer) Render(workers int, progress *Progress) (*Image, error) {
	return r.RenderRegion(image.Rect(0, 0, r.Width, r.Height), workers, progress)
}

// RenderRegion traces the pixels of rect, a sub-rectangle of the full frame.
// The returned image covers rect.
func (r *Renderer) RenderRegion(rect image.Rectangle, workers int, progress *Progress) (*Image, error) {
	if r.Scene == nil {
		return nil, ErrNoScene
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("render: invalid resolution %dx%d", r.Width, r.Height)
	}
	frame := image.Rect(0, 0, r.Width, r.Height)
	if rect.Empty() || !rect.In(frame) {
		return nil, fmt.Errorf("render: region %v outside frame %v", rect, frame)
	}
	if workers < 1 {
		workers = 1
	}

	img := NewImage(rect)
	progress.Start(rect.Dy())

	var g errgroup.Group
	g.SetLimit(workers)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		g.Go(func() error {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				img.Set(x, y, r.Pixel(x, y))
			}
			progress.Step()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progress.Finish()
	return img, nil
}

// Pixel returns the clamped color of pixel (x, y) of the full frame.
func (r *Renderer) Pixel(x, y int) colors.Color {
	dir := r.Camera.Direction(x, y, r.Width, r.Height)
	eye := scene.NewRay(r.Camera.Origin, dir, r.MaxDepth)
	return r.Trace(eye).Clamp01()
}

// Trace returns the unclamped color seen along ray. Reflected and refracted
// rays are followed while the ray has depth left.
func (r *Renderer) Trace(ray scene.Ray) colors.Color {
	if r.Scene == nil {
		panic(ErrNoScene)
	}

	ri, obj, p := r.Scene.Intersect(ray)
	if !scene.IsHit(ri) {
		return r.BackgroundColor(ray)
	}

	m := obj.Material(p)
	var result colors.Color

	if ray.Depth > 0 {
		n := obj.Normal(p)
		if m.Reflection != 0 {
			dir := Reflect(ray.Direction, n).Normalize()
			reflected := scene.NewRay(p.Add(dir.Scale(Epsilon)), dir, ray.Depth-1)
			c := r.Trace(reflected)
			result = result.Add(c.Mul(m.Specular).Scale(m.Reflection))
		}
		if m.Refraction != 0 && ray.Depth-1 > 0 {
			if dir, ok := Refract(ray.Direction, n, m.InIndex, m.OutIndex); ok {
				refracted := scene.NewRay(p.Add(dir.Scale(Epsilon)), dir, ray.Depth-1)
				c := r.Trace(refracted)
				result = result.Add(c.Mul(m.Diffuse).Scale(m.Refraction))
			}
		}
	}

	return result.Add(r.Illumination(ray, obj, p))
}

// Reflect mirrors w about the unit normal n.
func Reflect(w, n vectors.Vec3) vectors.Vec3 {
	return w.Sub(n.Scale(2 * w.Dot(n)))
}

// Refract bends the unit direction v through a surface with normal n
// separating a medium of index inIndex (the side n points away from) from
// one of index outIndex. It reports false on total internal reflection.
func Refract(v, n vectors.Vec3, inIndex, outIndex float64) (vectors.Vec3, bool) {
	ratio := outIndex / inIndex
	if v.Dot(n) > 0 {
		// leaving the object
		ratio = inIndex / outIndex
		n = n.Neg()
	}

	cosI := n.Neg().Dot(v)
	x := 1 - ratio*ratio*(1-cosI*cosI)
	if x < 0 {
		return vectors.Vec3{}, false
	}
	return v.Scale(ratio).Add(n.Scale(ratio*cosI - math.Sqrt(x))).Normalize(), true
}

// Illumination is the direct Phong lighting of obj at p as seen along ray,
// with each light attenuated by whatever lies between p and the light.
func (r *Renderer) Illumination(ray scene.Ray, obj scene.Surface, p vectors.Vec3) colors.Color {
	m := obj.Material(p)
	n := obj.Normal(p)
	w := Reflect(ray.Direction, n).Normalize()

	diffusion := m.Diffusion
	if ray.Depth <= 0 {
		diffusion = 1
	}

	var c colors.Color
	for _, l := range r.Scene.Lights {
		dir := l.Direction(p)
		probe := scene.NewRay(p.Add(dir.Scale(Epsilon)), dir, 0)
		lc := r.Shadow(probe, l.Color(p), l.Distance(p))

		if beta := w.Dot(dir); beta >= 0 {
			ks := math.Pow(beta, m.Shininess)
			c = c.Add(lc.Mul(m.Specular).Scale(m.Reflection * ks))
		}

		kd := math.Max(0, dir.Dot(n))
		c = c.Add(lc.Mul(m.Diffuse).Scale(diffusion * kd))
	}
	return c.Add(m.Ambient)
}

// Shadow returns the part of lightColor that travels along ray for
// lightDistance. Each surface crossed filters the light by its diffuse color
// and refraction coefficient; opaque surfaces block it.
func (r *Renderer) Shadow(ray scene.Ray, lightColor colors.Color, lightDistance float64) colors.Color {
	start := ray.Origin
	probe := ray
	c := lightColor

	for step := 0; step < maxShadowSteps && c.Max() >= BlackThreshold; step++ {
		probe.Origin = probe.Origin.Add(probe.Direction.Scale(Epsilon))

		ri, obj, p := r.Scene.Intersect(probe)
		if !scene.IsHit(ri) || vectors.Distance(start, p) > lightDistance {
			return c
		}

		m := obj.Material(p)
		c = c.Mul(m.Diffuse).Scale(m.Refraction)
		probe.Origin = p
	}
	return colors.Black()
}

// BackgroundColor is the color of a ray that hits nothing: a glow around
// each light the ray points at, plus the background.
func (r *Renderer) BackgroundColor(ray scene.Ray) colors.Color {
	var result colors.Color
	dir := ray.Direction.Normalize()
	for _, l := range r.Scene.Lights {
		cosA := l.Direction(ray.Origin).Dot(dir)
		if cosA > glowCosine {
			a := math.Acos(math.Min(cosA, 1)) * 360.0 / math.Pi / 8.0
			a = math.Max(1.0-a, 0.0)
			result = result.Add(l.Color(ray.Origin).Scale(a * a))
		}
	}
	if r.Background != nil {
		result = result.Add(r.Background.Color(ray))
	}
	return result
}
