package render

import (
	"math"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/texture"
)

// Background gives the color of rays that leave the scene.
type Background interface {
	Color(ray scene.Ray) colors.Color
}

// CheckerSky is a procedural backdrop for Z-up scenes: a checkered ground
// fading to white with distance below the horizon, and a white-blue-black
// sky gradient above it.
type CheckerSky struct{}

func (CheckerSky) Color(ray scene.Ray) colors.Color {
	d := ray.Direction.Normalize()
	z := d.Z
	switch {
	case z < 0:
		x := -0.5 * d.X / z
		y := -0.5 * d.Y / z
		t := math.Min(math.Sqrt(x*x+y*y), 30.0) / 30.0
		x -= math.Floor(x)
		y -= math.Floor(y)
		if (x >= 0.5) == (y >= 0.5) {
			return colors.Gray(0.2).Mix(colors.White(), t)
		}
		return colors.Gray(0.4).Mix(colors.White(), t)
	case z < 0.5:
		return colors.White().Mix(colors.Blue(), z*2)
	case z < 1:
		return colors.Blue().Mix(colors.Black(), (z-0.5)*1.5)
	}
	return colors.Black()
}

// Environment looks escaping rays up in a longitude/latitude image.
type Environment struct {
	Texture texture.Texture
}

func (e Environment) Color(ray scene.Ray) colors.Color {
	return e.Texture.Sample(ray.Direction)
}

// Uniform is a constant background color.
type Uniform colors.Color

func (u Uniform) Color(scene.Ray) colors.Color {
	return colors.Color(u)
}
