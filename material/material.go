// Package material describes how a surface responds to light.
package material

import "github.com/echoflaresat/whitted/colors"

// Material is an immutable description of a surface. The coefficients are
// multiplicative attenuation factors in [0,1]; the refractive indices are
// positive.
type Material struct {
	Ambient  colors.Color
	Diffuse  colors.Color
	Specular colors.Color

	// Shininess is the Phong exponent of the specular highlight.
	Shininess float64

	Diffusion  float64
	Reflection float64
	Refraction float64

	// InIndex is the refractive index inside the object, OutIndex outside.
	InIndex  float64
	OutIndex float64
}

// Inverted returns m with the inside and outside refractive indices swapped.
// It is used for the inner shell of hollow objects.
func (m Material) Inverted() Material {
	m.InIndex, m.OutIndex = m.OutIndex, m.InIndex
	return m
}

func opaque(ambient, diffuse, specular colors.Color, shininess, diffusion, reflection float64) Material {
	return Material{
		Ambient:    ambient,
		Diffuse:    diffuse,
		Specular:   specular,
		Shininess:  shininess,
		Diffusion:  diffusion,
		Reflection: reflection,
		InIndex:    1.0,
		OutIndex:   1.0,
	}
}

func Bronze() Material {
	return opaque(
		colors.New(0.1, 0.1, 0.0),
		colors.New(0.6, 0.4, 0.1),
		colors.New(0.5, 0.5, 0.4),
		10.0, 0.5, 0.5,
	)
}

func Emerald() Material {
	return opaque(
		colors.New(0.0, 0.1, 0.0),
		colors.New(0.2, 0.8, 0.4),
		colors.New(0.4, 1.0, 0.6),
		30.0, 0.6, 0.4,
	)
}

func WhitePlastic() Material {
	return opaque(
		colors.Gray(0.1),
		colors.Gray(0.8),
		colors.White(),
		20.0, 0.9, 0.1,
	)
}

func RedPlastic() Material {
	return opaque(
		colors.New(0.1, 0.0, 0.0),
		colors.New(0.85, 0.05, 0.05),
		colors.New(1.0, 0.8, 0.8),
		20.0, 0.9, 0.1,
	)
}

func BlackPlastic() Material {
	return opaque(
		colors.Black(),
		colors.Gray(0.01),
		colors.Gray(0.5),
		32.0, 0.9, 0.1,
	)
}

func Silver() Material {
	return opaque(
		colors.Gray(0.1),
		colors.Gray(0.2),
		colors.Gray(0.9),
		51.2, 0.1, 0.9,
	)
}

func Mirror() Material {
	return opaque(
		colors.Black(),
		colors.Gray(0.1),
		colors.White(),
		100.0, 0.0, 1.0,
	)
}

// Glass is mostly transparent with a weak reflection. Entering it bends rays
// towards the normal (index 1.5 inside, 1.0 outside).
func Glass() Material {
	return Material{
		Ambient:    colors.Black(),
		Diffuse:    colors.New(0.95, 0.95, 1.0),
		Specular:   colors.White(),
		Shininess:  80.0,
		Diffusion:  0.0,
		Reflection: 0.1,
		Refraction: 0.9,
		InIndex:    1.5,
		OutIndex:   1.0,
	}
}

func BlueWater() Material {
	return Material{
		Ambient:    colors.New(0.0, 0.0, 0.1),
		Diffuse:    colors.New(0.2, 0.4, 0.8),
		Specular:   colors.White(),
		Shininess:  80.0,
		Diffusion:  0.2,
		Reflection: 0.3,
		Refraction: 0.6,
		InIndex:    1.33,
		OutIndex:   1.0,
	}
}
