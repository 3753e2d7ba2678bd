package scene

import (
	"math"

	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/vectors"
)

// Wave is one traveling-wave term of a water surface.
type Wave struct {
	Amplitude  float64
	Angle      float64 // propagation direction in the plane, radians
	Wavelength float64
	Phase      float64
}

// DefaultWaves is a calm sea.
var DefaultWaves = []Wave{
	{Amplitude: 0.1, Angle: 3.2, Wavelength: 2.4},
	{Amplitude: 0.2, Angle: 2.4, Wavelength: 0.8},
	{Amplitude: 0.23, Angle: 1.1, Wavelength: 1.31},
	{Amplitude: 0.03, Angle: 0.54, Wavelength: 0.52},
	{Amplitude: 0.3, Angle: 1.69, Wavelength: 1.6},
}

// WaterPlane is a plane whose shading normal is rippled by a sum of waves.
// The geometry stays flat.
type WaterPlane struct {
	*PeriodicPlane
	Waves []Wave
}

// NewWaterPlane builds a water surface with a single material. A nil waves
// slice selects DefaultWaves.
func NewWaterPlane(c, u, v vectors.Vec3, m material.Material, waves []Wave) (*WaterPlane, error) {
	plane, err := NewPeriodicPlane(c, u, v, m, material.BlackPlastic(), 0)
	if err != nil {
		return nil, err
	}
	if waves == nil {
		waves = DefaultWaves
	}
	return &WaterPlane{PeriodicPlane: plane, Waves: waves}, nil
}

// Distortion returns the summed wave height term at plane coordinates (x, y).
func (w *WaterPlane) Distortion(x, y float64) float64 {
	var d float64
	for _, wave := range w.Waves {
		t := x*math.Cos(wave.Angle) + y*math.Sin(wave.Angle)
		d += wave.Amplitude * math.Cos(2*math.Pi*t/wave.Wavelength+wave.Phase)
	}
	return d
}

// Normal adds the wave distortion to the vertical component of the plane
// normal. The result is not unit length.
func (w *WaterPlane) Normal(p vectors.Vec3) vectors.Vec3 {
	x, y := w.Coordinates(p)
	n := w.PeriodicPlane.Normal(p)
	// added rather than substituted, so a flat sea keeps its plane normal
	n.Z += w.Distortion(x, y)
	return n
}

func (w *WaterPlane) Material(vectors.Vec3) material.Material {
	return w.Main
}
