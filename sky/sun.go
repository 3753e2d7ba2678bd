// Package sky positions the sun for scenes lit by daylight.
package sky

import (
	"math"
	"time"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// SunDirectionECEF returns the unit vector from the Earth's center towards
// the sun in Earth-centered, Earth-fixed coordinates.
func SunDirectionECEF(t time.Time) vectors.Vec3 {
	jd := julian.TimeToJD(t.UTC())

	// Apparent RA/Dec of the Sun
	ra, dec := solar.ApparentEquatorial(jd)

	// Unit vector in ECI (Earth-centered inertial)
	x := dec.Cos() * math.Cos(ra.Rad())
	y := dec.Cos() * math.Sin(ra.Rad())
	z := dec.Sin()

	// Rotate ECI → ECEF by the apparent sidereal time at the instant
	gast := sidereal.Apparent(jd).Angle()
	cosG := gast.Cos()
	sinG := gast.Sin()

	return vectors.Vec3{
		X: x*cosG + y*sinG,
		Y: -x*sinG + y*cosG,
		Z: z,
	}
}

// SunDirection returns the direction of the sun seen from an observer at
// latDeg/lonDeg, in a local frame with X east, Y north and Z up.
func SunDirection(t time.Time, latDeg, lonDeg float64) vectors.Vec3 {
	s := SunDirectionECEF(t)

	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	east := vectors.Vec3{X: -sinLon, Y: cosLon}
	north := vectors.Vec3{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	up := vectors.Vec3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}

	return vectors.Vec3{X: s.Dot(east), Y: s.Dot(north), Z: s.Dot(up)}.Normalize()
}

// SunLight returns a directional light placed where the sun is for the
// observer. Below the horizon the light is dimmed to black.
func SunLight(t time.Time, latDeg, lonDeg float64, c colors.Color) *scene.DirectionalLight {
	dir := SunDirection(t, latDeg, lonDeg)
	// fade out over the last few degrees above the horizon
	fade := math.Max(0, math.Min(1, dir.Z/0.05))
	return scene.NewDirectionalLight(dir, c.Scale(fade))
}
