package main

import (
	"fmt"
	"time"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/sky"
	"github.com/echoflaresat/whitted/vectors"
)

// bubbleShell is the thickness of a bubble's glass.
const bubbleShell = 0.02

type sunPosition struct {
	Time     time.Time
	Lat, Lon float64
}

type sceneOptions struct {
	Sun  *sunPosition // nil keeps the fixed overhead light
	Wall bool
}

// buildScene assembles the demo scene: three spheres, a glass bubble, a
// tiled pool floor under a calm sea, lit from above and from the left.
func buildScene(opts sceneOptions) (*scene.Scene, error) {
	s := scene.New()

	if opts.Sun != nil {
		s.AddLight(sky.SunLight(opts.Sun.Time, opts.Sun.Lat, opts.Sun.Lon, colors.White()))
	} else {
		s.AddLight(scene.NewLight(vectors.Point4{X: 0, Y: 0, Z: 1, W: 0}, colors.White()))
	}
	s.AddLight(scene.NewLight(vectors.Point4{X: -10, Y: -4, Z: 2, W: 1}, colors.White()))

	spheres := []struct {
		center vectors.Vec3
		radius float64
		mat    material.Material
	}{
		{vectors.New(0, 0, 0), 2, material.Bronze()},
		{vectors.New(0, 4, 0), 1, material.Emerald()},
		{vectors.New(6, 6, 0), 3, material.WhitePlastic()},
	}
	for _, sp := range spheres {
		sphere, err := scene.NewSphere(sp.center, sp.radius, sp.mat)
		if err != nil {
			return nil, err
		}
		s.Add(sphere)
	}

	if err := addBubble(s, vectors.New(-5, 4, -1), 2, material.Glass()); err != nil {
		return nil, err
	}

	pool, err := scene.NewPeriodicPlane(vectors.New(0, 0, -2.5), vectors.New(5, 0, 0), vectors.New(0, 5, 0),
		material.BlueWater(), material.WhitePlastic(), 0.05)
	if err != nil {
		return nil, fmt.Errorf("pool floor: %w", err)
	}
	s.Add(pool)

	sea, err := scene.NewWaterPlane(vectors.New(0, 0, -2), vectors.New(5, 0, 0), vectors.New(0, 5, 0),
		material.BlueWater(), nil)
	if err != nil {
		return nil, fmt.Errorf("sea: %w", err)
	}
	s.Add(sea)

	if opts.Wall {
		wall, err := scene.NewPeriodicPlane(vectors.New(-15, 0, 0), vectors.New(0, 2, 0), vectors.New(0, 0, 4),
			material.Silver(), material.BlackPlastic(), 0.025)
		if err != nil {
			return nil, fmt.Errorf("wall: %w", err)
		}
		s.Add(wall)
	}

	return s, nil
}

// addBubble adds a hollow sphere of material m: an outer sphere and an inner
// one with the refractive indices swapped, so rays leave the glass on the
// inside.
func addBubble(s *scene.Scene, c vectors.Vec3, r float64, m material.Material) error {
	outer, err := scene.NewSphere(c, r, m)
	if err != nil {
		return fmt.Errorf("bubble: %w", err)
	}
	inner, err := scene.NewSphere(c, r-bubbleShell, m.Inverted())
	if err != nil {
		return fmt.Errorf("bubble: %w", err)
	}
	s.Add(outer, inner)
	return nil
}
