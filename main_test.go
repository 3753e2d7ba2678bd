package main

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/echoflaresat/whitted/material"
	"github.com/echoflaresat/whitted/render"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
)

func TestBuildScene(t *testing.T) {
	tests := []struct {
		name     string
		opts     sceneOptions
		surfaces int
	}{
		{"default scene", sceneOptions{}, 7},
		{"with wall", sceneOptions{Wall: true}, 8},
		{"sunlit", sceneOptions{Sun: &sunPosition{Time: time.Date(2024, 6, 21, 10, 0, 0, 0, time.UTC), Lat: 47.4979, Lon: 19.0402}}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := buildScene(tt.opts)
			if err != nil {
				t.Fatalf("buildScene: %v", err)
			}
			if len(s.Surfaces) != tt.surfaces {
				t.Errorf("surfaces = %d, want %d", len(s.Surfaces), tt.surfaces)
			}
			if len(s.Lights) != 2 {
				t.Errorf("lights = %d, want 2", len(s.Lights))
			}
			if _, ok := s.Lights[0].(*scene.DirectionalLight); !ok {
				t.Errorf("first light is %T, want a directional light", s.Lights[0])
			}
			if _, ok := s.Lights[1].(*scene.PointLight); !ok {
				t.Errorf("second light is %T, want a point light", s.Lights[1])
			}
		})
	}
}

func TestAddBubble(t *testing.T) {
	s := scene.New()
	m := material.Glass()
	if err := addBubble(s, vectors.New(1, 2, 3), 2, m); err != nil {
		t.Fatalf("addBubble: %v", err)
	}
	if len(s.Surfaces) != 2 {
		t.Fatalf("surfaces = %d, want 2", len(s.Surfaces))
	}
	outer := s.Surfaces[0].(*scene.Sphere)
	inner := s.Surfaces[1].(*scene.Sphere)
	if math.Abs(outer.Radius-inner.Radius-bubbleShell) > 1e-12 {
		t.Errorf("shell thickness = %f, want %f", outer.Radius-inner.Radius, bubbleShell)
	}
	if inner.Mat.InIndex != m.OutIndex || inner.Mat.OutIndex != m.InIndex {
		t.Errorf("inner shell indices = %f/%f, want them swapped", inner.Mat.InIndex, inner.Mat.OutIndex)
	}

	if err := addBubble(s, vectors.Zero(), bubbleShell/2, m); err == nil {
		t.Error("expected an error for a bubble thinner than its shell")
	}
}

func TestRenderDemoScene(t *testing.T) {
	s, err := buildScene(sceneOptions{Wall: true})
	if err != nil {
		t.Fatalf("buildScene: %v", err)
	}
	r := &render.Renderer{
		Scene:      s,
		Camera:     render.NewLookAtCamera(vectors.New(16, -14, 7), vectors.New(0, 2, 0), vectors.New(0, 0, 1), 60, 4.0/3.0),
		Background: render.CheckerSky{},
		Width:      16,
		Height:     12,
		MaxDepth:   4,
	}
	img, err := r.Render(4, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i, c := range img.Pix {
		for _, v := range []float64{c.R, c.G, c.B} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("pixel %d = %v, want channels in [0,1]", i, c)
			}
		}
	}
}

func TestParseVec(t *testing.T) {
	v, err := parseVec("1.5, -2,3e1")
	if err != nil {
		t.Fatalf("parseVec: %v", err)
	}
	if v != vectors.New(1.5, -2, 30) {
		t.Errorf("parseVec = %v", v)
	}
	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c"} {
		if _, err := parseVec(bad); err == nil {
			t.Errorf("parseVec(%q) should fail", bad)
		}
	}
}

func TestParseGrid(t *testing.T) {
	cols, rows, err := parseGrid("4x3")
	if err != nil || cols != 4 || rows != 3 {
		t.Errorf("parseGrid(4x3) = %d, %d, %v", cols, rows, err)
	}
	for _, bad := range []string{"4", "4x", "x3", "0x3", "4x3x2"} {
		if _, _, err := parseGrid(bad); err == nil {
			t.Errorf("parseGrid(%q) should fail", bad)
		}
	}
}

func TestTileRect(t *testing.T) {
	tests := []struct {
		idx  int
		want image.Rectangle
	}{
		{0, image.Rect(0, 0, 160, 160)},
		{3, image.Rect(480, 0, 640, 160)},
		{4, image.Rect(0, 160, 160, 320)},
		{11, image.Rect(480, 320, 640, 480)},
	}
	for _, tt := range tests {
		got, err := tileRect(640, 480, 4, 3, tt.idx)
		if err != nil {
			t.Fatalf("tileRect(%d): %v", tt.idx, err)
		}
		if got != tt.want {
			t.Errorf("tileRect(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}

	if _, err := tileRect(640, 480, 4, 3, 12); err == nil {
		t.Error("expected an error for a tile index past the grid")
	}
	if _, err := tileRect(640, 480, 3, 3, 0); err == nil {
		t.Error("expected an error for an uneven split")
	}
}
