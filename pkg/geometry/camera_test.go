package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCamera_PixelSize(t *testing.T) {
	tests := []struct {
		name   string
		hsize  int
		vsize  int
		expect float64
	}{
		{"horizontal canvas", 200, 125, 0.01},
		{"vertical canvas", 125, 200, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(tt.hsize, tt.vsize, math.Pi/2)
			if !core.ApproxEqual(c.PixelSize(), tt.expect) {
				t.Errorf("Expected pixel size %v, got %v", tt.expect, c.PixelSize())
			}
		})
	}
}

func TestCamera_RayForPixel(t *testing.T) {
	half := math.Sqrt2 / 2

	rotated := NewCamera(201, 101, math.Pi/2)
	if err := rotated.SetTransform(core.Translation(0, -2, 5).Then(core.RotationY(math.Pi / 4))); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		camera    *Camera
		px, py    int
		origin    core.Tuple
		direction core.Tuple
	}{
		{"center of canvas", NewCamera(201, 101, math.Pi/2), 100, 50, core.NewPoint(0, 0, 0), core.NewVector(0, 0, -1)},
		{"corner of canvas", NewCamera(201, 101, math.Pi/2), 0, 0, core.NewPoint(0, 0, 0), core.NewVector(0.66519, 0.33259, -0.66851)},
		{"transformed camera", rotated, 100, 50, core.NewPoint(0, 2, -5), core.NewVector(half, 0, -half)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.camera.RayForPixel(tt.px, tt.py)
			if r.Origin.Subtract(tt.origin).Magnitude() > tolerance {
				t.Errorf("Expected origin %v, got %v", tt.origin, r.Origin)
			}
			if r.Direction.Subtract(tt.direction).Magnitude() > tolerance {
				t.Errorf("Expected direction %v, got %v", tt.direction, r.Direction)
			}
		})
	}
}

func TestNewCameraFromConfig(t *testing.T) {
	config := DefaultCameraConfig()
	config.Resolution = Resolution{11, 11}
	config.FieldOfView = math.Pi / 2
	config.From = core.NewPoint(0, 0, -5)
	config.To = core.NewPoint(0, 0, 0)

	c, err := NewCameraFromConfig(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r := c.RayForPixel(5, 5)
	if !r.Origin.Equals(core.NewPoint(0, 0, -5)) || !r.Direction.Equals(core.NewVector(0, 0, 1)) {
		t.Errorf("Center ray = %v", r)
	}

	bad := []struct {
		name   string
		modify func(c *CameraConfig)
	}{
		{"empty resolution", func(c *CameraConfig) { c.Resolution = Resolution{} }},
		{"field of view too wide", func(c *CameraConfig) { c.FieldOfView = 4 }},
		{"eye on target", func(c *CameraConfig) { c.To = c.From }},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config
			tt.modify(&cfg)
			if _, err := NewCameraFromConfig(cfg); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestResolution(t *testing.T) {
	tests := []struct {
		name     string
		expected Resolution
	}{
		{"VGA", Resolution{640, 480}},
		{"svga", Resolution{800, 600}},
		{"XGA", Resolution{1024, 768}},
		{"SXGA", Resolution{1280, 1024}},
		{" fhd ", Resolution{1920, 1080}},
		{"QHD", Resolution{2560, 1440}},
		{"UHD", Resolution{3840, 2160}},
	}
	for _, tt := range tests {
		got, err := ParseResolution(tt.name)
		if err != nil || got != tt.expected {
			t.Errorf("ParseResolution(%q) = %v, %v; expected %v", tt.name, got, err, tt.expected)
		}
	}

	if _, err := ParseResolution("8K"); err == nil {
		t.Error("Expected unknown resolution to fail")
	}
	if got := QHD.Draft(); got != (Resolution{640, 360}) {
		t.Errorf("QHD draft = %v", got)
	}
	if got := (Resolution{3, 2}).Draft(); got != (Resolution{1, 1}) {
		t.Errorf("Tiny draft = %v", got)
	}
	if names := ResolutionNames(); len(names) != 7 || names[0] != "VGA" || names[6] != "UHD" {
		t.Errorf("Unexpected resolution order %v", names)
	}
}
