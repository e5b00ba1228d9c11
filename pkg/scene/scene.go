package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultMaxDepth is the number of reflection/refraction bounces followed when a scene does not say
const DefaultMaxDepth = 5

// Scene is a world plus the cameras that can view it
type Scene struct {
	Name     string
	World    *World
	Cameras  []geometry.CameraConfig
	MaxDepth int
}

// NewScene creates an empty scene with the default camera
func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		World:    NewWorld(),
		Cameras:  []geometry.CameraConfig{geometry.DefaultCameraConfig()},
		MaxDepth: DefaultMaxDepth,
	}
}

// CameraConfig finds a camera by name. An empty name selects the first camera.
func (s *Scene) CameraConfig(name string) (geometry.CameraConfig, error) {
	if len(s.Cameras) == 0 {
		return geometry.CameraConfig{}, fmt.Errorf("scene %q has no cameras", s.Name)
	}
	if name == "" {
		return s.Cameras[0], nil
	}
	for _, c := range s.Cameras {
		if c.Name == name {
			return c, nil
		}
	}
	return geometry.CameraConfig{}, fmt.Errorf("scene %q has no camera named %q", s.Name, name)
}

// CameraNames lists the scene's cameras in declaration order
func (s *Scene) CameraNames() []string {
	names := make([]string, len(s.Cameras))
	for i, c := range s.Cameras {
		names[i] = c.Name
	}
	return names
}

// Validate checks the world, the cameras and the recursion depth
func (s *Scene) Validate() error {
	var errs []error
	if s.World == nil {
		errs = append(errs, errors.New("scene has no world"))
	} else if err := s.World.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", s.MaxDepth))
	}
	seen := make(map[string]bool)
	for _, c := range s.Cameras {
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate camera %q", c.Name))
		}
		seen[c.Name] = true
		if _, err := geometry.NewCameraFromConfig(c); err != nil {
			errs = append(errs, fmt.Errorf("camera %q: %w", c.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// lookFrom returns a camera config with the given view and default settings
func lookFrom(from, to core.Tuple) geometry.CameraConfig {
	c := geometry.DefaultCameraConfig()
	c.From = from
	c.To = to
	c.Up = core.NewVector(0, 1, 0)
	return c
}

// mustTransform sets a hard-coded transform, panicking if it is singular
func mustTransform(b *geometry.Body, m core.Matrix) {
	if err := b.SetTransform(m); err != nil {
		panic(err)
	}
}

type transformable interface {
	SetTransform(m core.Matrix) error
}

// mustPatternTransform is mustTransform for patterns
func mustPatternTransform(p transformable, m core.Matrix) {
	if err := p.SetTransform(m); err != nil {
		panic(err)
	}
}

// stripedFloor is the blended diagonal stripe floor shared by several scenes
func stripedFloor(a, b core.Color, scale, twist float64) *geometry.Body {
	floor := geometry.NewBody(geometry.NewPlane())
	floor.Name = "floor"
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Ambient = 0.2
	floor.Material.Specular = 0

	left := material.NewStripePattern(material.Solid(a), material.Solid(b))
	right := material.NewStripePattern(material.Solid(a), material.Solid(b))
	mustPatternTransform(left, core.UniformScaling(scale).Then(core.RotationY(quarterPi)))
	mustPatternTransform(right, core.UniformScaling(scale).Then(core.RotationY(-quarterPi)))
	blend := material.NewBlendPattern(left, right)
	mustPatternTransform(blend, core.RotationY(twist))
	floor.Material.Pattern = blend
	return floor
}
