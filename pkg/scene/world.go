package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// World owns the bodies and lights of a scene. It is read-only while rendering
// and may be shared by any number of goroutines.
type World struct {
	Bodies []*geometry.Body
	Lights []lights.PointLight
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		Bodies: make([]*geometry.Body, 0),
		Lights: make([]lights.PointLight, 0),
	}
}

// AddBody appends bodies to the world
func (w *World) AddBody(bodies ...*geometry.Body) {
	w.Bodies = append(w.Bodies, bodies...)
}

// AddLight appends lights to the world
func (w *World) AddLight(ls ...lights.PointLight) {
	w.Lights = append(w.Lights, ls...)
}

// Intersect tests the ray against every body and returns all intersections sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, b := range w.Bodies {
		xs = b.AppendIntersections(xs, ray)
	}
	xs.Sort()
	return xs
}

// IsShadowed reports whether a shadow-casting body lies between point and light
func (w *World) IsShadowed(point core.Tuple, light lights.PointLight) bool {
	v := light.Position.Subtract(point)
	distance := v.Magnitude()
	if distance == 0 {
		return false
	}
	r := core.NewRay(point, v.Divide(distance))

	for _, b := range w.Bodies {
		if !b.Material.CastsShadow {
			continue
		}
		for _, t := range b.Shape.LocalIntersect(b.Transform().RayToLocal(r)) {
			if t >= 0 && t < distance {
				return true
			}
		}
	}
	return false
}

// Validate rejects worlds that cannot be rendered
func (w *World) Validate() error {
	var errs []error
	for i, b := range w.Bodies {
		if b == nil {
			errs = append(errs, fmt.Errorf("body %d is nil", i))
			continue
		}
		if err := b.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i, l := range w.Lights {
		if err := l.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("light %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// DefaultWorld returns the two concentric spheres lit from the upper left
// that most shading tests are written against
func DefaultWorld() *World {
	w := NewWorld()
	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White))

	outer := geometry.NewBody(geometry.NewSphere())
	outer.Name = "outer"
	outer.Material = material.DefaultMaterial()
	outer.Material.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewBody(geometry.NewSphere())
	inner.Name = "inner"
	mustTransform(inner, core.UniformScaling(0.5))

	w.AddBody(outer, inner)
	return w
}
