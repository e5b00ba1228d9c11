package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Body is a shape placed in a world with a transform and a material.
// Bodies are not modified while a render is running.
type Body struct {
	Name      string
	Shape     Shape
	Material  material.Material
	transform core.Transform
}

// NewBody creates a body with an identity transform and the default material
func NewBody(shape Shape) *Body {
	return &Body{
		Name:      shape.Kind(),
		Shape:     shape,
		Material:  material.DefaultMaterial(),
		transform: core.IdentityTransform(),
	}
}

// NewGlassSphere creates a unit sphere made of glass
func NewGlassSphere() *Body {
	b := NewBody(NewSphere())
	b.Material = material.GlassMaterial()
	return b
}

// Transform returns the body's transform
func (b *Body) Transform() core.Transform {
	return b.transform
}

// SetTransform replaces the transform and its cached inverses in one step.
// A singular matrix is rejected and the body is left unchanged.
func (b *Body) SetTransform(m core.Matrix) error {
	t, err := core.NewTransform(m)
	if err != nil {
		return fmt.Errorf("body %q: %w", b.Name, err)
	}
	b.transform = t
	return nil
}

// WorldToObject converts a world point into the body's object space
func (b *Body) WorldToObject(worldPoint core.Tuple) core.Tuple {
	return b.transform.PointToLocal(worldPoint)
}

// Intersect returns the body's intersections with a world-space ray
func (b *Body) Intersect(ray core.Ray) Intersections {
	return b.AppendIntersections(nil, ray)
}

// AppendIntersections appends the body's intersections with ray to dst
func (b *Body) AppendIntersections(dst Intersections, ray core.Ray) Intersections {
	local := b.transform.RayToLocal(ray)
	if local.Direction.Magnitude() < coefficientEpsilon {
		return dst
	}
	for _, t := range b.Shape.LocalIntersect(local) {
		dst = append(dst, Intersection{T: t, Body: b})
	}
	return dst
}

// NormalAt returns the unit world-space normal at a world point on the surface
func (b *Body) NormalAt(worldPoint core.Tuple) core.Tuple {
	localNormal := b.Shape.LocalNormalAt(b.WorldToObject(worldPoint))
	return b.transform.NormalToWorld(localNormal)
}

// Validate checks the body's shape parameters and material
func (b *Body) Validate() error {
	if b.Shape == nil {
		return fmt.Errorf("body %q has no shape", b.Name)
	}
	if v, ok := b.Shape.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("body %q: %s: %w", b.Name, b.Shape.Kind(), err)
		}
	}
	if err := b.Material.Validate(); err != nil {
		return fmt.Errorf("body %q: %w", b.Name, err)
	}
	return nil
}
