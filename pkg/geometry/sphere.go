package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the unit sphere centered at the origin
type Sphere struct{}

// NewSphere creates a unit sphere
func NewSphere() *Sphere {
	return &Sphere{}
}

// Kind implements Shape
func (s *Sphere) Kind() string { return "sphere" }

// LocalIntersect solves |o + t*d|^2 = 1. A tangent ray reports the double root twice.
func (s *Sphere) LocalIntersect(r core.Ray) []float64 {
	sphereToRay := r.Origin.AsVector()
	a := r.Direction.Dot(r.Direction)
	if a < coefficientEpsilon {
		return nil
	}
	b := 2 * r.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)
	return []float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)}
}

// LocalNormalAt implements Shape
func (s *Sphere) LocalNormalAt(p core.Tuple) core.Tuple {
	return p.AsVector()
}
