package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the y axis, optionally truncated
// to (Minimum, Maximum) and capped at either end
type Cylinder struct {
	Minimum   float64
	Maximum   float64
	ClosedMin bool
	ClosedMax bool
}

// NewCylinder creates an infinite, open cylinder
func NewCylinder() *Cylinder {
	return &Cylinder{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCylinder creates a cylinder bounded to (minimum, maximum)
func NewTruncatedCylinder(minimum, maximum float64, closedMin, closedMax bool) *Cylinder {
	return &Cylinder{Minimum: minimum, Maximum: maximum, ClosedMin: closedMin, ClosedMax: closedMax}
}

// Kind implements Shape
func (c *Cylinder) Kind() string { return "cylinder" }

// LocalIntersect implements Shape
func (c *Cylinder) LocalIntersect(r core.Ray) []float64 {
	var xs []float64

	a := r.Direction.X*r.Direction.X + r.Direction.Z*r.Direction.Z
	// a ray parallel to the axis can only hit the caps
	if a >= coefficientEpsilon {
		b := 2*r.Origin.X*r.Direction.X + 2*r.Origin.Z*r.Direction.Z
		cc := r.Origin.X*r.Origin.X + r.Origin.Z*r.Origin.Z - 1
		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		for _, t := range [2]float64{t0, t1} {
			y := r.Origin.Y + t*r.Direction.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, t)
			}
		}
	}

	return appendCapHits(xs, r, c.Minimum, c.Maximum, c.ClosedMin, c.ClosedMax, func(float64) float64 { return 1 })
}

// Validate rejects a closed end that has no finite bound
func (c *Cylinder) Validate() error {
	return validateBounds(c.Minimum, c.Maximum, c.ClosedMin, c.ClosedMax)
}

// LocalNormalAt implements Shape
func (c *Cylinder) LocalNormalAt(p core.Tuple) core.Tuple {
	dist := p.X*p.X + p.Z*p.Z
	if c.ClosedMax && dist < 1 && p.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if c.ClosedMin && dist < 1 && p.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	return core.NewVector(p.X, 0, p.Z)
}

func validateBounds(minimum, maximum float64, closedMin, closedMax bool) error {
	switch {
	case math.IsNaN(minimum) || math.IsNaN(maximum):
		return fmt.Errorf("bounds (%v, %v) must be numbers", minimum, maximum)
	case minimum > maximum:
		return fmt.Errorf("minimum %v is above maximum %v", minimum, maximum)
	case closedMin && math.IsInf(minimum, 0):
		return fmt.Errorf("%w: minimum", ErrUnboundedCap)
	case closedMax && math.IsInf(maximum, 0):
		return fmt.Errorf("%w: maximum", ErrUnboundedCap)
	}
	return nil
}

// appendCapHits adds intersections with the closed end caps. radiusAt gives
// the cap radius for a cap at height y. An end without a finite bound has no cap.
func appendCapHits(xs []float64, r core.Ray, minimum, maximum float64, closedMin, closedMax bool, radiusAt func(y float64) float64) []float64 {
	if (!closedMin && !closedMax) || math.Abs(r.Direction.Y) < core.Epsilon {
		return xs
	}
	if closedMin && !math.IsInf(minimum, 0) {
		t := (minimum - r.Origin.Y) / r.Direction.Y
		if withinCap(r, t, radiusAt(minimum)) {
			xs = append(xs, t)
		}
	}
	if closedMax && !math.IsInf(maximum, 0) {
		t := (maximum - r.Origin.Y) / r.Direction.Y
		if withinCap(r, t, radiusAt(maximum)) {
			xs = append(xs, t)
		}
	}
	return xs
}

// withinCap reports whether the ray at t lies inside a cap of the given radius
func withinCap(r core.Ray, t, radius float64) bool {
	x := r.Origin.X + t*r.Direction.X
	z := r.Origin.Z + t*r.Direction.Z
	return x*x+z*z <= radius*radius
}
