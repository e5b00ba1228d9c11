package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is the double-napped cone x^2 + z^2 = y^2, optionally truncated to
// (Minimum, Maximum) and capped at either end
type Cone struct {
	Minimum   float64
	Maximum   float64
	ClosedMin bool
	ClosedMax bool
}

// NewCone creates an infinite, open double cone
func NewCone() *Cone {
	return &Cone{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCone creates a cone bounded to (minimum, maximum)
func NewTruncatedCone(minimum, maximum float64, closedMin, closedMax bool) *Cone {
	return &Cone{Minimum: minimum, Maximum: maximum, ClosedMin: closedMin, ClosedMax: closedMax}
}

// Kind implements Shape
func (c *Cone) Kind() string { return "cone" }

// LocalIntersect implements Shape
func (c *Cone) LocalIntersect(r core.Ray) []float64 {
	var xs []float64
	o, d := r.Origin, r.Direction

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	within := func(t float64) bool {
		y := o.Y + t*d.Y
		return c.Minimum < y && y < c.Maximum
	}

	switch {
	case math.Abs(a) < coefficientEpsilon && math.Abs(b) < coefficientEpsilon:
		// ray parallel to a nappe through the apex, only the caps remain
	case math.Abs(a) < coefficientEpsilon:
		// ray parallel to one nappe hits the other exactly once
		if t := -cc / (2 * b); within(t) {
			xs = append(xs, t)
		}
	default:
		discriminant := b*b - 4*a*cc
		if discriminant < -core.Epsilon {
			return appendCapHits(xs, r, c.Minimum, c.Maximum, c.ClosedMin, c.ClosedMax, math.Abs)
		}
		sqrtD := math.Sqrt(max(discriminant, 0))
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if within(t0) {
			xs = append(xs, t0)
		}
		if within(t1) {
			xs = append(xs, t1)
		}
	}

	return appendCapHits(xs, r, c.Minimum, c.Maximum, c.ClosedMin, c.ClosedMax, math.Abs)
}

// Validate rejects a closed end that has no finite bound
func (c *Cone) Validate() error {
	return validateBounds(c.Minimum, c.Maximum, c.ClosedMin, c.ClosedMax)
}

// LocalNormalAt implements Shape
func (c *Cone) LocalNormalAt(p core.Tuple) core.Tuple {
	dist := p.X*p.X + p.Z*p.Z
	if c.ClosedMax && dist < p.Y*p.Y && p.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if c.ClosedMin && dist < p.Y*p.Y && p.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	y := math.Sqrt(dist)
	if p.Y > 0 {
		y = -y
	}
	return core.NewVector(p.X, y, p.Z)
}
