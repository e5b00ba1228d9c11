package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned box spanning [-1, 1] on every axis
type Cube struct{}

// NewCube creates a cube
func NewCube() *Cube {
	return &Cube{}
}

// Kind implements Shape
func (c *Cube) Kind() string { return "cube" }

// LocalIntersect intersects the three slab pairs and keeps the tightest interval
func (c *Cube) LocalIntersect(r core.Ray) []float64 {
	xtMin, xtMax := checkAxis(r.Origin.X, r.Direction.X)
	ytMin, ytMax := checkAxis(r.Origin.Y, r.Direction.Y)

	tMin := max(xtMin, ytMin)
	tMax := min(xtMax, ytMax)
	if tMin > tMax {
		return nil
	}

	ztMin, ztMax := checkAxis(r.Origin.Z, r.Direction.Z)
	tMin = max(tMin, ztMin)
	tMax = min(tMax, ztMax)
	if tMin > tMax || math.IsInf(tMin, 0) || math.IsInf(tMax, 0) {
		return nil
	}
	return []float64{tMin, tMax}
}

// checkAxis returns where the ray enters and leaves the slab [-1, 1] on one axis.
// A ray parallel to the slab is inside it for all t or for none.
func checkAxis(origin, direction float64) (float64, float64) {
	tMinNumerator := -1 - origin
	tMaxNumerator := 1 - origin

	if math.Abs(direction) < coefficientEpsilon {
		if tMinNumerator > 0 || tMaxNumerator < 0 {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}

	tMin := tMinNumerator / direction
	tMax := tMaxNumerator / direction
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// LocalNormalAt picks the axis with the largest absolute component
func (c *Cube) LocalNormalAt(p core.Tuple) core.Tuple {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	maxC := max(ax, ay, az)

	switch maxC {
	case ax:
		return core.NewVector(p.X, 0, 0)
	case ay:
		return core.NewVector(0, p.Y, 0)
	}
	return core.NewVector(0, 0, p.Z)
}
