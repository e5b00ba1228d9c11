package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane through the origin
type Plane struct{}

// NewPlane creates an xz plane
func NewPlane() *Plane {
	return &Plane{}
}

// Kind implements Shape
func (p *Plane) Kind() string { return "plane" }

// LocalIntersect implements Shape. Parallel and coplanar rays miss.
func (p *Plane) LocalIntersect(r core.Ray) []float64 {
	if math.Abs(r.Direction.Y) < core.Epsilon {
		return nil
	}
	return []float64{-r.Origin.Y / r.Direction.Y}
}

// LocalNormalAt implements Shape
func (p *Plane) LocalNormalAt(core.Tuple) core.Tuple {
	return core.NewVector(0, 1, 0)
}
