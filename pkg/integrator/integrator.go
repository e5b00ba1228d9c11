package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the color seen along ray. Implementations must be safe
	// for concurrent use since render workers share one integrator.
	RayColor(ray core.Ray, world *scene.World) core.Color
}
