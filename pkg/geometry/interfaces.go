package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrUnboundedCap is returned for a cylinder or cone end that is closed but infinite
var ErrUnboundedCap = errors.New("closed end needs a finite bound")

// Shape is a primitive defined in its own object space
type Shape interface {
	// LocalIntersect returns every t at which the object-space ray meets the
	// surface, negative values included, in no particular order
	LocalIntersect(localRay core.Ray) []float64
	// LocalNormalAt returns the object-space normal at an object-space point.
	// The result need not be normalized.
	LocalNormalAt(localPoint core.Tuple) core.Tuple
	// Kind names the primitive ("sphere", "plane", ...)
	Kind() string
}

// validator is implemented by shapes whose parameters can be invalid
type validator interface {
	Validate() error
}

// coefficientEpsilon decides when a quadratic degenerates or a ray runs parallel to a slab
const coefficientEpsilon = 1e-10
