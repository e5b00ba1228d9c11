package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MaxPatternDepth bounds how deeply patterns may nest inside one another
const MaxPatternDepth = 64

var (
	ErrPatternTooDeep = errors.New("pattern nesting too deep")
	ErrNilPattern     = errors.New("nil pattern")
)

// Pattern maps a point in pattern space to a color. Composite patterns own
// their sub-patterns exclusively, forming a tree.
type Pattern interface {
	// LocalColorAt evaluates the pattern at a point already in pattern space
	LocalColorAt(patternPoint core.Tuple) core.Color
	Transform() core.Transform
}

// Composite is implemented by patterns built from other patterns
type Composite interface {
	Children() []Pattern
}

// ObjectSpace converts world points into the local space of the body that owns a pattern
type ObjectSpace interface {
	WorldToObject(worldPoint core.Tuple) core.Tuple
}

// ColorAt converts a point from the parent's space into p's pattern space and evaluates p
func ColorAt(p Pattern, point core.Tuple) core.Color {
	return p.LocalColorAt(p.Transform().PointToLocal(point))
}

// ColorAtObject evaluates p for a world-space point on object.
// A nil object is treated as an identity transform.
func ColorAtObject(p Pattern, object ObjectSpace, worldPoint core.Tuple) core.Color {
	objectPoint := worldPoint
	if object != nil {
		objectPoint = object.WorldToObject(worldPoint)
	}
	return ColorAt(p, objectPoint)
}

// ValidatePattern walks the pattern tree and rejects nil or excessively deep nodes
func ValidatePattern(p Pattern) error {
	return validatePattern(p, 1)
}

func validatePattern(p Pattern, depth int) error {
	if p == nil {
		return ErrNilPattern
	}
	if depth > MaxPatternDepth {
		return fmt.Errorf("%w: limit is %d", ErrPatternTooDeep, MaxPatternDepth)
	}
	if c, ok := p.(Composite); ok {
		for _, child := range c.Children() {
			if err := validatePattern(child, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// patternTransform holds a pattern's cached transform
type patternTransform struct {
	transform core.Transform
}

func identityPatternTransform() patternTransform {
	return patternTransform{transform: core.IdentityTransform()}
}

// Transform returns the pattern's transform
func (pt *patternTransform) Transform() core.Transform {
	return pt.transform
}

// SetTransform replaces the pattern's transform. Singular matrices are rejected
// and leave the current transform in place.
func (pt *patternTransform) SetTransform(m core.Matrix) error {
	t, err := core.NewTransform(m)
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	pt.transform = t
	return nil
}
