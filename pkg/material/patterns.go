package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/noise"
)

// SolidPattern is a single color everywhere
type SolidPattern struct {
	patternTransform
	Color core.Color
}

// Solid creates a solid pattern
func Solid(c core.Color) *SolidPattern {
	return &SolidPattern{patternTransform: identityPatternTransform(), Color: c}
}

// LocalColorAt returns the solid color
func (p *SolidPattern) LocalColorAt(core.Tuple) core.Color {
	return p.Color
}

// pair holds the two sub-patterns of a two-color pattern
type pair struct {
	A, B Pattern
}

// Children returns both sub-patterns
func (p *pair) Children() []Pattern {
	return []Pattern{p.A, p.B}
}

// StripePattern alternates A and B on unit bands along x
type StripePattern struct {
	patternTransform
	pair
}

// NewStripePattern creates a stripe pattern
func NewStripePattern(a, b Pattern) *StripePattern {
	return &StripePattern{patternTransform: identityPatternTransform(), pair: pair{a, b}}
}

// LocalColorAt implements Pattern
func (p *StripePattern) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(point.X)) {
		return ColorAt(p.A, point)
	}
	return ColorAt(p.B, point)
}

// GradientPattern blends from A to B over each unit interval of x
type GradientPattern struct {
	patternTransform
	pair
}

// NewGradientPattern creates a linear gradient
func NewGradientPattern(a, b Pattern) *GradientPattern {
	return &GradientPattern{patternTransform: identityPatternTransform(), pair: pair{a, b}}
}

// LocalColorAt implements Pattern
func (p *GradientPattern) LocalColorAt(point core.Tuple) core.Color {
	fraction := point.X - math.Floor(point.X)
	return ColorAt(p.A, point).Lerp(ColorAt(p.B, point), fraction)
}

// RingPattern alternates A and B on concentric rings in the xz plane
type RingPattern struct {
	patternTransform
	pair
}

// NewRingPattern creates a ring pattern
func NewRingPattern(a, b Pattern) *RingPattern {
	return &RingPattern{patternTransform: identityPatternTransform(), pair: pair{a, b}}
}

// LocalColorAt implements Pattern
func (p *RingPattern) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(math.Hypot(point.X, point.Z))) {
		return ColorAt(p.A, point)
	}
	return ColorAt(p.B, point)
}

// RadialGradientPattern blends from A to B over each unit of distance from the
// y axis. YFactor mixes the y coordinate into the distance; 0 gives cylinders
// of constant color and 1 gives spheres.
type RadialGradientPattern struct {
	patternTransform
	pair
	YFactor float64
}

// NewRadialGradientPattern creates a radial gradient with the given y factor
func NewRadialGradientPattern(a, b Pattern, yFactor float64) *RadialGradientPattern {
	return &RadialGradientPattern{
		patternTransform: identityPatternTransform(),
		pair:             pair{a, b},
		YFactor:          yFactor,
	}
}

// LocalColorAt implements Pattern
func (p *RadialGradientPattern) LocalColorAt(point core.Tuple) core.Color {
	y := point.Y * p.YFactor
	r := math.Sqrt(point.X*point.X + point.Z*point.Z + y*y)
	fraction := r - math.Floor(r)
	return ColorAt(p.A, point).Lerp(ColorAt(p.B, point), fraction)
}

// CheckersPattern alternates A and B in unit cubes
type CheckersPattern struct {
	patternTransform
	pair
}

// NewCheckersPattern creates a 3D checker pattern
func NewCheckersPattern(a, b Pattern) *CheckersPattern {
	return &CheckersPattern{patternTransform: identityPatternTransform(), pair: pair{a, b}}
}

// LocalColorAt implements Pattern
func (p *CheckersPattern) LocalColorAt(point core.Tuple) core.Color {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	if isEven(sum) {
		return ColorAt(p.A, point)
	}
	return ColorAt(p.B, point)
}

// BlendPattern mixes A and B evaluated at the same point. Weight is the share
// of B; 0.5 is the arithmetic mean.
type BlendPattern struct {
	patternTransform
	pair
	Weight float64
}

// NewBlendPattern creates an even blend of two patterns
func NewBlendPattern(a, b Pattern) *BlendPattern {
	return NewWeightedBlendPattern(a, b, 0.5)
}

// NewWeightedBlendPattern creates a blend giving weight to b and 1-weight to a
func NewWeightedBlendPattern(a, b Pattern, weight float64) *BlendPattern {
	return &BlendPattern{patternTransform: identityPatternTransform(), pair: pair{a, b}, Weight: weight}
}

// LocalColorAt implements Pattern
func (p *BlendPattern) LocalColorAt(point core.Tuple) core.Color {
	return ColorAt(p.A, point).Lerp(ColorAt(p.B, point), p.Weight)
}

// PerturbedPattern jitters each coordinate with octave Perlin noise before
// evaluating the wrapped pattern
type PerturbedPattern struct {
	patternTransform
	Pattern     Pattern
	Scale       float64
	Octaves     int
	Persistence float64
}

// NewPerturbedPattern wraps p with a noise offset of at most scale per axis
func NewPerturbedPattern(p Pattern, scale float64, octaves int, persistence float64) *PerturbedPattern {
	return &PerturbedPattern{
		patternTransform: identityPatternTransform(),
		Pattern:          p,
		Scale:            scale,
		Octaves:          octaves,
		Persistence:      persistence,
	}
}

// Children returns the wrapped pattern
func (p *PerturbedPattern) Children() []Pattern {
	return []Pattern{p.Pattern}
}

// LocalColorAt implements Pattern
func (p *PerturbedPattern) LocalColorAt(point core.Tuple) core.Color {
	// Offset z per axis so the three jitters are decorrelated.
	jitter := func(dz float64) float64 {
		return (noise.Octave(point.X, point.Y, point.Z+dz, p.Octaves, p.Persistence)*2 - 1) * p.Scale
	}
	perturbed := core.NewPoint(point.X+jitter(0), point.Y+jitter(1), point.Z+jitter(2))
	return ColorAt(p.Pattern, perturbed)
}

func isEven(f float64) bool {
	return math.Mod(f, 2) == 0
}
