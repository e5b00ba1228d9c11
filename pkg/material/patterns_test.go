package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// pointPattern returns the pattern-space point as a color
type pointPattern struct {
	patternTransform
}

func newPointPattern() *pointPattern {
	return &pointPattern{patternTransform: identityPatternTransform()}
}

func (p *pointPattern) LocalColorAt(point core.Tuple) core.Color {
	return core.NewColor(point.X, point.Y, point.Z)
}

// scaledObject stands in for a body with a transform
type scaledObject struct {
	transform core.Transform
}

func (o scaledObject) WorldToObject(p core.Tuple) core.Tuple {
	return o.transform.PointToLocal(p)
}

func mustSetTransform(t *testing.T, p interface{ SetTransform(core.Matrix) error }, m core.Matrix) {
	t.Helper()
	if err := p.SetTransform(m); err != nil {
		t.Fatalf("SetTransform: %v", err)
	}
}

func stripes() *StripePattern {
	return NewStripePattern(Solid(core.White), Solid(core.Black))
}

func TestStripePattern(t *testing.T) {
	p := stripes()

	tests := []struct {
		name     string
		point    core.Tuple
		expected core.Color
	}{
		{"constant in y 0", core.NewPoint(0, 0, 0), core.White},
		{"constant in y 1", core.NewPoint(0, 1, 0), core.White},
		{"constant in y 2", core.NewPoint(0, 2, 0), core.White},
		{"constant in z 1", core.NewPoint(0, 0, 1), core.White},
		{"constant in z 2", core.NewPoint(0, 0, 2), core.White},
		{"x 0.9", core.NewPoint(0.9, 0, 0), core.White},
		{"x 1", core.NewPoint(1, 0, 0), core.Black},
		{"x -0.1", core.NewPoint(-0.1, 0, 0), core.Black},
		{"x -1", core.NewPoint(-1, 0, 0), core.Black},
		{"x -1.1", core.NewPoint(-1.1, 0, 0), core.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorAt(p, tt.point); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPattern_Transforms(t *testing.T) {
	t.Run("object transformation", func(t *testing.T) {
		object := scaledObject{core.MustTransform(core.Scaling(2, 2, 2))}
		if got := ColorAtObject(stripes(), object, core.NewPoint(1.5, 0, 0)); !got.Equals(core.White) {
			t.Errorf("Expected white, got %v", got)
		}
	})

	t.Run("pattern transformation", func(t *testing.T) {
		p := stripes()
		mustSetTransform(t, p, core.Scaling(2, 2, 2))
		if got := ColorAtObject(p, nil, core.NewPoint(1.5, 0, 0)); !got.Equals(core.White) {
			t.Errorf("Expected white, got %v", got)
		}
	})

	t.Run("object and pattern transformation", func(t *testing.T) {
		object := scaledObject{core.MustTransform(core.Scaling(2, 2, 2))}
		p := stripes()
		mustSetTransform(t, p, core.Translation(0.5, 0, 0))
		if got := ColorAtObject(p, object, core.NewPoint(2.5, 0, 0)); !got.Equals(core.White) {
			t.Errorf("Expected white, got %v", got)
		}
	})

	t.Run("point pattern sees pattern space", func(t *testing.T) {
		object := scaledObject{core.MustTransform(core.Scaling(2, 2, 2))}
		p := newPointPattern()
		mustSetTransform(t, p, core.Translation(0.5, 1, 1.5))
		got := ColorAtObject(p, object, core.NewPoint(2.5, 3, 3.5))
		if !got.Equals(core.NewColor(0.75, 0.5, 0.25)) {
			t.Errorf("Expected (0.75, 0.5, 0.25), got %v", got)
		}
	})

	t.Run("singular transform rejected", func(t *testing.T) {
		p := stripes()
		mustSetTransform(t, p, core.Translation(1, 0, 0))
		if err := p.SetTransform(core.Scaling(0, 1, 1)); !errors.Is(err, core.ErrNotInvertible) {
			t.Errorf("Expected ErrNotInvertible, got %v", err)
		}
		if !p.Transform().Matrix().Equals(core.Translation(1, 0, 0)) {
			t.Error("Failed SetTransform must keep the previous transform")
		}
	})
}

func TestGradientPattern(t *testing.T) {
	p := NewGradientPattern(Solid(core.White), Solid(core.Black))

	tests := []struct {
		x        float64
		expected core.Color
	}{
		{0, core.White},
		{0.25, core.NewColor(0.75, 0.75, 0.75)},
		{0.5, core.NewColor(0.5, 0.5, 0.5)},
		{0.75, core.NewColor(0.25, 0.25, 0.25)},
	}
	for _, tt := range tests {
		if got := ColorAt(p, core.NewPoint(tt.x, 0, 0)); !got.Equals(tt.expected) {
			t.Errorf("x=%v: expected %v, got %v", tt.x, tt.expected, got)
		}
	}
}

func TestRingPattern(t *testing.T) {
	p := NewRingPattern(Solid(core.White), Solid(core.Black))

	tests := []struct {
		point    core.Tuple
		expected core.Color
	}{
		{core.NewPoint(0, 0, 0), core.White},
		{core.NewPoint(1, 0, 0), core.Black},
		{core.NewPoint(0, 0, 1), core.Black},
		{core.NewPoint(0.708, 0, 0.708), core.Black},
	}
	for _, tt := range tests {
		if got := ColorAt(p, tt.point); !got.Equals(tt.expected) {
			t.Errorf("%v: expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestRadialGradientPattern(t *testing.T) {
	side := func(radius float64) float64 { return math.Sqrt(radius * radius / 2) }

	flat := NewRadialGradientPattern(Solid(core.White), Solid(core.Black), 0)
	tests := []struct {
		name     string
		point    core.Tuple
		expected core.Color
	}{
		{"origin", core.NewPoint(0, 0, 0), core.White},
		{"x 0.25", core.NewPoint(0.25, 0, 0), core.NewColor(0.75, 0.75, 0.75)},
		{"x 0.5", core.NewPoint(0.5, 0, 0), core.NewColor(0.5, 0.5, 0.5)},
		{"diagonal 0.25", core.NewPoint(side(0.25), 0, side(0.25)), core.NewColor(0.75, 0.75, 0.75)},
		{"diagonal 0.75", core.NewPoint(side(0.75), 0, side(0.75)), core.NewColor(0.25, 0.25, 0.25)},
		{"ignores y without factor", core.NewPoint(0.5, 7.3, 0), core.NewColor(0.5, 0.5, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorAt(flat, tt.point); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	spherical := NewRadialGradientPattern(Solid(core.White), Solid(core.Black), 1)
	if got := ColorAt(spherical, core.NewPoint(0, 0.25, 0)); !got.Equals(core.NewColor(0.75, 0.75, 0.75)) {
		t.Errorf("Expected y to contribute with y factor 1, got %v", got)
	}
}

func TestCheckersPattern(t *testing.T) {
	p := NewCheckersPattern(Solid(core.White), Solid(core.Black))

	tests := []struct {
		name     string
		point    core.Tuple
		expected core.Color
	}{
		{"x 0", core.NewPoint(0, 0, 0), core.White},
		{"x 0.99", core.NewPoint(0.99, 0, 0), core.White},
		{"x 1.01", core.NewPoint(1.01, 0, 0), core.Black},
		{"y 0.99", core.NewPoint(0, 0.99, 0), core.White},
		{"y 1.01", core.NewPoint(0, 1.01, 0), core.Black},
		{"z 0.99", core.NewPoint(0, 0, 0.99), core.White},
		{"z 1.01", core.NewPoint(0, 0, 1.01), core.Black},
		{"negative diagonal", core.NewPoint(-0.5, -0.5, 0.5), core.White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorAt(p, tt.point); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNestedPattern(t *testing.T) {
	// four stripes per unit inside two stripes per unit
	inner1 := NewStripePattern(Solid(core.White), Solid(core.Black))
	mustSetTransform(t, inner1, core.Scaling(0.5, 0.5, 0.5))
	inner2 := NewStripePattern(Solid(core.Green), Solid(core.Red))
	mustSetTransform(t, inner2, core.Scaling(0.5, 0.5, 0.5))
	outer := NewStripePattern(inner1, inner2)
	mustSetTransform(t, outer, core.Scaling(0.5, 0.5, 0.5))

	tests := []struct {
		x        float64
		expected core.Color
	}{
		{0.125, core.White},
		{0.375, core.Black},
		{0.625, core.Green},
		{0.875, core.Red},
	}
	for _, tt := range tests {
		if got := ColorAt(outer, core.NewPoint(tt.x, 0, 0)); !got.Equals(tt.expected) {
			t.Errorf("x=%v: expected %v, got %v", tt.x, tt.expected, got)
		}
	}
}

func TestBlendPattern(t *testing.T) {
	p0 := stripes()
	mustSetTransform(t, p0, core.Scaling(0.5, 0.5, 0.5))
	p1 := stripes()
	mustSetTransform(t, p1, core.Scaling(0.5, 0.5, 0.5).Then(core.RotationY(math.Pi/2)))
	blend := NewBlendPattern(p0, p1)
	grey := core.NewColor(0.5, 0.5, 0.5)

	tests := []struct {
		point    core.Tuple
		expected core.Color
	}{
		{core.NewPoint(0.25, 0, 0.25), grey},
		{core.NewPoint(0.25, 0, 0.75), core.White},
		{core.NewPoint(0.75, 0, 0.25), core.Black},
		{core.NewPoint(0.75, 0, 0.75), grey},
	}
	for _, tt := range tests {
		if got := ColorAt(blend, tt.point); !got.Equals(tt.expected) {
			t.Errorf("%v: expected %v, got %v", tt.point, tt.expected, got)
		}
	}

	weighted := NewWeightedBlendPattern(Solid(core.White), Solid(core.Black), 0.25)
	if got := ColorAt(weighted, core.NewPoint(0, 0, 0)); !got.Equals(core.NewColor(0.75, 0.75, 0.75)) {
		t.Errorf("Weighted blend: got %v", got)
	}
}

func TestPerturbedPattern(t *testing.T) {
	base := NewGradientPattern(Solid(core.White), Solid(core.Black))

	t.Run("zero scale is the wrapped pattern", func(t *testing.T) {
		p := NewPerturbedPattern(base, 0, 4, 0.9)
		for i := 0; i < 50; i++ {
			point := core.NewPoint(float64(i)*0.173, 0.4, float64(i)*0.071)
			if got, want := ColorAt(p, point), ColorAt(base, point); got != want {
				t.Fatalf("%v: expected %v, got %v", point, want, got)
			}
		}
	})

	t.Run("deterministic and distorting", func(t *testing.T) {
		p := NewPerturbedPattern(base, 0.4, 4, 0.9)
		differs := false
		for i := 0; i < 50; i++ {
			point := core.NewPoint(float64(i)*0.173+0.05, 0.4, float64(i)*0.071+0.05)
			got := ColorAt(p, point)
			if again := ColorAt(p, point); again != got {
				t.Fatalf("Perturbed pattern is not deterministic at %v", point)
			}
			if !got.Equals(ColorAt(base, point)) {
				differs = true
			}
		}
		if !differs {
			t.Error("Expected noise to move at least one sample")
		}
	})
}

func TestValidatePattern_Depth(t *testing.T) {
	var p Pattern = Solid(core.White)
	for i := 1; i < MaxPatternDepth; i++ {
		p = NewStripePattern(p, Solid(core.Black))
	}
	if err := ValidatePattern(p); err != nil {
		t.Fatalf("Depth %d should be accepted: %v", MaxPatternDepth, err)
	}

	p = NewStripePattern(p, Solid(core.Black))
	if err := ValidatePattern(p); !errors.Is(err, ErrPatternTooDeep) {
		t.Errorf("Expected ErrPatternTooDeep, got %v", err)
	}

	// a cycle is cut off by the same limit
	cyclic := NewStripePattern(Solid(core.White), nil)
	cyclic.B = cyclic
	if err := ValidatePattern(cyclic); !errors.Is(err, ErrPatternTooDeep) {
		t.Errorf("Expected ErrPatternTooDeep for a cycle, got %v", err)
	}
}
