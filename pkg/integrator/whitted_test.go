package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// tolerance absorbs the over/under point offset, which differs slightly
// between published reference values and this renderer
const tolerance = 1e-3

var halfSqrt2 = math.Sqrt(2) / 2

func assertColor(t *testing.T, got, want core.Color) {
	t.Helper()
	if math.Abs(got.R-want.R) > tolerance || math.Abs(got.G-want.G) > tolerance || math.Abs(got.B-want.B) > tolerance {
		t.Errorf("Expected color %v, got %v", want, got)
	}
}

// pointPattern colors each point with its own pattern-space coordinates
type pointPattern struct{}

func (pointPattern) LocalColorAt(p core.Tuple) core.Color { return core.NewColor(p.X, p.Y, p.Z) }
func (pointPattern) Transform() core.Transform          { return core.IdentityTransform() }

func mustTransform(t *testing.T, b *geometry.Body, m core.Matrix) {
	t.Helper()
	if err := b.SetTransform(m); err != nil {
		t.Fatalf("SetTransform: %v", err)
	}
}

func comps(hit geometry.Intersection, ray core.Ray, xs ...geometry.Intersection) geometry.Computations {
	if len(xs) == 0 {
		xs = []geometry.Intersection{hit}
	}
	return geometry.PrepareComputations(hit, ray, geometry.NewIntersections(xs...))
}

func TestNewWhitted(t *testing.T) {
	if wt := NewWhitted(-3); wt.MaxDepth != 0 {
		t.Errorf("Negative depth should clamp to 0, got %d", wt.MaxDepth)
	}
	var _ Integrator = NewWhitted(scene.DefaultMaxDepth)
}

func TestShadeHit(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)

	t.Run("outside", func(t *testing.T) {
		w := scene.DefaultWorld()
		r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		c := wt.ShadeHit(w, comps(geometry.Intersection{T: 4, Body: w.Bodies[0]}, r), scene.DefaultMaxDepth)
		assertColor(t, c, core.NewColor(0.38066, 0.47583, 0.2855))
	})

	t.Run("inside", func(t *testing.T) {
		w := scene.DefaultWorld()
		w.Lights[0] = lights.NewPointLight(core.NewPoint(0, 0.25, 0), core.White)
		r := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))
		c := wt.ShadeHit(w, comps(geometry.Intersection{T: 0.5, Body: w.Bodies[1]}, r), scene.DefaultMaxDepth)
		assertColor(t, c, core.NewColor(0.90498, 0.90498, 0.90498))
	})
}

func shadowedWorld(t *testing.T) (*scene.World, *geometry.Body) {
	w := scene.NewWorld()
	w.AddLight(lights.NewPointLight(core.NewPoint(0, 0, -10), core.White))
	s1 := geometry.NewBody(geometry.NewSphere())
	s2 := geometry.NewBody(geometry.NewSphere())
	mustTransform(t, s2, core.Translation(0, 0, 10))
	w.AddBody(s1, s2)
	return w, s2
}

func TestShadeHitInShadow(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)
	w, s2 := shadowedWorld(t)
	r := core.NewRay(core.NewPoint(0, 0, 5), core.NewVector(0, 0, 1))

	c := wt.ShadeHit(w, comps(geometry.Intersection{T: 4, Body: s2}, r), scene.DefaultMaxDepth)
	assertColor(t, c, core.NewColor(0.1, 0.1, 0.1))
}

func TestShadeHitIgnoresShadowWhenNotReceiving(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)
	w, s2 := shadowedWorld(t)
	s2.Material.ReceivesShadow = false
	r := core.NewRay(core.NewPoint(0, 0, 5), core.NewVector(0, 0, 1))

	c := wt.ShadeHit(w, comps(geometry.Intersection{T: 4, Body: s2}, r), scene.DefaultMaxDepth)
	// ambient + full diffuse + full specular
	assertColor(t, c, core.NewColor(1.9, 1.9, 1.9))
}

func TestShadeHitIgnoresNonCastingOccluder(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)
	w, s2 := shadowedWorld(t)
	w.Bodies[0].Material.CastsShadow = false
	r := core.NewRay(core.NewPoint(0, 0, 5), core.NewVector(0, 0, 1))

	c := wt.ShadeHit(w, comps(geometry.Intersection{T: 4, Body: s2}, r), scene.DefaultMaxDepth)
	assertColor(t, c, core.NewColor(1.9, 1.9, 1.9))
}

func TestColorAt(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)

	t.Run("miss", func(t *testing.T) {
		w := scene.DefaultWorld()
		c := wt.ColorAt(w, core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 1, 0)), scene.DefaultMaxDepth)
		assertColor(t, c, core.Black)
	})

	t.Run("hit", func(t *testing.T) {
		w := scene.DefaultWorld()
		c := wt.ColorAt(w, core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1)), scene.DefaultMaxDepth)
		assertColor(t, c, core.NewColor(0.38066, 0.47583, 0.2855))
	})

	t.Run("intersection behind ray", func(t *testing.T) {
		w := scene.DefaultWorld()
		outer, inner := w.Bodies[0], w.Bodies[1]
		outer.Material.Ambient = 1
		inner.Material.Ambient = 1
		c := wt.ColorAt(w, core.NewRay(core.NewPoint(0, 0, 0.75), core.NewVector(0, 0, -1)), scene.DefaultMaxDepth)
		assertColor(t, c, inner.Material.Color)
	})

	t.Run("empty world", func(t *testing.T) {
		c := wt.RayColor(core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1)), scene.NewWorld())
		assertColor(t, c, core.Black)
	})
}

func reflectiveFloor(t *testing.T, w *scene.World, reflective float64) *geometry.Body {
	floor := geometry.NewBody(geometry.NewPlane())
	floor.Material.Reflective = reflective
	mustTransform(t, floor, core.Translation(0, -1, 0))
	w.AddBody(floor)
	return floor
}

func TestReflectedColor(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)
	diagonal := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -halfSqrt2, halfSqrt2))

	t.Run("nonreflective material", func(t *testing.T) {
		w := scene.DefaultWorld()
		inner := w.Bodies[1]
		inner.Material.Ambient = 1
		r := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))
		c := wt.ReflectedColor(w, comps(geometry.Intersection{T: 1, Body: inner}, r), scene.DefaultMaxDepth)
		assertColor(t, c, core.Black)
	})

	t.Run("reflective material", func(t *testing.T) {
		w := scene.DefaultWorld()
		floor := reflectiveFloor(t, w, 0.5)
		c := wt.ReflectedColor(w, comps(geometry.Intersection{T: math.Sqrt2, Body: floor}, diagonal), scene.DefaultMaxDepth)
		assertColor(t, c, core.NewColor(0.19032, 0.2379, 0.14274))
	})

	t.Run("shade hit with reflective material", func(t *testing.T) {
		w := scene.DefaultWorld()
		floor := reflectiveFloor(t, w, 0.5)
		c := wt.ShadeHit(w, comps(geometry.Intersection{T: math.Sqrt2, Body: floor}, diagonal), scene.DefaultMaxDepth)
		assertColor(t, c, core.NewColor(0.87677, 0.92436, 0.82918))
	})

	t.Run("no bounces left", func(t *testing.T) {
		w := scene.DefaultWorld()
		floor := reflectiveFloor(t, w, 0.5)
		c := wt.ReflectedColor(w, comps(geometry.Intersection{T: math.Sqrt2, Body: floor}, diagonal), 0)
		assertColor(t, c, core.Black)
	})
}

func TestMutuallyReflectiveSurfaces(t *testing.T) {
	w := scene.NewWorld()
	w.AddLight(lights.NewPointLight(core.NewPoint(0, 0, 0), core.White))

	lower := geometry.NewBody(geometry.NewPlane())
	lower.Material.Reflective = 1
	mustTransform(t, lower, core.Translation(0, -1, 0))
	upper := geometry.NewBody(geometry.NewPlane())
	upper.Material.Reflective = 1
	mustTransform(t, upper, core.Translation(0, 1, 0))
	w.AddBody(lower, upper)

	for _, depth := range []int{0, 1, 5, 20} {
		wt := NewWhitted(depth)
		c := wt.RayColor(core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0)), w)
		if !c.IsFinite() {
			t.Errorf("depth %d: expected a finite color, got %v", depth, c)
		}
	}
}

func TestRefractedColor(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)

	t.Run("opaque surface", func(t *testing.T) {
		w := scene.DefaultWorld()
		shape := w.Bodies[0]
		r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		xs := []geometry.Intersection{{T: 4, Body: shape}, {T: 6, Body: shape}}
		c := wt.RefractedColor(w, comps(xs[0], r, xs...), 5)
		assertColor(t, c, core.Black)
	})

	t.Run("no bounces left", func(t *testing.T) {
		w := scene.DefaultWorld()
		shape := w.Bodies[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		xs := []geometry.Intersection{{T: 4, Body: shape}, {T: 6, Body: shape}}
		c := wt.RefractedColor(w, comps(xs[0], r, xs...), 0)
		assertColor(t, c, core.Black)
	})

	t.Run("total internal reflection", func(t *testing.T) {
		w := scene.DefaultWorld()
		shape := w.Bodies[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		r := core.NewRay(core.NewPoint(0, 0, halfSqrt2), core.NewVector(0, 1, 0))
		xs := []geometry.Intersection{{T: -halfSqrt2, Body: shape}, {T: halfSqrt2, Body: shape}}
		c := wt.RefractedColor(w, comps(xs[1], r, xs...), 5)
		assertColor(t, c, core.Black)
	})

	t.Run("refracted ray", func(t *testing.T) {
		w := scene.DefaultWorld()
		a, b := w.Bodies[0], w.Bodies[1]
		a.Material.Ambient = 1
		a.Material.Pattern = pointPattern{}
		b.Material.Transparency = 1
		b.Material.RefractiveIndex = 1.5
		r := core.NewRay(core.NewPoint(0, 0, 0.1), core.NewVector(0, 1, 0))
		xs := []geometry.Intersection{
			{T: -0.9899, Body: a},
			{T: -0.4899, Body: b},
			{T: 0.4899, Body: b},
			{T: 0.9899, Body: a},
		}
		c := wt.RefractedColor(w, comps(xs[2], r, xs...), 5)
		assertColor(t, c, core.NewColor(0, 0.99888, 0.04725))
	})
}

func transparentFloorWorld(t *testing.T, reflective float64) (*scene.World, *geometry.Body) {
	w := scene.DefaultWorld()

	floor := geometry.NewBody(geometry.NewPlane())
	mustTransform(t, floor, core.Translation(0, -1, 0))
	floor.Material.Reflective = reflective
	floor.Material.Transparency = 0.5
	floor.Material.RefractiveIndex = 1.5

	ball := geometry.NewBody(geometry.NewSphere())
	ball.Material.Color = core.Red
	ball.Material.Ambient = 0.5
	mustTransform(t, ball, core.Translation(0, -3.5, -0.5))

	w.AddBody(floor, ball)
	return w, floor
}

func TestShadeHitTransparent(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)
	r := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -halfSqrt2, halfSqrt2))

	t.Run("transparent floor", func(t *testing.T) {
		w, floor := transparentFloorWorld(t, 0)
		c := wt.ShadeHit(w, comps(geometry.Intersection{T: math.Sqrt2, Body: floor}, r), 5)
		assertColor(t, c, core.NewColor(0.93642, 0.68642, 0.68642))
	})

	t.Run("reflective transparent floor uses schlick", func(t *testing.T) {
		w, floor := transparentFloorWorld(t, 0.5)
		c := wt.ShadeHit(w, comps(geometry.Intersection{T: math.Sqrt2, Body: floor}, r), 5)
		assertColor(t, c, core.NewColor(0.93391, 0.69643, 0.69243))
	})
}

func TestRayColorDeterministic(t *testing.T) {
	s := scene.NewReflectionsScene()
	wt := NewWhitted(s.MaxDepth)
	r := core.NewRay(core.NewPoint(0, 1.5, -5), core.NewVector(0, -0.1, 1).Normalize())

	first := wt.RayColor(r, s.World)
	for i := 0; i < 3; i++ {
		if got := wt.RayColor(r, s.World); got != first {
			t.Fatalf("RayColor is not deterministic: %v then %v", first, got)
		}
	}
	if !first.IsFinite() {
		t.Errorf("Expected finite color, got %v", first)
	}
}

func TestNegligibleCoefficientsSkipRecursion(t *testing.T) {
	wt := NewWhitted(scene.DefaultMaxDepth)

	t.Run("reflective", func(t *testing.T) {
		w := scene.DefaultWorld()
		floor := reflectiveFloor(t, w, 1e-12)
		diagonal := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -halfSqrt2, halfSqrt2))
		if c := wt.ReflectedColor(w, comps(geometry.Intersection{T: math.Sqrt2, Body: floor}, diagonal), scene.DefaultMaxDepth); c != core.Black {
			t.Errorf("ReflectedColor = %v, want exactly black", c)
		}
	})

	t.Run("transparent", func(t *testing.T) {
		w := scene.DefaultWorld()
		outer := w.Bodies[0]
		outer.Material.Transparency = 1e-12
		outer.Material.RefractiveIndex = 1.5
		r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		hit := geometry.Intersection{T: 4, Body: outer}
		c := wt.RefractedColor(w, comps(hit, r, hit, geometry.Intersection{T: 6, Body: outer}), scene.DefaultMaxDepth)
		if c != core.Black {
			t.Errorf("RefractedColor = %v, want exactly black", c)
		}
	})
}

func TestColorAtUnboundedCapStaysFinite(t *testing.T) {
	// the cone skips validation here, so its closed end has no bound
	w := scene.NewWorld()
	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White))
	w.AddBody(geometry.NewBody(&geometry.Cone{Minimum: math.Inf(-1), Maximum: math.Inf(1), ClosedMin: true}))

	wt := NewWhitted(scene.DefaultMaxDepth)
	r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0.3, -0.1, 0.2).Normalize())
	if c := wt.RayColor(r, w); !c.IsFinite() {
		t.Errorf("RayColor = %v, want a finite color", c)
	}
}
