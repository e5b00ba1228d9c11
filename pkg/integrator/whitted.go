package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Whitted is a recursive ray tracer: Phong shading with hard shadows from point
// lights plus mirror reflection and refraction, followed for at most MaxDepth bounces
type Whitted struct {
	MaxDepth int
}

// NewWhitted creates a Whitted integrator. A negative depth is treated as zero.
func NewWhitted(maxDepth int) *Whitted {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Whitted{MaxDepth: maxDepth}
}

// RayColor implements Integrator
func (wt *Whitted) RayColor(ray core.Ray, world *scene.World) core.Color {
	return wt.ColorAt(world, ray, wt.MaxDepth)
}

// ColorAt returns the color seen along ray with remaining bounces left
func (wt *Whitted) ColorAt(world *scene.World, ray core.Ray, remaining int) core.Color {
	xs := world.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black
	}
	return wt.ShadeHit(world, geometry.PrepareComputations(hit, ray, xs), remaining)
}

// ShadeHit sums direct lighting from every light, then adds reflection and
// refraction. A surface that both reflects and transmits weights the two with
// the Schlick reflectance.
func (wt *Whitted) ShadeHit(world *scene.World, comps geometry.Computations, remaining int) core.Color {
	m := &comps.Body.Material

	surface := core.Black
	for _, light := range world.Lights {
		inShadow := m.ReceivesShadow && world.IsShadowed(comps.OverPoint, light)
		surface = surface.Add(m.Lighting(comps.Body, light, comps.OverPoint, comps.EyeV, comps.NormalV, inShadow))
	}

	reflected := wt.ReflectedColor(world, comps, remaining)
	refracted := wt.RefractedColor(world, comps, remaining)

	if m.Reflective >= core.Epsilon && m.Transparency >= core.Epsilon {
		reflectance := geometry.Schlick(comps)
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor follows the mirror ray from a reflective surface. Coefficients
// below core.Epsilon count as zero.
func (wt *Whitted) ReflectedColor(world *scene.World, comps geometry.Computations, remaining int) core.Color {
	reflective := comps.Body.Material.Reflective
	if remaining <= 0 || reflective < core.Epsilon {
		return core.Black
	}
	r := core.NewRay(comps.OverPoint, comps.ReflectV)
	return wt.ColorAt(world, r, remaining-1).Multiply(reflective)
}

// RefractedColor follows the transmitted ray through a transparent surface.
// Total internal reflection contributes nothing here; ReflectedColor covers it.
func (wt *Whitted) RefractedColor(world *scene.World, comps geometry.Computations, remaining int) core.Color {
	transparency := comps.Body.Material.Transparency
	if remaining <= 0 || transparency < core.Epsilon {
		return core.Black
	}

	// Snell's law
	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).Subtract(comps.EyeV.Multiply(nRatio))
	r := core.NewRay(comps.UnderPoint, direction)
	return wt.ColorAt(world, r, remaining-1).Multiply(transparency)
}
