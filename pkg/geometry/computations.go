package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Computations holds everything shading needs to know about a hit
type Computations struct {
	T          float64
	Body       *Body
	Point      core.Tuple
	OverPoint  core.Tuple // Point nudged out along the normal, for shadow and reflection rays
	UnderPoint core.Tuple // Point nudged in, where refraction rays start
	EyeV       core.Tuple
	NormalV    core.Tuple
	ReflectV   core.Tuple
	Inside     bool
	N1         float64 // refractive index being exited
	N2         float64 // refractive index being entered
}

// PrepareComputations resolves a hit. xs must be the sorted intersection list the
// hit came from; it determines which bodies contain the hit and so n1 and n2.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	point := ray.Position(hit.T)
	eyev := ray.Direction.Negate().Normalize()
	normalv := hit.Body.NormalAt(point)

	inside := false
	if normalv.Dot(eyev) < 0 {
		inside = true
		normalv = normalv.Negate()
	}

	offset := normalv.Multiply(core.Epsilon)
	n1, n2 := refractiveIndices(hit, xs)

	return Computations{
		T:          hit.T,
		Body:       hit.Body,
		Point:      point,
		OverPoint:  point.Add(offset),
		UnderPoint: point.Subtract(offset),
		EyeV:       eyev,
		NormalV:    normalv,
		ReflectV:   ray.Direction.Reflect(normalv),
		Inside:     inside,
		N1:         n1,
		N2:         n2,
	}
}

// refractiveIndices walks the intersections up to the hit, tracking which
// bodies the ray is currently inside
func refractiveIndices(hit Intersection, xs Intersections) (float64, float64) {
	n1, n2 := material.Vacuum, material.Vacuum
	var containers []*Body

	last := func() float64 {
		if len(containers) == 0 {
			return material.Vacuum
		}
		return containers[len(containers)-1].Material.RefractiveIndex
	}

	for _, x := range xs {
		isHit := x == hit
		if isHit {
			n1 = last()
		}

		if i := indexOf(containers, x.Body); i >= 0 {
			containers = append(containers[:i], containers[i+1:]...)
		} else {
			containers = append(containers, x.Body)
		}

		if isHit {
			n2 = last()
			break
		}
	}
	return n1, n2
}

func indexOf(bodies []*Body, b *Body) int {
	for i, candidate := range bodies {
		if candidate == b {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit
func Schlick(comps Computations) float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			// total internal reflection
			return 1
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
