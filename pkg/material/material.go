package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Refractive indices of common media
const (
	Vacuum  = 1.0
	Air     = 1.000029
	Water   = 1.333
	Glass   = 1.52
	Diamond = 2.417
)

// Material describes how a surface reflects, transmits and is lit.
// When Pattern is set it supplies the surface color instead of Color.
type Material struct {
	Color           core.Color
	Pattern         Pattern
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
	CastsShadow     bool
	ReceivesShadow  bool
}

// DefaultMaterial returns a white, opaque, non-reflective Phong material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: Air,
		CastsShadow:     true,
		ReceivesShadow:  true,
	}
}

// GlassMaterial returns the default material made fully transparent glass
func GlassMaterial() Material {
	m := DefaultMaterial()
	m.Transparency = 1
	m.RefractiveIndex = Glass
	return m
}

// Validate rejects coefficients that would make shading meaningless
func (m *Material) Validate() error {
	if !m.Color.IsFinite() {
		return fmt.Errorf("material color %v is not finite", m.Color)
	}
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
	}
	for _, c := range coefficients {
		if c.value < 0 || math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("material %s must be a non-negative number, got %v", c.name, c.value)
		}
	}
	if m.Reflective < 0 || m.Reflective > 1 || math.IsNaN(m.Reflective) {
		return fmt.Errorf("material reflective must be in [0, 1], got %v", m.Reflective)
	}
	if m.Transparency < 0 || m.Transparency > 1 || math.IsNaN(m.Transparency) {
		return fmt.Errorf("material transparency must be in [0, 1], got %v", m.Transparency)
	}
	if !(m.RefractiveIndex > 0) || math.IsInf(m.RefractiveIndex, 0) {
		return fmt.Errorf("material refractive index must be positive, got %v", m.RefractiveIndex)
	}
	if m.Pattern != nil {
		if err := ValidatePattern(m.Pattern); err != nil {
			return fmt.Errorf("material pattern: %w", err)
		}
	}
	return nil
}

// ColorAt returns the surface color at a world point on object
func (m *Material) ColorAt(object ObjectSpace, worldPoint core.Tuple) core.Color {
	if m.Pattern == nil {
		return m.Color
	}
	return ColorAtObject(m.Pattern, object, worldPoint)
}

// Lighting evaluates the Phong model for one light. Only the ambient term
// survives when the point is in shadow.
func (m *Material) Lighting(object ObjectSpace, light lights.PointLight, point, eyev, normalv core.Tuple, inShadow bool) core.Color {
	effective := m.ColorAt(object, point).MultiplyColor(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightv := light.Position.Subtract(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)
	if lightDotNormal < 0 {
		// light is on the other side of the surface
		return ambient
	}
	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectDotEye := lightv.Negate().Reflect(normalv).Dot(eyev)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
