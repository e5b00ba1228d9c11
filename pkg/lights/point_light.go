package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

type LightType string

const (
	LightTypePoint LightType = "point"
)

// PointLight is an infinitely small light source with no size and no falloff
type PointLight struct {
	Position  core.Tuple
	Intensity core.Color
}

// NewPointLight creates a point light
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Type returns the light type
func (l PointLight) Type() LightType {
	return LightTypePoint
}

// Validate rejects lights that cannot be rendered
func (l PointLight) Validate() error {
	if !l.Position.IsPoint() {
		return fmt.Errorf("light position %v is not a point", l.Position)
	}
	if !l.Intensity.IsFinite() {
		return fmt.Errorf("light intensity %v is not finite", l.Intensity)
	}
	if l.Intensity.R < 0 || l.Intensity.G < 0 || l.Intensity.B < 0 {
		return fmt.Errorf("light intensity %v is negative", l.Intensity)
	}
	return nil
}
