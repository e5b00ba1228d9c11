package loaders

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// sceneFile is the document layout of a YAML (or JSON) scene:
//
//	lights:  [{type: point_light, position: [x, y, z], intensity: [r, g, b]}]
//	bodies:  [{type: sphere, material: {...}, transforms: [{scale: 2}, {translate: [0, 1, 0]}]}]
//	cameras: [{name: main, resolution: vga, from: [...], to: [...], up: [...]}]
type sceneFile struct {
	Name     string       `yaml:"name"`
	MaxDepth *int         `yaml:"max_depth"`
	Lights   []lightSpec  `yaml:"lights"`
	Bodies   []bodySpec   `yaml:"bodies"`
	Cameras  []cameraSpec `yaml:"cameras"`
}

type lightSpec struct {
	Type      string    `yaml:"type"`
	Position  []float64 `yaml:"position"`
	Intensity []float64 `yaml:"intensity"`
}

func (l *lightSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*l = lightSpec{Type: "point_light", Intensity: []float64{1, 1, 1}}
	type plain lightSpec
	return unmarshal((*plain)(l))
}

type bodySpec struct {
	Type       string          `yaml:"type"`
	Name       string          `yaml:"name"`
	Material   materialSpec    `yaml:"material"`
	Transforms []transformSpec `yaml:"transforms"`

	// cylinder and cone only
	MinimumY  *float64 `yaml:"minimum_y"`
	MaximumY  *float64 `yaml:"maximum_y"`
	ClosedMin bool     `yaml:"closed_min"`
	ClosedMax bool     `yaml:"closed_max"`
}

func (b *bodySpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*b = bodySpec{Material: defaultMaterialSpec()}
	type plain bodySpec
	return unmarshal((*plain)(b))
}

type materialSpec struct {
	Color           []float64    `yaml:"color"`
	Colori          []int        `yaml:"colori"`
	Pattern         *patternSpec `yaml:"pattern"`
	Ambient         float64      `yaml:"ambient"`
	Diffuse         float64      `yaml:"diffuse"`
	Specular        float64      `yaml:"specular"`
	Shininess       float64      `yaml:"shininess"`
	Reflective      float64      `yaml:"reflective"`
	Transparency    float64      `yaml:"transparency"`
	RefractiveIndex float64      `yaml:"refractive_index"`
	CastsShadow     bool         `yaml:"casts_shadow"`
	ReceivesShadow  bool         `yaml:"receives_shadow"`
}

func defaultMaterialSpec() materialSpec {
	m := material.DefaultMaterial()
	return materialSpec{
		Ambient:         m.Ambient,
		Diffuse:         m.Diffuse,
		Specular:        m.Specular,
		Shininess:       m.Shininess,
		Reflective:      m.Reflective,
		Transparency:    m.Transparency,
		RefractiveIndex: m.RefractiveIndex,
		CastsShadow:     m.CastsShadow,
		ReceivesShadow:  m.ReceivesShadow,
	}
}

func (m *materialSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*m = defaultMaterialSpec()
	type plain materialSpec
	return unmarshal((*plain)(m))
}

// patternSpec is one node of a pattern tree. A bare [r, g, b] list is
// shorthand for a solid color.
type patternSpec struct {
	Type       string          `yaml:"type"`
	Color      []float64       `yaml:"color"`
	Colori     []int           `yaml:"colori"`
	A          *patternSpec    `yaml:"a"`
	B          *patternSpec    `yaml:"b"`
	Pattern    *patternSpec    `yaml:"pattern"` // perturbed
	Transforms []transformSpec `yaml:"transforms"`

	YFactor     *float64 `yaml:"y_factor"`    // radial_gradient
	Weight      *float64 `yaml:"weight"`      // blend
	Scale       *float64 `yaml:"scale"`       // perturbed
	Octaves     *int     `yaml:"octaves"`     // perturbed
	Persistence *float64 `yaml:"persistence"` // perturbed
}

func (p *patternSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var rgb []float64
	if err := unmarshal(&rgb); err == nil {
		*p = patternSpec{Type: "color", Color: rgb}
		return nil
	}
	type plain patternSpec
	if err := unmarshal((*plain)(p)); err != nil {
		return err
	}
	if p.Type == "" && (p.Color != nil || p.Colori != nil) {
		p.Type = "color"
	}
	return nil
}

// transformSpec is a single-key map such as {rotate_y: 0.5} or {scale: [1, 2, 1]}
type transformSpec struct {
	RotateX    *float64    `yaml:"rotate_x"`
	RotateY    *float64    `yaml:"rotate_y"`
	RotateZ    *float64    `yaml:"rotate_z"`
	Translate  []float64   `yaml:"translate"`
	TranslateX *float64    `yaml:"translate_x"`
	TranslateY *float64    `yaml:"translate_y"`
	TranslateZ *float64    `yaml:"translate_z"`
	Scale      *scaleValue `yaml:"scale"`
	Shear      []float64   `yaml:"shear"` // xy, xz, yx, yz, zx, zy
}

// scaleValue accepts either a uniform factor or an [x, y, z] list
type scaleValue [3]float64

func (s *scaleValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var uniform float64
	if err := unmarshal(&uniform); err == nil {
		*s = scaleValue{uniform, uniform, uniform}
		return nil
	}
	var xyz []float64
	if err := unmarshal(&xyz); err != nil {
		return fmt.Errorf("scale must be a number or [x, y, z]: %w", err)
	}
	if len(xyz) != 3 {
		return fmt.Errorf("scale needs 3 values, got %d", len(xyz))
	}
	copy(s[:], xyz)
	return nil
}

type cameraSpec struct {
	Name        string          `yaml:"name"`
	Resolution  resolutionValue `yaml:"resolution"`
	FieldOfView float64         `yaml:"field_of_view"`
	From        []float64       `yaml:"from"`
	To          []float64       `yaml:"to"`
	Up          []float64       `yaml:"up"`
	Transforms  []transformSpec `yaml:"transforms"`
}

func (c *cameraSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	d := geometry.DefaultCameraConfig()
	*c = cameraSpec{
		Name:        d.Name,
		Resolution:  resolutionValue(d.Resolution),
		FieldOfView: d.FieldOfView,
		From:        []float64{d.From.X, d.From.Y, d.From.Z},
		To:          []float64{d.To.X, d.To.Y, d.To.Z},
		Up:          []float64{d.Up.X, d.Up.Y, d.Up.Z},
	}
	type plain cameraSpec
	return unmarshal((*plain)(c))
}

// resolutionValue accepts a preset name (vga, fhd, ...) or {width, height}
type resolutionValue geometry.Resolution

func (r *resolutionValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		res, err := geometry.ParseResolution(name)
		if err != nil {
			return err
		}
		*r = resolutionValue(res)
		return nil
	}
	var res geometry.Resolution
	if err := unmarshal(&res); err != nil {
		return fmt.Errorf("resolution must be a name or {width, height}: %w", err)
	}
	*r = resolutionValue(res)
	return nil
}
