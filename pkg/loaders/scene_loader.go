package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrUnknownKind is returned for an unrecognised body, light, pattern or transform type
var ErrUnknownKind = errors.New("unknown type")

// Defaults for perturbed patterns that leave out the noise parameters
const (
	defaultPerturbScale       = 0.2
	defaultPerturbOctaves     = 3
	defaultPerturbPersistence = 0.8
)

// maxScenePathLength bounds the paths accepted by ValidateScenePath
const maxScenePathLength = 512

// LoadScene reads and builds a scene file. The scene is named after the file
// unless the document sets a name.
func LoadScene(filename string) (*scene.Scene, error) {
	if err := ValidateScenePath(filename); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	base := filepath.Base(filename)
	s, err := ParseScene(data, strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseScene builds a scene from a YAML or JSON document. Unknown keys are rejected.
func ParseScene(data []byte, name string) (*scene.Scene, error) {
	var file sceneFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if file.Name != "" {
		name = file.Name
	}
	s := scene.NewScene(name)
	if file.MaxDepth != nil {
		s.MaxDepth = *file.MaxDepth
	}

	for i, spec := range file.Lights {
		light, err := buildLight(spec)
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		s.World.AddLight(light)
	}

	for i, spec := range file.Bodies {
		body, err := buildBody(spec)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		s.World.AddBody(body)
	}

	if len(file.Cameras) > 0 {
		s.Cameras = s.Cameras[:0]
		for i, spec := range file.Cameras {
			camera, err := buildCamera(spec)
			if err != nil {
				return nil, fmt.Errorf("cameras[%d]: %w", i, err)
			}
			s.Cameras = append(s.Cameras, camera)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return s, nil
}

// ValidateScenePath rejects paths that are not plausible scene files
func ValidateScenePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}
	cleanPath := filepath.Clean(filename)
	if len(cleanPath) > maxScenePathLength {
		return fmt.Errorf("file path too long: maximum %d characters allowed", maxScenePathLength)
	}
	ext := strings.ToLower(filepath.Ext(cleanPath))
	for _, allowed := range scene.SceneFileExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid file type %q: expected one of %s", ext, strings.Join(scene.SceneFileExtensions, ", "))
}

func buildLight(spec lightSpec) (lights.PointLight, error) {
	if spec.Type != "point_light" {
		return lights.PointLight{}, fmt.Errorf("%w: light %q", ErrUnknownKind, spec.Type)
	}
	position, err := point(spec.Position, "position")
	if err != nil {
		return lights.PointLight{}, err
	}
	intensity, err := color(spec.Intensity, "intensity")
	if err != nil {
		return lights.PointLight{}, err
	}
	return lights.NewPointLight(position, intensity), nil
}

func buildBody(spec bodySpec) (*geometry.Body, error) {
	shape, err := buildShape(spec)
	if err != nil {
		return nil, err
	}
	body := geometry.NewBody(shape)
	if spec.Name != "" {
		body.Name = spec.Name
	}

	body.Material, err = buildMaterial(spec.Material)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}

	m, err := buildTransform(spec.Transforms)
	if err != nil {
		return nil, err
	}
	if err := body.SetTransform(m); err != nil {
		return nil, err
	}
	return body, nil
}

func buildShape(spec bodySpec) (geometry.Shape, error) {
	switch spec.Type {
	case "sphere":
		return geometry.NewSphere(), nil
	case "plane":
		return geometry.NewPlane(), nil
	case "cube":
		return geometry.NewCube(), nil
	case "cylinder":
		minimum, maximum := bounds(spec.MinimumY, spec.MaximumY)
		cylinder := geometry.NewTruncatedCylinder(minimum, maximum, spec.ClosedMin, spec.ClosedMax)
		if err := cylinder.Validate(); err != nil {
			return nil, fmt.Errorf("cylinder: %w", err)
		}
		return cylinder, nil
	case "cone":
		minimum, maximum := bounds(spec.MinimumY, spec.MaximumY)
		cone := geometry.NewTruncatedCone(minimum, maximum, spec.ClosedMin, spec.ClosedMax)
		if err := cone.Validate(); err != nil {
			return nil, fmt.Errorf("cone: %w", err)
		}
		return cone, nil
	case "":
		return nil, fmt.Errorf("body type is required")
	default:
		return nil, fmt.Errorf("%w: body %q", ErrUnknownKind, spec.Type)
	}
}

// bounds leaves an unset end of a cylinder or cone infinite
func bounds(minimum, maximum *float64) (float64, float64) {
	lo, hi := math.Inf(-1), math.Inf(1)
	if minimum != nil {
		lo = *minimum
	}
	if maximum != nil {
		hi = *maximum
	}
	return lo, hi
}

func buildMaterial(spec materialSpec) (material.Material, error) {
	m := material.DefaultMaterial()
	m.Ambient = spec.Ambient
	m.Diffuse = spec.Diffuse
	m.Specular = spec.Specular
	m.Shininess = spec.Shininess
	m.Reflective = spec.Reflective
	m.Transparency = spec.Transparency
	m.RefractiveIndex = spec.RefractiveIndex
	m.CastsShadow = spec.CastsShadow
	m.ReceivesShadow = spec.ReceivesShadow

	c, ok, err := colorOf(spec.Color, spec.Colori)
	if err != nil {
		return m, err
	}
	if ok {
		m.Color = c
	}

	if spec.Pattern != nil {
		if m.Pattern, err = buildPattern(spec.Pattern, 0); err != nil {
			return m, fmt.Errorf("pattern: %w", err)
		}
	}
	return m, nil
}

func buildPattern(spec *patternSpec, depth int) (material.Pattern, error) {
	if spec == nil {
		return nil, material.ErrNilPattern
	}
	if depth >= material.MaxPatternDepth {
		return nil, fmt.Errorf("%w: more than %d levels", material.ErrPatternTooDeep, material.MaxPatternDepth)
	}

	pair := func() (material.Pattern, material.Pattern, error) {
		if spec.A == nil || spec.B == nil {
			return nil, nil, fmt.Errorf("%s pattern needs both a and b", spec.Type)
		}
		a, err := buildPattern(spec.A, depth+1)
		if err != nil {
			return nil, nil, fmt.Errorf("a: %w", err)
		}
		b, err := buildPattern(spec.B, depth+1)
		if err != nil {
			return nil, nil, fmt.Errorf("b: %w", err)
		}
		return a, b, nil
	}

	var p interface {
		material.Pattern
		SetTransform(core.Matrix) error
	}
	switch spec.Type {
	case "color":
		c, ok, err := colorOf(spec.Color, spec.Colori)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("color pattern needs color or colori")
		}
		p = material.Solid(c)
	case "stripes", "gradient", "rings", "checkers":
		a, b, err := pair()
		if err != nil {
			return nil, err
		}
		switch spec.Type {
		case "stripes":
			p = material.NewStripePattern(a, b)
		case "gradient":
			p = material.NewGradientPattern(a, b)
		case "rings":
			p = material.NewRingPattern(a, b)
		default:
			p = material.NewCheckersPattern(a, b)
		}
	case "radial_gradient":
		a, b, err := pair()
		if err != nil {
			return nil, err
		}
		p = material.NewRadialGradientPattern(a, b, valueOr(spec.YFactor, 0))
	case "blend":
		a, b, err := pair()
		if err != nil {
			return nil, err
		}
		p = material.NewWeightedBlendPattern(a, b, valueOr(spec.Weight, 0.5))
	case "perturbed":
		if spec.Pattern == nil {
			return nil, fmt.Errorf("perturbed pattern needs a pattern")
		}
		inner, err := buildPattern(spec.Pattern, depth+1)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		octaves := defaultPerturbOctaves
		if spec.Octaves != nil {
			octaves = *spec.Octaves
		}
		p = material.NewPerturbedPattern(inner,
			valueOr(spec.Scale, defaultPerturbScale), octaves,
			valueOr(spec.Persistence, defaultPerturbPersistence))
	case "":
		return nil, fmt.Errorf("pattern type is required")
	default:
		return nil, fmt.Errorf("%w: pattern %q", ErrUnknownKind, spec.Type)
	}

	m, err := buildTransform(spec.Transforms)
	if err != nil {
		return nil, err
	}
	if err := p.SetTransform(m); err != nil {
		return nil, fmt.Errorf("%s pattern: %w", spec.Type, err)
	}
	return p, nil
}

// buildTransform composes transforms in list order: the first entry is applied first
func buildTransform(specs []transformSpec) (core.Matrix, error) {
	m := core.Identity()
	for i, spec := range specs {
		step, err := spec.matrix()
		if err != nil {
			return core.Matrix{}, fmt.Errorf("transforms[%d]: %w", i, err)
		}
		m = m.Then(step)
	}
	return m, nil
}

func (t transformSpec) matrix() (core.Matrix, error) {
	var steps []core.Matrix
	if t.RotateX != nil {
		steps = append(steps, core.RotationX(*t.RotateX))
	}
	if t.RotateY != nil {
		steps = append(steps, core.RotationY(*t.RotateY))
	}
	if t.RotateZ != nil {
		steps = append(steps, core.RotationZ(*t.RotateZ))
	}
	if t.Translate != nil {
		v, err := triple(t.Translate, "translate")
		if err != nil {
			return core.Matrix{}, err
		}
		steps = append(steps, core.Translation(v[0], v[1], v[2]))
	}
	if t.TranslateX != nil {
		steps = append(steps, core.Translation(*t.TranslateX, 0, 0))
	}
	if t.TranslateY != nil {
		steps = append(steps, core.Translation(0, *t.TranslateY, 0))
	}
	if t.TranslateZ != nil {
		steps = append(steps, core.Translation(0, 0, *t.TranslateZ))
	}
	if t.Scale != nil {
		steps = append(steps, core.Scaling(t.Scale[0], t.Scale[1], t.Scale[2]))
	}
	if t.Shear != nil {
		if len(t.Shear) != 6 {
			return core.Matrix{}, fmt.Errorf("shear needs 6 values, got %d", len(t.Shear))
		}
		s := t.Shear
		steps = append(steps, core.Shearing(s[0], s[1], s[2], s[3], s[4], s[5]))
	}

	switch len(steps) {
	case 0:
		return core.Matrix{}, fmt.Errorf("%w: empty transform", ErrUnknownKind)
	case 1:
		return steps[0], nil
	default:
		return core.Matrix{}, fmt.Errorf("each transform entry must have exactly one key, got %d", len(steps))
	}
}

func buildCamera(spec cameraSpec) (geometry.CameraConfig, error) {
	config := geometry.DefaultCameraConfig()
	config.Name = spec.Name
	config.Resolution = geometry.Resolution(spec.Resolution)
	config.FieldOfView = spec.FieldOfView

	var err error
	if config.From, err = point(spec.From, "from"); err != nil {
		return config, err
	}
	if config.To, err = point(spec.To, "to"); err != nil {
		return config, err
	}
	up, err := triple(spec.Up, "up")
	if err != nil {
		return config, err
	}
	config.Up = core.NewVector(up[0], up[1], up[2])

	if config.Transform, err = buildTransform(spec.Transforms); err != nil {
		return config, err
	}
	return config, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func triple(values []float64, field string) ([3]float64, error) {
	var out [3]float64
	if len(values) != 3 {
		return out, fmt.Errorf("%s needs 3 values, got %d", field, len(values))
	}
	copy(out[:], values)
	return out, nil
}

func point(values []float64, field string) (core.Tuple, error) {
	v, err := triple(values, field)
	if err != nil {
		return core.Tuple{}, err
	}
	return core.NewPoint(v[0], v[1], v[2]), nil
}

func color(values []float64, field string) (core.Color, error) {
	v, err := triple(values, field)
	if err != nil {
		return core.Color{}, err
	}
	return core.NewColor(v[0], v[1], v[2]), nil
}

// colorOf reads either a float color or a 0-255 integer color. ok is false when neither is set.
func colorOf(rgb []float64, rgbi []int) (c core.Color, ok bool, err error) {
	switch {
	case rgb != nil && rgbi != nil:
		return c, false, fmt.Errorf("only one of color and colori may be set")
	case rgb != nil:
		c, err = color(rgb, "color")
		return c, err == nil, err
	case rgbi != nil:
		if len(rgbi) != 3 {
			return c, false, fmt.Errorf("colori needs 3 values, got %d", len(rgbi))
		}
		for _, v := range rgbi {
			if v < 0 || v > 255 {
				return c, false, fmt.Errorf("colori values must be in [0, 255], got %v", rgbi)
			}
		}
		return core.ColorFromBytes(uint8(rgbi[0]), uint8(rgbi[1]), uint8(rgbi[2])), true, nil
	}
	return c, false, nil
}
