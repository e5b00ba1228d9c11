package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnknownScene is returned when a built-in scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

const quarterPi = math.Pi / 4

type builtin struct {
	info  SceneInfo
	build func() *Scene
}

// builtins are listed in the order they are presented to users
var builtins = []builtin{
	{SceneInfo{ID: "reflections", Name: "Reflections", Description: "Six mirrored spheres on a reflective striped floor"}, NewReflectionsScene},
	{SceneInfo{ID: "default", Name: "Default World", Description: "Two concentric spheres lit from the upper left"}, NewDefaultScene},
	{SceneInfo{ID: "refraction", Name: "Refraction", Description: "Glass spheres with an air bubble"}, NewRefractionScene},
	{SceneInfo{ID: "patterns", Name: "Patterns", Description: "Stripes, gradients, rings, radial gradients and checkers"}, NewPatternsScene},
	{SceneInfo{ID: "perturbed", Name: "Perturbed Patterns", Description: "Patterns jittered with Perlin noise"}, NewPerturbedScene},
	{SceneInfo{ID: "cubes", Name: "Cubes", Description: "A table of cubes inside a cube room"}, NewCubesScene},
	{SceneInfo{ID: "cylinders", Name: "Cylinders", Description: "Open, closed and half-open cylinders"}, NewCylindersScene},
	{SceneInfo{ID: "cones", Name: "Cones", Description: "Truncated and double-napped cones"}, NewConesScene},
	{SceneInfo{ID: "shadows", Name: "Shadow Flags", Description: "Bodies that opt out of casting or receiving shadows"}, NewShadowsScene},
}

// Builtin builds the named built-in scene
func Builtin(name string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// BuiltinNames lists the built-in scene names
func BuiltinNames() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// BuiltinScenes describes the built-in scenes for listings
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Group = BuiltinGroup
		info.Type = TypeBuiltin
		infos[i] = info
	}
	return infos
}

// NewDefaultScene views DefaultWorld from straight ahead
func NewDefaultScene() *Scene {
	s := NewScene("default")
	s.World = DefaultWorld()
	camera := lookFrom(core.NewPoint(0, 0, -5), core.NewPoint(0, 0, 0))
	camera.FieldOfView = math.Pi / 2
	s.Cameras = []geometry.CameraConfig{camera}
	return s
}

// NewReflectionsScene creates the seven-body scene: a reflective floor and six
// spheres, one of them behind the camera and only visible in reflections
func NewReflectionsScene() *Scene {
	s := NewScene("reflections")
	w := s.World

	floor := stripedFloor(core.Grey25, core.Grey75, 0.4, -math.Pi/16)
	floor.Material.Reflective = 0.2
	w.AddBody(floor)

	spheres := []struct {
		name       string
		scale      float64
		x, y, z    float64
		color      core.Color
		specular   float64
		shininess  float64
		reflective float64
	}{
		{"grey", 1.5, 0, 0.5, 0, core.Grey25, 1, 1000, 0.9},
		{"red", 0.4, -2, 1.7, -1, core.Red, 0.7, 100, 0.4},
		{"green", 0.5, 1.8, 1.8, -1, core.Green, 0.7, 100, 0.4},
		{"purple", 0.2, 1.5, 0.2, -1.8, core.NewColor(0.8, 0, 0.8), 0.5, 10, 0},
		{"blue", 0.5, -1, 0.5, -3.5, core.NewColor(0.1, 0, 1), 1, 1000, 0.8},
		{"yellow", 2, 4, 2, -5, core.NewColor(0.9, 0.7, 0), 0.2, 10, 0.8},
	}
	for _, sp := range spheres {
		b := geometry.NewBody(geometry.NewSphere())
		b.Name = sp.name
		mustTransform(b, core.UniformScaling(sp.scale).Then(core.Translation(sp.x, sp.y, sp.z)))
		b.Material.Color = sp.color
		b.Material.Specular = sp.specular
		b.Material.Shininess = sp.shininess
		b.Material.Reflective = sp.reflective
		w.AddBody(b)
	}

	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -5), core.White))
	s.Cameras = []geometry.CameraConfig{lookFrom(core.NewPoint(0, 1.5, -5), core.NewPoint(0, 1, 0))}
	return s
}

// NewRefractionScene creates glass spheres over the striped floor
func NewRefractionScene() *Scene {
	s := NewScene("refraction")
	w := s.World

	floor := stripedFloor(core.Grey25, core.Grey75, 0.4, -math.Pi/16)
	floor.Material.Reflective = 0.2
	w.AddBody(floor)

	const radius = 1.5
	glass := geometry.NewBody(geometry.NewSphere())
	glass.Name = "glass"
	mustTransform(glass, core.UniformScaling(radius).Then(core.Translation(1.1, radius, 0)))
	glass.Material.Color = core.White
	glass.Material.Diffuse = 0.1
	glass.Material.Specular = 1
	glass.Material.Shininess = 300
	glass.Material.Reflective = 0.9
	glass.Material.Transparency = 0.9
	glass.Material.RefractiveIndex = material.Glass
	w.AddBody(glass)

	bubble := geometry.NewBody(geometry.NewSphere())
	bubble.Name = "bubble"
	mustTransform(bubble, core.UniformScaling(radius*0.8).Then(core.Translation(1.1, radius, 0)))
	bubble.Material.Color = core.White
	bubble.Material.Ambient = 0
	bubble.Material.Diffuse = 0
	bubble.Material.Specular = 0.9
	bubble.Material.Shininess = 300
	bubble.Material.Reflective = 0.9
	bubble.Material.Transparency = 0.9
	bubble.Material.RefractiveIndex = material.Air
	w.AddBody(bubble)

	red := geometry.NewBody(geometry.NewSphere())
	red.Name = "red"
	mustTransform(red, core.UniformScaling(0.4).Then(core.Translation(-2.3, 0.4, -1.2)))
	red.Material.Color = core.Red
	red.Material.Ambient = 0.15
	red.Material.Diffuse = 0.1
	red.Material.Specular = 0.7
	red.Material.Shininess = 100
	red.Material.Reflective = 1
	red.Material.Transparency = 1
	red.Material.RefractiveIndex = material.Glass
	w.AddBody(red)

	green := geometry.NewBody(geometry.NewSphere())
	green.Name = "green"
	mustTransform(green, core.UniformScaling(0.5).Then(core.Translation(2.7, 0.5, -0.8)))
	green.Material.Color = core.Green
	green.Material.Diffuse = 0.15
	green.Material.Specular = 0.7
	green.Material.Shininess = 100
	green.Material.Reflective = 1
	green.Material.Transparency = 1
	green.Material.RefractiveIndex = material.Water
	w.AddBody(green)

	blue := geometry.NewBody(geometry.NewSphere())
	blue.Name = "blue"
	mustTransform(blue, core.UniformScaling(0.6).Then(core.Translation(-1, 0.6, -0.8)))
	blue.Material.Color = core.NewColor(0.1, 0, 1)
	blue.Material.Specular = 1
	blue.Material.Shininess = 1000
	blue.Material.Reflective = 0.8
	w.AddBody(blue)

	yellow := geometry.NewBody(geometry.NewSphere())
	yellow.Name = "yellow"
	mustTransform(yellow, core.UniformScaling(2).Then(core.Translation(-2, 2, 2.2)))
	yellow.Material.Color = core.NewColor(0.9, 0.7, 0)
	yellow.Material.Specular = 0.9
	yellow.Material.Shininess = 500
	yellow.Material.Reflective = 0.3
	w.AddBody(yellow)

	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -5), core.White))
	s.Cameras = []geometry.CameraConfig{lookFrom(core.NewPoint(0, 1.5, -5), core.NewPoint(0, 1, 0))}
	return s
}

// NewPatternsScene shows each two-color pattern on its own sphere
func NewPatternsScene() *Scene {
	s := NewScene("patterns")
	w := s.World

	floor := geometry.NewBody(geometry.NewPlane())
	floor.Name = "floor"
	floor.Material.Specular = 0
	floor.Material.Pattern = material.NewCheckersPattern(material.Solid(core.Grey25), material.Solid(core.Grey75))
	w.AddBody(floor)

	white := material.Solid(core.White)
	patterns := []struct {
		name    string
		x       float64
		pattern material.Pattern
		m       core.Matrix
	}{
		{"stripes", -3, material.NewStripePattern(white, material.Solid(core.Red)), core.UniformScaling(0.25).Then(core.RotationZ(quarterPi))},
		{"gradient", -1, material.NewGradientPattern(material.Solid(core.Blue), material.Solid(core.Green)), core.Translation(-1, 0, 0).Then(core.UniformScaling(2))},
		{"rings", 1, material.NewRingPattern(white, material.Solid(core.NewColor(0.8, 0.4, 0))), core.UniformScaling(0.15).Then(core.RotationX(math.Pi / 2))},
		{"radial", 3, material.NewRadialGradientPattern(material.Solid(core.NewColor(1, 0.8, 0.1)), material.Solid(core.NewColor(0.6, 0, 0.6)), 1), core.UniformScaling(0.5)},
	}
	for _, p := range patterns {
		b := geometry.NewBody(geometry.NewSphere())
		b.Name = p.name
		mustTransform(b, core.UniformScaling(0.9).Then(core.Translation(p.x, 0.9, 0)))
		if t, ok := p.pattern.(transformable); ok {
			mustPatternTransform(t, p.m)
		}
		b.Material.Pattern = p.pattern
		b.Material.Specular = 0.4
		w.AddBody(b)
	}

	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White))
	s.Cameras = []geometry.CameraConfig{lookFrom(core.NewPoint(0, 3, -8), core.NewPoint(0, 0.8, 0))}
	return s
}

// NewPerturbedScene jitters stripes, gradients and rings with octave noise
func NewPerturbedScene() *Scene {
	s := NewScene("perturbed")
	w := s.World

	floor := geometry.NewBody(geometry.NewPlane())
	floor.Name = "floor"
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Ambient = 0.2
	floor.Material.Specular = 0
	left := material.NewPerturbedPattern(material.NewStripePattern(material.Solid(core.Red), material.Solid(core.White)), 2, 4, 0.9)
	right := material.NewPerturbedPattern(material.NewStripePattern(material.Solid(core.Red), material.Solid(core.White)), 2, 4, 0.9)
	mustPatternTransform(left, core.UniformScaling(0.4).Then(core.RotationY(quarterPi)))
	mustPatternTransform(right, core.UniformScaling(0.4).Then(core.RotationY(-quarterPi)))
	blend := material.NewBlendPattern(left, right)
	mustPatternTransform(blend, core.RotationY(-math.Pi/8))
	floor.Material.Pattern = blend
	w.AddBody(floor)

	middle := geometry.NewBody(geometry.NewSphere())
	middle.Name = "middle"
	mustTransform(middle, core.Translation(-0.5, 1, 0.5))
	middle.Material.Diffuse = 0.9
	middle.Material.Specular = 0.7
	middlePattern := material.NewPerturbedPattern(material.NewStripePattern(
		material.Solid(core.ColorFromBytes(13, 104, 53)), material.Solid(core.ColorFromBytes(15, 158, 79))), 2, 3, 0.8)
	mustPatternTransform(middlePattern, core.UniformScaling(0.25).Then(core.RotationZ(-quarterPi)).Then(core.RotationY(-quarterPi)))
	middle.Material.Pattern = middlePattern
	w.AddBody(middle)

	right2 := geometry.NewBody(geometry.NewSphere())
	right2.Name = "right"
	mustTransform(right2, core.UniformScaling(0.5).Then(core.Translation(1.5, 0.5, -0.5)))
	right2.Material.Diffuse = 0.9
	right2.Material.Specular = 0.3
	rightPattern := material.NewPerturbedPattern(material.NewGradientPattern(
		material.Solid(core.ColorFromBytes(200, 40, 0)), material.Solid(core.ColorFromBytes(200, 180, 0))), 0.8, 4, 0.9)
	mustPatternTransform(rightPattern, core.UniformScaling(2.2).Then(core.RotationZ(math.Pi/6)).Then(core.Translation(2, 0, 0)))
	right2.Material.Pattern = rightPattern
	w.AddBody(right2)

	small := geometry.NewBody(geometry.NewSphere())
	small.Name = "left"
	mustTransform(small, core.UniformScaling(0.33).Then(core.Translation(-1.5, 0.33, -0.75)))
	small.Material.Diffuse = 0.9
	small.Material.Specular = 0.3
	smallPattern := material.NewPerturbedPattern(material.NewRingPattern(
		material.Solid(core.ColorFromBytes(199, 240, 194)), material.Solid(core.ColorFromBytes(95, 191, 95))), 1.5, 4, 0.9)
	mustPatternTransform(smallPattern, core.UniformScaling(0.3).Then(core.RotationX(-math.Pi/3)).Then(core.RotationY(-0.2)))
	small.Material.Pattern = smallPattern
	w.AddBody(small)

	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White))
	s.Cameras = []geometry.CameraConfig{lookFrom(core.NewPoint(0, 1.5, -5), core.NewPoint(0, 1, 0))}
	return s
}

// NewCubesScene puts a table with a few cubes inside a large cube room
func NewCubesScene() *Scene {
	s := NewScene("cubes")
	w := s.World

	room := geometry.NewBody(geometry.NewCube())
	room.Name = "room"
	mustTransform(room, core.Scaling(10, 5, 10).Then(core.Translation(0, 5, 0)))
	room.Material.Color = core.NewColor(0.8, 0.8, 1)
	room.Material.Ambient = 0.2
	room.Material.Diffuse = 0.3
	room.Material.Specular = 0
	room.Material.Shininess = 1
	room.Material.CastsShadow = false
	room.Material.ReceivesShadow = false
	w.AddBody(room)

	top := geometry.NewBody(geometry.NewCube())
	top.Name = "table"
	mustTransform(top, core.Scaling(2, 0.1, 1.2).Then(core.Translation(0, 1.5, 0)))
	top.Material.Pattern = material.NewStripePattern(material.Solid(core.ColorFromBytes(139, 90, 43)), material.Solid(core.ColorFromBytes(160, 110, 60)))
	mustPatternTransform(top.Material.Pattern.(transformable), core.Scaling(0.05, 1, 1))
	top.Material.Reflective = 0.2
	w.AddBody(top)

	for i, leg := range [][2]float64{{-1.8, -1}, {1.8, -1}, {-1.8, 1}, {1.8, 1}} {
		b := geometry.NewBody(geometry.NewCube())
		b.Name = fmt.Sprintf("leg%d", i+1)
		mustTransform(b, core.Scaling(0.1, 0.7, 0.1).Then(core.Translation(leg[0], 0.7, leg[1])))
		b.Material.Color = core.ColorFromBytes(90, 60, 30)
		w.AddBody(b)
	}

	green := geometry.NewBody(geometry.NewCube())
	green.Name = "green"
	mustTransform(green, core.UniformScaling(0.3).Then(core.RotationY(math.Pi/6)).Then(core.Translation(-0.8, 1.9, 0)))
	green.Material.Color = core.NewColor(0, 0.8, 0.1)
	green.Material.Specular = 0.4
	green.Material.Reflective = 0.7
	w.AddBody(green)

	glass := geometry.NewBody(geometry.NewCube())
	glass.Name = "glass"
	mustTransform(glass, core.UniformScaling(0.25).Then(core.RotationY(-math.Pi/5)).Then(core.Translation(0.6, 1.85, -0.2)))
	glass.Material.Color = core.NewColor(0.1, 0.1, 0.1)
	glass.Material.Diffuse = 0.1
	glass.Material.Specular = 1
	glass.Material.Shininess = 300
	glass.Material.Reflective = 0.9
	glass.Material.Transparency = 0.9
	glass.Material.RefractiveIndex = material.Glass
	glass.Material.CastsShadow = false
	w.AddBody(glass)

	w.AddLight(lights.NewPointLight(core.NewPoint(-4, 9, -6), core.White))
	s.Cameras = []geometry.CameraConfig{
		lookFrom(core.NewPoint(0, 3.5, -6), core.NewPoint(0, 1.5, 0)),
		lookFrom(core.NewPoint(6, 6, 0), core.NewPoint(0, 1.5, 0)),
	}
	s.Cameras[1].Name = "side"
	return s
}

// NewCylindersScene compares capped, open and infinite cylinders
func NewCylindersScene() *Scene {
	s := NewScene("cylinders")
	w := s.World

	floor := geometry.NewBody(geometry.NewPlane())
	floor.Name = "floor"
	floor.Material.Pattern = material.NewCheckersPattern(material.Solid(core.Grey25), material.Solid(core.Grey75))
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.1
	w.AddBody(floor)

	cylinders := []struct {
		name     string
		shape    *geometry.Cylinder
		m        core.Matrix
		color    core.Color
		reflects float64
	}{
		{"closed", geometry.NewTruncatedCylinder(0, 1, true, true), core.Scaling(0.6, 1.2, 0.6).Then(core.Translation(-2.5, 0, 0)), core.NewColor(0.8, 0.2, 0.2), 0.1},
		{"open", geometry.NewTruncatedCylinder(0, 1, false, false), core.Scaling(0.6, 1.5, 0.6).Then(core.RotationX(-math.Pi / 6)).Then(core.Translation(0, 0.6, 0)), core.NewColor(0.8, 0.6, 0.2), 0.6},
		{"half-open", geometry.NewTruncatedCylinder(0, 1, true, false), core.Scaling(0.6, 1.4, 0.6).Then(core.Translation(2.5, 0, 0)), core.NewColor(0.2, 0.2, 0.8), 0.1},
		{"pillar", geometry.NewCylinder(), core.UniformScaling(0.5).Then(core.Translation(-1, 0, 6)), core.Grey75, 0.3},
	}
	for _, c := range cylinders {
		b := geometry.NewBody(c.shape)
		b.Name = c.name
		mustTransform(b, c.m)
		b.Material.Color = c.color
		b.Material.Reflective = c.reflects
		b.Material.Specular = 0.6
		b.Material.Shininess = 100
		w.AddBody(b)
	}

	w.AddLight(lights.NewPointLight(core.NewPoint(-5, 8, -8), core.White))
	s.Cameras = []geometry.CameraConfig{lookFrom(core.NewPoint(0, 3, -7), core.NewPoint(0, 0.8, 0))}
	return s
}

// NewConesScene places a row of cones of different extents
func NewConesScene() *Scene {
	s := NewScene("cones")
	w := s.World

	floor := geometry.NewBody(geometry.NewPlane())
	floor.Name = "floor"
	mustTransform(floor, core.Translation(0, -1, 0))
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.2
	warm := material.NewStripePattern(material.Solid(core.ColorFromBytes(167, 83, 104)), material.Solid(core.ColorFromBytes(124, 41, 62)))
	cool := material.NewStripePattern(material.Solid(core.ColorFromBytes(63, 63, 63)), material.Solid(core.ColorFromBytes(104, 104, 104)))
	mustPatternTransform(warm, core.UniformScaling(0.3).Then(core.RotationY(quarterPi)))
	mustPatternTransform(cool, core.UniformScaling(0.3).Then(core.RotationY(-quarterPi)))
	floor.Material.Pattern = material.NewCheckersPattern(warm, cool)
	w.AddBody(floor)

	infinite := geometry.NewBody(geometry.NewTruncatedCone(-1, 3, false, false))
	infinite.Name = "hourglass"
	mustTransform(infinite, core.Translation(-10, 0, 0))
	infinite.Material.Color = core.NewColor(1, 0.843, 0)
	infinite.Material.Ambient = 0.2
	infinite.Material.Specular = 1
	infinite.Material.Shininess = 1000
	infinite.Material.Reflective = 1
	w.AddBody(infinite)

	blue := geometry.NewBody(geometry.NewTruncatedCone(-1, 1, false, false))
	blue.Name = "blue"
	mustTransform(blue, core.Translation(-5, 0, -2))
	blue.Material.Color = core.NewColor(0.2, 0, 0.9)
	blue.Material.Specular = 1
	blue.Material.Shininess = 1000
	blue.Material.Reflective = 1
	w.AddBody(blue)

	red := geometry.NewBody(geometry.NewTruncatedCone(-1, 2.3, true, true))
	red.Name = "red"
	red.Material.Color = core.Red
	red.Material.Reflective = 1
	w.AddBody(red)

	green := geometry.NewBody(geometry.NewTruncatedCone(-2, 0, true, false))
	green.Name = "green"
	mustTransform(green, core.RotationX(-quarterPi).Then(core.Translation(6, 1.9, 1)))
	green.Material.Color = core.NewColor(0, 0.9, 0.1)
	green.Material.Specular = 1
	green.Material.Shininess = 300
	green.Material.Reflective = 1
	w.AddBody(green)

	white := geometry.NewBody(geometry.NewTruncatedCone(-2, 0, false, false))
	white.Name = "white"
	mustTransform(white, core.RotationZ(-quarterPi).Then(core.RotationY(-0.3)).Then(core.Translation(12, 1.9, 0)))
	white.Material.Ambient = 0.2
	white.Material.Diffuse = 1
	white.Material.Specular = 1
	white.Material.Shininess = 300
	white.Material.Reflective = 0.9
	w.AddBody(white)

	w.AddLight(
		lights.NewPointLight(core.NewPoint(-2, 5, -10), core.White.Multiply(0.5)),
		lights.NewPointLight(core.NewPoint(5, 5, -10), core.White.Multiply(0.5)),
		lights.NewPointLight(core.NewPoint(0, 25, 100), core.NewColor(0.7, 0, 0)),
	)

	camera := lookFrom(core.NewPoint(0, 1.5, -5), core.NewPoint(0, 0.5, 0))
	camera.Transform = core.Translation(0, 0, -20)
	s.Cameras = []geometry.CameraConfig{camera}
	return s
}

// NewShadowsScene shows bodies that do not cast or do not receive shadows
func NewShadowsScene() *Scene {
	s := NewScene("shadows")
	w := s.World

	floor := geometry.NewBody(geometry.NewPlane())
	floor.Name = "floor"
	floor.Material.Color = core.NewColor(0.9, 0.9, 0.8)
	floor.Material.Specular = 0
	w.AddBody(floor)

	caster := geometry.NewBody(geometry.NewSphere())
	caster.Name = "caster"
	mustTransform(caster, core.Translation(-2.2, 1, 0))
	caster.Material.Color = core.NewColor(0.8, 0.3, 0.3)
	w.AddBody(caster)

	ghost := geometry.NewBody(geometry.NewSphere())
	ghost.Name = "no-shadow"
	mustTransform(ghost, core.Translation(0, 1, 0))
	ghost.Material.Color = core.NewColor(0.3, 0.8, 0.3)
	ghost.Material.CastsShadow = false
	w.AddBody(ghost)

	lit := geometry.NewBody(geometry.NewCube())
	lit.Name = "always-lit"
	mustTransform(lit, core.UniformScaling(0.7).Then(core.Translation(2.2, 0.7, 0)))
	lit.Material.Color = core.NewColor(0.3, 0.3, 0.8)
	lit.Material.ReceivesShadow = false
	w.AddBody(lit)

	blocker := geometry.NewBody(geometry.NewCube())
	blocker.Name = "blocker"
	mustTransform(blocker, core.Scaling(0.2, 2.5, 2).Then(core.Translation(4.2, 2.5, 0)))
	blocker.Material.Color = core.Grey75
	w.AddBody(blocker)

	w.AddLight(lights.NewPointLight(core.NewPoint(10, 8, -6), core.White))
	s.Cameras = []geometry.CameraConfig{lookFrom(core.NewPoint(0, 4, -9), core.NewPoint(0, 1, 0))}
	return s
}
