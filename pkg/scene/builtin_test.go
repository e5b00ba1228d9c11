package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestBuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) error: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Scene name = %q, want %q", s.Name, name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene should be valid: %v", err)
			}
			if len(s.World.Bodies) == 0 {
				t.Error("Scene has no bodies")
			}
			if len(s.World.Lights) == 0 {
				t.Error("Scene has no lights")
			}
			if s.MaxDepth != DefaultMaxDepth {
				t.Errorf("MaxDepth = %d, want %d", s.MaxDepth, DefaultMaxDepth)
			}
			config, err := s.CameraConfig("")
			if err != nil {
				t.Fatalf("CameraConfig error: %v", err)
			}
			if _, err := geometry.NewCameraFromConfig(config); err != nil {
				t.Errorf("Camera should build: %v", err)
			}
		})
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("cornell-box")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestBuiltinBuildsFreshScenes(t *testing.T) {
	a, _ := Builtin("reflections")
	b, _ := Builtin("reflections")
	a.World.Bodies[0].Material.Reflective = 0
	if b.World.Bodies[0].Material.Reflective == 0 {
		t.Error("Built-in scenes should not share bodies")
	}
}

func TestReflectionsScene(t *testing.T) {
	s := NewReflectionsScene()
	if len(s.World.Bodies) != 7 {
		t.Errorf("Expected 7 bodies, got %d", len(s.World.Bodies))
	}
	if len(s.World.Lights) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.World.Lights))
	}
	if s.World.Bodies[0].Material.Pattern == nil {
		t.Error("Floor should be patterned")
	}
}

func TestBuiltinScenesInfo(t *testing.T) {
	infos := BuiltinScenes()
	if len(infos) != len(BuiltinNames()) {
		t.Fatalf("Got %d infos for %d scenes", len(infos), len(BuiltinNames()))
	}
	for _, info := range infos {
		if info.Type != TypeBuiltin || info.Group != BuiltinGroup {
			t.Errorf("%s: type %q group %q", info.ID, info.Type, info.Group)
		}
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("%s: missing display name or description", info.ID)
		}
	}
}

func TestSceneCameraConfig(t *testing.T) {
	s := NewCubesScene()

	if c, err := s.CameraConfig("side"); err != nil || c.Name != "side" {
		t.Errorf("CameraConfig(side) = %v, %v", c.Name, err)
	}
	if c, err := s.CameraConfig(""); err != nil || c.Name != "main" {
		t.Errorf("CameraConfig(\"\") = %v, %v", c.Name, err)
	}
	if _, err := s.CameraConfig("missing"); err == nil {
		t.Error("Expected error for unknown camera")
	}
	if names := s.CameraNames(); len(names) != 2 {
		t.Errorf("CameraNames = %v", names)
	}

	s.Cameras = nil
	if _, err := s.CameraConfig(""); err == nil {
		t.Error("Expected error for scene without cameras")
	}
}

func TestSceneValidate(t *testing.T) {
	s := NewScene("test")
	s.Cameras = append(s.Cameras, s.Cameras[0])
	if err := s.Validate(); err == nil {
		t.Error("Expected error for duplicate camera names")
	}

	s = NewScene("test")
	s.MaxDepth = -1
	if err := s.Validate(); err == nil {
		t.Error("Expected error for negative depth")
	}

	s = NewScene("test")
	s.Cameras[0].Resolution = geometry.Resolution{}
	if err := s.Validate(); err == nil {
		t.Error("Expected error for empty resolution")
	}
}
