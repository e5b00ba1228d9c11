// Package config loads the YAML render configuration shared by the command
// line renderer and the web server.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Output formats
const (
	FormatPNG = "png"
	FormatPPM = "ppm"
)

// Config represents the main configuration
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig contains raytracer configuration. Width and height, when both
// set, override the named resolution.
type RenderConfig struct {
	Resolution  string  `yaml:"resolution"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FieldOfView float64 `yaml:"field_of_view"` // radians, 0 keeps the camera's own
	MaxDepth    int     `yaml:"max_depth"`
	TileSize    int     `yaml:"tile_size"`
	NumWorkers  int     `yaml:"num_workers"` // 0 means one per CPU
	Draft       bool    `yaml:"draft"`
}

// OutputConfig controls where rendered images are written
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Format    string `yaml:"format"` // png, ppm
}

// LoggingConfig controls the logger
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional; logs also go to stdout
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Resolution: "",
			MaxDepth:   scene.DefaultMaxDepth,
			TileSize:   32,
			NumWorkers: 0,
		},
		Output: OutputConfig{
			Directory: "output",
			Format:    FormatPNG,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file. The defaults are returned
// along with the error when the file is missing or invalid.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var errs []error
	r := c.Render

	if r.Resolution != "" {
		if _, err := geometry.ParseResolution(r.Resolution); err != nil {
			errs = append(errs, err)
		}
	}
	if r.Width < 0 || r.Height < 0 || (r.Width == 0) != (r.Height == 0) {
		errs = append(errs, fmt.Errorf("width and height must both be positive or both be zero, got %dx%d", r.Width, r.Height))
	}
	if r.FieldOfView < 0 || r.FieldOfView >= math.Pi || math.IsNaN(r.FieldOfView) {
		errs = append(errs, fmt.Errorf("field_of_view must be in (0, pi) radians, got %v", r.FieldOfView))
	}
	if r.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", r.MaxDepth))
	}
	if r.TileSize < 0 {
		errs = append(errs, fmt.Errorf("tile_size must not be negative, got %d", r.TileSize))
	}
	if r.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("num_workers must not be negative, got %d", r.NumWorkers))
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatPNG, FormatPPM:
	default:
		errs = append(errs, fmt.Errorf("output format must be %q or %q, got %q", FormatPNG, FormatPPM, c.Output.Format))
	}

	return errors.Join(errs...)
}

// ApplyToCamera overrides a scene camera's resolution and field of view with
// the configured values, then applies draft scaling
func (r RenderConfig) ApplyToCamera(camera geometry.CameraConfig) (geometry.CameraConfig, error) {
	switch {
	case r.Width > 0 && r.Height > 0:
		camera.Resolution = geometry.Resolution{Width: r.Width, Height: r.Height}
	case r.Resolution != "":
		res, err := geometry.ParseResolution(r.Resolution)
		if err != nil {
			return camera, err
		}
		camera.Resolution = res
	}
	if r.FieldOfView > 0 {
		camera.FieldOfView = r.FieldOfView
	}
	if r.Draft {
		camera.Resolution = camera.Resolution.Draft()
	}
	return camera, nil
}
