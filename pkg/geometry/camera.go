package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultFieldOfView is the horizontal or vertical field of view, whichever is wider
const DefaultFieldOfView = math.Pi / 3

// CameraConfig describes a camera the way scenes author it
type CameraConfig struct {
	Name        string
	Resolution  Resolution
	FieldOfView float64    // radians
	From        core.Tuple // eye position
	To          core.Tuple // point looked at
	Up          core.Tuple // approximate up vector
	Transform   core.Matrix
}

// DefaultCameraConfig returns the camera used when a scene does not define one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Name:        "main",
		Resolution:  DefaultResolution,
		FieldOfView: DefaultFieldOfView,
		From:        core.NewPoint(0, 0, -10),
		To:          core.NewPoint(0, 1, 0),
		Up:          core.NewVector(0, 1, 0),
		Transform:   core.Identity(),
	}
}

// Camera maps pixels on a canvas one unit in front of the eye to world rays
type Camera struct {
	HSize       int
	VSize       int
	FieldOfView float64
	transform   core.Transform
	halfWidth   float64
	halfHeight  float64
	pixelSize   float64
}

// NewCamera creates a camera at the origin looking down -z
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.IdentityTransform(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)
	return c
}

// NewCameraFromConfig builds a camera from its view parameters. The config's
// extra transform is applied after the view transform.
func NewCameraFromConfig(config CameraConfig) (*Camera, error) {
	if err := config.Resolution.Validate(); err != nil {
		return nil, fmt.Errorf("camera %q: %w", config.Name, err)
	}
	fov := config.FieldOfView
	if fov == 0 {
		fov = DefaultFieldOfView
	}
	if fov <= 0 || fov >= math.Pi {
		return nil, fmt.Errorf("camera %q: field of view %v must be in (0, pi)", config.Name, fov)
	}

	c := NewCamera(config.Resolution.Width, config.Resolution.Height, fov)
	view := core.ViewTransform(config.From, config.To, config.Up)
	extra := config.Transform
	if extra == (core.Matrix{}) {
		extra = core.Identity()
	}
	if err := c.SetTransform(view.Then(extra)); err != nil {
		return nil, fmt.Errorf("camera %q: %w", config.Name, err)
	}
	return c, nil
}

// Transform returns the camera's view transform
func (c *Camera) Transform() core.Transform {
	return c.transform
}

// SetTransform replaces the view transform. A singular matrix is rejected.
func (c *Camera) SetTransform(m core.Matrix) error {
	t, err := core.NewTransform(m)
	if err != nil {
		return fmt.Errorf("camera transform: %w", err)
	}
	c.transform = t
	return nil
}

// PixelSize returns the width of one pixel on the canvas
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// HalfWidth returns half the canvas width
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the canvas height
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// Validate rejects cameras with no pixels
func (c *Camera) Validate() error {
	return Resolution{Width: c.HSize, Height: c.VSize}.Validate()
}

// RayForPixel returns the world ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	return c.RayForPoint(float64(px)+0.5, float64(py)+0.5)
}

// RayForPoint returns the world ray through canvas coordinates (x, y), measured in pixels
func (c *Camera) RayForPoint(x, y float64) core.Ray {
	worldX := c.halfWidth - x*c.pixelSize
	worldY := c.halfHeight - y*c.pixelSize

	inverse := c.transform.Inverse()
	pixel := inverse.MultiplyTuple(core.NewPoint(worldX, worldY, -1))
	origin := inverse.MultiplyTuple(core.NewPoint(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()
	return core.NewRay(origin, direction)
}
