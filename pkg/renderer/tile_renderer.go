package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world      *scene.World
	camera     *geometry.Camera
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given world, camera and integrator
func NewTileRenderer(world *scene.World, camera *geometry.Camera, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders one primary ray per pixel within bounds into sink
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, sink PixelSink) RenderStats {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.RayForPixel(x, y)
			sink.WritePixel(x, y, tr.integrator.RayColor(ray, tr.world))
		}
	}
	return RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), TotalTiles: 1}
}
