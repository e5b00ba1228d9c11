package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	TileSize   int // Edge length of each tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	MaxDepth   int // Reflection/refraction bounces
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
		MaxDepth:   scene.DefaultMaxDepth,
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Tiles completed so far, including this one (1-based)
	TotalTiles int
}

// Raytracer renders a world through a camera, splitting the image into tiles
// that are shaded in parallel
type Raytracer struct {
	world      *scene.World
	camera     *geometry.Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer validates the world and camera and creates a raytracer. A nil
// logger discards output.
func NewRaytracer(world *scene.World, camera *geometry.Camera, config Config, logger core.Logger) (*Raytracer, error) {
	if world == nil {
		return nil, errors.New("raytracer needs a world")
	}
	if camera == nil {
		return nil, errors.New("raytracer needs a camera")
	}
	if err := world.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world: %w", err)
	}
	if err := camera.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", config.MaxDepth)
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewWhitted(config.MaxDepth),
		logger:     logger,
	}, nil
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the whole image. If ctx is cancelled the partial image is
// discarded and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Canvas, RenderStats, error) {
	return rt.RenderTiles(ctx, nil)
}

// RenderTiles renders the whole image, calling onTile from the calling
// goroutine as each tile completes
func (rt *Raytracer) RenderTiles(ctx context.Context, onTile func(TileCompletionResult)) (*Canvas, RenderStats, error) {
	canvas := NewCanvas(rt.camera.HSize, rt.camera.VSize)
	stats, err := rt.RenderTo(ctx, canvas, func(tile *Tile, done, total int) {
		if onTile == nil {
			return
		}
		onTile(TileCompletionResult{
			TileX:      tile.X,
			TileY:      tile.Y,
			Bounds:     tile.Bounds,
			TileImage:  canvas.SubImage(tile.Bounds),
			TileNumber: done,
			TotalTiles: total,
		})
	})
	if err != nil {
		return nil, RenderStats{}, err
	}
	return canvas, stats, nil
}

// RenderTo renders every pixel into sink. progress, if set, is called from the
// calling goroutine after each tile.
func (rt *Raytracer) RenderTo(ctx context.Context, sink PixelSink, progress func(tile *Tile, done, total int)) (RenderStats, error) {
	start := time.Now()
	tiles := NewTileGrid(rt.camera.HSize, rt.camera.VSize, rt.config.TileSize)

	pool := NewWorkerPool(NewTileRenderer(rt.world, rt.camera, rt.integrator), len(tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d in %d tiles using %d workers...\n",
		rt.camera.HSize, rt.camera.VSize, len(tiles), pool.NumWorkers())

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Sink: sink})
	}

	stats := RenderStats{NumWorkers: pool.NumWorkers()}
	var renderErr error
	for done := 1; done <= len(tiles); done++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = errors.New("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.add(result.Stats)
		if progress != nil && renderErr == nil {
			progress(tiles[result.TaskID], done, len(tiles))
		}
	}
	pool.Stop()

	if renderErr != nil {
		rt.logger.Printf("Render aborted after %d of %d tiles: %v\n", stats.TotalTiles, len(tiles), renderErr)
		return RenderStats{}, renderErr
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())
	return stats, nil
}
