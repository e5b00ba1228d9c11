package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/logger"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName  string
	cameraName string
	configPath string
	list       bool
	help       bool

	// overrides applied on top of the config file; unset flags leave it alone
	resolution string
	width      int
	height     int
	draft      bool
	depth      int
	workers    int
	tileSize   int
	format     string
	outputDir  string
	logLevel   string

	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name or path to a .yaml/.yml/.json scene file")
	fs.StringVar(&opts.cameraName, "camera", "", "Camera to render (default: the scene's first camera)")
	fs.StringVar(&opts.configPath, "config", "", "Optional YAML config file")
	fs.StringVar(&opts.resolution, "resolution", "", "Named resolution: "+strings.Join(geometry.ResolutionNames(), ", "))
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (requires -height)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (requires -width)")
	fs.BoolVar(&opts.draft, "draft", false, "Render at a quarter of the resolution")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum reflection/refraction depth (default: the scene's own)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = one per CPU)")
	fs.IntVar(&opts.tileSize, "tile", renderer.DefaultTileSize, "Tile edge length in pixels")
	fs.StringVar(&opts.format, "format", config.FormatPNG, "Output format: png or ppm")
	fs.StringVar(&opts.outputDir, "output", "output", "Output directory")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs, nil
}

// buildConfig loads the optional config file and applies the flags that were set
func buildConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	r := &cfg.Render
	if opts.set["resolution"] {
		r.Resolution = opts.resolution
		r.Width, r.Height = 0, 0
	}
	if opts.set["width"] || opts.set["height"] {
		r.Width, r.Height = opts.width, opts.height
	}
	if opts.set["draft"] {
		r.Draft = opts.draft
	}
	if opts.set["depth"] {
		r.MaxDepth = opts.depth
	}
	if opts.set["workers"] {
		r.NumWorkers = opts.workers
	}
	if opts.set["tile"] {
		r.TileSize = opts.tileSize
	}
	if opts.set["format"] {
		cfg.Output.Format = strings.ToLower(opts.format)
	}
	if opts.set["output"] {
		cfg.Output.Directory = opts.outputDir
	}
	if opts.set["log-level"] {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// createScene resolves a built-in scene name, a scene file path, or the name of
// a file in one of the default scene directories
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name cannot be empty")
	}
	if s, err := scene.Builtin(name); err == nil {
		return s, nil
	}

	if fileExists(name) {
		return loaders.LoadScene(name)
	}
	for _, dir := range scene.DefaultSceneDirs {
		for _, ext := range scene.SceneFileExtensions {
			path := filepath.Join(dir, name+ext)
			if fileExists(path) {
				return loaders.LoadScene(path)
			}
		}
	}
	return nil, fmt.Errorf("%w: %q is neither a built-in scene (%s) nor a scene file",
		scene.ErrUnknownScene, name, strings.Join(scene.BuiltinNames(), ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// outputFilename names a render after its scene, camera and start time
func outputFilename(dir, sceneName, cameraName, format string, now time.Time) string {
	base := fmt.Sprintf("render_%s_%s_%s.%s", sanitize(sceneName), sanitize(cameraName), now.Format("20060102_150405"), format)
	return filepath.Join(dir, base)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func writeImage(path string, canvas *renderer.Canvas, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	switch format {
	case config.FormatPPM:
		err = canvas.WritePPM(file)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	return file.Close()
}

func printScenes(w io.Writer) error {
	response, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			name := info.ID
			if info.Type == scene.TypeFile {
				name = info.FilePath
			}
			fmt.Fprintf(w, "  %-28s %s\n", name, info.Description)
		}
	}
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	_ = printScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to <output>/render_<scene>_<camera>_<timestamp>.<format>")
}

// run renders one scene and returns the path of the written image
func run(ctx context.Context, args []string, stdout io.Writer) (string, error) {
	opts, fs, err := parseFlags(args, stdout)
	if err != nil {
		return "", err
	}
	if opts.help {
		printHelp(stdout, fs)
		return "", nil
	}
	if opts.list {
		return "", printScenes(stdout)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return "", err
	}

	log := logger.NewLogger(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		if log, err = logger.NewFileLogger(cfg.Logging.Level, cfg.Logging.File); err != nil {
			return "", err
		}
	}
	defer log.Close()

	s, err := createScene(opts.sceneName)
	if err != nil {
		return "", err
	}
	cameraConfig, err := s.CameraConfig(opts.cameraName)
	if err != nil {
		return "", err
	}
	if cameraConfig, err = cfg.Render.ApplyToCamera(cameraConfig); err != nil {
		return "", err
	}
	camera, err := geometry.NewCameraFromConfig(cameraConfig)
	if err != nil {
		return "", err
	}

	// the scene's own depth applies unless the config file or a flag overrides it
	maxDepth := s.MaxDepth
	if opts.configPath != "" || opts.set["depth"] {
		maxDepth = cfg.Render.MaxDepth
	}

	log.Infof("Rendering scene %q with camera %q at %dx%d (depth %d)",
		s.Name, cameraConfig.Name, camera.HSize, camera.VSize, maxDepth)

	rt, err := renderer.NewRaytracer(s.World, camera, renderer.Config{
		TileSize:   cfg.Render.TileSize,
		NumWorkers: cfg.Render.NumWorkers,
		MaxDepth:   maxDepth,
	}, log)
	if err != nil {
		return "", err
	}

	canvas, stats, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}
	img := canvas.ToImage()
	log.Infof("Render completed in %v (%d tiles, %d workers, %.0f pixels/s)",
		stats.Duration, stats.TotalTiles, stats.NumWorkers, stats.PixelsPerSecond())
	if lum := renderer.CalculateAverageLuminance(img); lum < 0.01 {
		log.Warnf("Average luminance %.4f; the image is almost black", lum)
	} else {
		log.Debugf("Average luminance %.4f", lum)
	}

	filename := outputFilename(cfg.Output.Directory, s.Name, cameraConfig.Name, cfg.Output.Format, time.Now())
	if err := writeImage(filename, canvas, img, cfg.Output.Format); err != nil {
		return "", err
	}
	log.Infof("Render saved as %s", filename)
	return filename, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
