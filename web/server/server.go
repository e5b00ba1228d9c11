package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	MinImageSize = 16
	MaxImageSize = 2000
	MaxDepth     = 32
)

// DefaultScene is rendered when a request names none
const DefaultScene = "reflections"

// Server handles web requests for the raytracer
type Server struct {
	port   int
	logger core.Logger
	// workers per render, 0 for one per CPU
	numWorkers int
}

// NewServer creates a new web server. A nil logger discards server messages.
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{port: port, logger: logger}
}

// SetNumWorkers limits the workers used by each render
func (s *Server) SetNumWorkers(n int) {
	s.numWorkers = n
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene ID, a built-in name or "file:<name>"
	Camera   string `json:"camera"`   // Camera name, empty for the scene's first
	Width    int    `json:"width"`    // 0 keeps the camera's resolution
	Height   int    `json:"height"`   // 0 keeps the camera's resolution
	MaxDepth int    `json:"maxDepth"` // -1 keeps the scene's depth
	TileSize int    `json:"tileSize"`
}

// Handler returns the routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns a scene's cameras and defaults along with the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = DefaultScene
	}

	sceneObj, err := s.createScene(sceneID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cameras := make([]map[string]interface{}, 0, len(sceneObj.Cameras))
	for _, c := range sceneObj.Cameras {
		cameras = append(cameras, map[string]interface{}{
			"name":        c.Name,
			"width":       c.Resolution.Width,
			"height":      c.Resolution.Height,
			"fieldOfView": c.FieldOfView,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":   sceneID,
		"name":    sceneObj.Name,
		"cameras": cameras,
		"defaults": map[string]interface{}{
			"maxDepth": sceneObj.MaxDepth,
			"tileSize": renderer.DefaultTileSize,
			"bodies":   len(sceneObj.World.Bodies),
			"lights":   len(sceneObj.World.Lights),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"height":   map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"maxDepth": map[string]int{"min": 0, "max": MaxDepth},
		},
	})
}

// parseCommonSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = DefaultScene
	}
	req.Camera = query.Get("camera")

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if (req.Width == 0) != (req.Height == 0) {
		return errors.New("width and height must be given together")
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", -1, 0, MaxDepth); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds a built-in scene, or loads a discovered scene file for a "file:" ID.
// Only files found by scene discovery can be loaded.
func (s *Server) createScene(sceneID string) (*scene.Scene, error) {
	if !strings.HasPrefix(sceneID, scene.TypeFile+":") {
		return scene.Builtin(sceneID)
	}

	files, err := scene.ListSceneFiles()
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == sceneID {
			return loaders.LoadScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, sceneID)
}

// setupCamera selects the requested camera and applies the request's resolution
func (s *Server) setupCamera(sceneObj *scene.Scene, req *RenderRequest) (*geometry.Camera, error) {
	config, err := sceneObj.CameraConfig(req.Camera)
	if err != nil {
		return nil, err
	}
	if req.Width > 0 && req.Height > 0 {
		config.Resolution = geometry.Resolution{Width: req.Width, Height: req.Height}
	}
	return geometry.NewCameraFromConfig(config)
}

func (s *Server) maxDepth(sceneObj *scene.Scene, req *RenderRequest) int {
	if req.MaxDepth >= 0 {
		return req.MaxDepth
	}
	return sceneObj.MaxDepth
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
