package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles completed so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderSummary is sent once the image is complete
type RenderSummary struct {
	Scene           string  `json:"scene"`
	Camera          string  `json:"camera"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	MaxDepth        int     `json:"maxDepth"`
	TotalTiles      int     `json:"totalTiles"`
	NumWorkers      int     `json:"numWorkers"`
	ElapsedMs       int64   `json:"elapsedMs"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
	Luminance       float64 `json:"luminance"` // average over the whole image
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "summary", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams each finished tile via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// every event goes through one writer goroutine
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	summary, err := s.render(ctx, req, webLogger, func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, tile)
	})

	// console output of this render is queued before the final events
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	if data, err := json.Marshal(summary); err == nil {
		s.send(ctx, sseEventChan, SSEEvent{Type: "summary", Data: string(data)})
	}
	s.send(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// render builds the scene and camera for req and renders them, reporting each tile
func (s *Server) render(ctx context.Context, req *RenderRequest, logger core.Logger, onTile func(renderer.TileCompletionResult)) (RenderSummary, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return RenderSummary{}, err
	}
	camera, err := s.setupCamera(sceneObj, req)
	if err != nil {
		return RenderSummary{}, err
	}

	config := renderer.Config{
		TileSize:   req.TileSize,
		NumWorkers: s.numWorkers,
		MaxDepth:   s.maxDepth(sceneObj, req),
	}
	raytracer, err := renderer.NewRaytracer(sceneObj.World, camera, config, logger)
	if err != nil {
		return RenderSummary{}, err
	}

	logger.Printf("Rendering %s (%d bodies, %d lights)\n", sceneObj.Name, len(sceneObj.World.Bodies), len(sceneObj.World.Lights))
	start := time.Now()
	canvas, stats, err := raytracer.RenderTiles(ctx, onTile)
	if err != nil {
		return RenderSummary{}, fmt.Errorf("Rendering failed: %w", err)
	}

	cameraName := req.Camera
	if cameraName == "" {
		cameraName = sceneObj.CameraNames()[0]
	}
	return RenderSummary{
		Scene:           req.Scene,
		Camera:          cameraName,
		Width:           camera.HSize,
		Height:          camera.VSize,
		MaxDepth:        config.MaxDepth,
		TotalTiles:      stats.TotalTiles,
		NumWorkers:      stats.NumWorkers,
		ElapsedMs:       time.Since(start).Milliseconds(),
		PixelsPerSecond: stats.PixelsPerSecond(),
		Luminance:       renderer.CalculateAverageLuminance(canvas.ToImage()),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan, s.logger)
}

// writeSSEEvents writes events until the channel is closed or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// handleTileUpdate encodes a finished tile and queues it
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, tileResult renderer.TileCompletionResult) {
	if ctx.Err() != nil {
		return
	}

	tileData, err := imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		s.logger.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:      tileResult.TileX,
		TileY:      tileResult.TileY,
		Width:      tileResult.Bounds.Dx(),
		Height:     tileResult.Bounds.Dy(),
		ImageData:  tileData,
		TileNumber: tileResult.TileNumber,
		TotalTiles: tileResult.TotalTiles,
	}

	data, err := json.Marshal(update)
	if err != nil {
		s.logger.Printf("Error marshaling tile update: %v", err)
		return
	}
	s.send(ctx, sseEventChan, SSEEvent{Type: "tile", Data: string(data)})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.TileSize, err = parseIntParam(r.URL.Query(), "tileSize", renderer.DefaultTileSize, 4, 512); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1920*1080 && req.MaxDepth > 10 {
		s.logger.Printf("Render warning: Large image with deep recursion may render slowly")
	}
	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *Server) send(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	s.send(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}
