package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func newTestServer() *Server {
	s := NewServer(0, nil)
	s.SetNumWorkers(2)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Invalid JSON response %q: %v", rec.Body.String(), err)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Body = %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var response scene.ScenesResponse
	decode(t, rec, &response)
	if len(response.Groups) == 0 || response.Groups[0].Name != scene.BuiltinGroup {
		t.Fatalf("Groups = %+v", response.Groups)
	}
	if len(response.Groups[0].Scenes) != len(scene.BuiltinNames()) {
		t.Errorf("Got %d built-in scenes, want %d", len(response.Groups[0].Scenes), len(scene.BuiltinNames()))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/scene-config?scene=cubes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var body struct {
		Name    string `json:"name"`
		Cameras []struct {
			Name string `json:"name"`
		} `json:"cameras"`
		Defaults struct {
			MaxDepth int `json:"maxDepth"`
		} `json:"defaults"`
	}
	decode(t, rec, &body)
	if body.Name != "cubes" || len(body.Cameras) != 2 {
		t.Errorf("Body = %+v", body)
	}
	if body.Defaults.MaxDepth != scene.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", body.Defaults.MaxDepth, scene.DefaultMaxDepth)
	}

	if rec := get(t, s, "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Unknown scene status = %d, want 400", rec.Code)
	}
}

func TestHandleRender(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=default&width=32&height=16&tileSize=16")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if n := strings.Count(body, "event: tile\n"); n != 2 {
		t.Errorf("Got %d tile events, want 2:\n%s", n, body)
	}
	if strings.Contains(body, "event: error") {
		t.Errorf("Unexpected error event:\n%s", body)
	}
	if !strings.Contains(body, "event: summary\n") || !strings.HasSuffix(body, "event: complete\ndata: Rendering completed\n\n") {
		t.Errorf("Render should end with a summary and a complete event:\n%s", body)
	}

	var tile TileUpdate
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: {\"tileX\"") {
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &tile); err != nil {
				t.Fatalf("Invalid tile event: %v", err)
			}
			break
		}
	}
	if tile.Width != 16 || tile.Height != 16 || tile.TotalTiles != 2 || tile.ImageData == "" {
		t.Errorf("Tile = %+v", tile)
	}

	var summary RenderSummary
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: {\"scene\"") {
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &summary); err != nil {
				t.Fatalf("Invalid summary event: %v", err)
			}
		}
	}
	if summary.Camera != "main" || summary.TotalTiles != 2 || summary.MaxDepth != scene.DefaultMaxDepth {
		t.Errorf("Summary = %+v", summary)
	}
	if summary.Luminance <= 0 {
		t.Errorf("Summary luminance = %v, want a lit image", summary.Luminance)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{"unknown scene", "scene=nope"},
		{"unknown camera", "scene=default&camera=nope"},
		{"width without height", "width=32"},
		{"width too large", "width=5000&height=10"},
		{"bad depth", "maxDepth=-3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := get(t, newTestServer(), "/api/render?"+tc.query).Body.String()
			if !strings.Contains(body, "event: error\n") {
				t.Errorf("Expected an error event, got:\n%s", body)
			}
			if strings.Contains(body, "event: complete") {
				t.Errorf("Failed render should not complete:\n%s", body)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer()

	t.Run("hit", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=default&width=16&height=16&x=8&y=8")
		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d: %s", rec.Code, rec.Body)
		}
		var response InspectResponse
		decode(t, rec, &response)
		if !response.Hit || response.Body != "outer" || response.GeometryType != "sphere" {
			t.Errorf("Response = %+v", response)
		}
		if response.Distance < 3.9 || response.Distance > 4.2 {
			t.Errorf("Distance = %v, want about 4", response.Distance)
		}
		if !response.FrontFace || response.Normal[2] > -0.8 {
			t.Errorf("Expected the front of the sphere facing the camera, got normal %v", response.Normal)
		}
	})

	t.Run("miss", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=default&width=16&height=16&x=0&y=0")
		var response InspectResponse
		decode(t, rec, &response)
		if response.Hit || response.Color != "#000000" {
			t.Errorf("Response = %+v, want a black miss", response)
		}
	})

	errorCases := []string{
		"scene=default&width=16&height=16&x=16&y=0",
		"scene=default&x=abc&y=0",
		"scene=default&x=0",
		"scene=nope&x=0&y=0",
	}
	for _, query := range errorCases {
		t.Run(query, func(t *testing.T) {
			if rec := get(t, s, "/api/inspect?"+query); rec.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateScene_Files(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "scenes"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "# Scene: Room\nbodies:\n  - type: sphere\n"
	if err := os.WriteFile(filepath.Join(dir, "scenes", "room.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	s := newTestServer()
	sceneObj, err := s.createScene("file:room")
	if err != nil {
		t.Fatalf("createScene() error: %v", err)
	}
	if sceneObj.Name != "room" || len(sceneObj.World.Bodies) != 1 {
		t.Errorf("Scene = %+v", sceneObj)
	}

	if _, err := s.createScene("file:../../etc/passwd"); err == nil {
		t.Error("createScene() should only load discovered files")
	}
}
