package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/frames"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// maxSceneBytes caps the size of an uploaded scene file
const maxSceneBytes = 1 << 20

// Frame and animation length limits for query parameters
const (
	maxFrame      = 10000
	defaultFrames = 16
	maxFrames     = 256
)

// Server renders uploaded scene files over HTTP
type Server struct {
	port      int
	options   renderer.Options
	logger    core.Logger
	scenesDir string
}

// NewServer creates a new web server
func NewServer(port int, options renderer.Options, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Server{port: port, options: options, logger: logger, scenesDir: "scenes"}
}

// WithScenesDir sets the directory listed by /api/scenes
func (s *Server) WithScenesDir(dir string) *Server {
	s.scenesDir = dir
	return s
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/animation", s.handleAnimation)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, warnings := loaders.ListSceneFiles(s.scenesDir)
	for _, warning := range warnings {
		s.logger.Printf("Warning: %v\n", warning)
	}
	if scenes == nil {
		scenes = []loaders.SceneInfo{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"scenes": scenes})
}

// handleRender renders one frame of the posted scene file and returns it as PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "use POST with a scene file body")
		return
	}

	frame, err := parseIntParam(r.URL.Query(), "frame", 0, 0, maxFrame)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneFile, err := readSceneFile(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	seq := &frames.Sequence{Source: sceneFile, Logger: s.logger, Options: s.options}
	img, stats, err := seq.RenderFrame(r.Context(), frame)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Total-Rays", strconv.Itoa(stats.TotalRays()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// readSceneFile parses and validates the request body as a scene file
func readSceneFile(w http.ResponseWriter, r *http.Request) (*loaders.SceneFile, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	sceneFile, err := loaders.ParseSceneFile(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid scene file: %w", err)
	}
	// Every frame shares the same token layout, so frame 0 validates the file
	if _, err := sceneFile.Build(0, nil); err != nil {
		return nil, fmt.Errorf("invalid scene file: %w", err)
	}
	return sceneFile, nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
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
