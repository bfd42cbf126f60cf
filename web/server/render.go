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

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/frames"
)

// FrameUpdate is one rendered frame sent via SSE
type FrameUpdate struct {
	Frame       int    `json:"frame"`
	TotalFrames int    `json:"totalFrames"`
	Name        string `json:"name"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	ElapsedMs   int64  `json:"elapsedMs"`
}

// CompleteUpdate summarises a finished animation
type CompleteUpdate struct {
	Frames         int   `json:"frames"`
	PrimaryRays    int   `json:"primaryRays"`
	ShadowRays     int   `json:"shadowRays"`
	ReflectionRays int   `json:"reflectionRays"`
	ElapsedMs      int64 `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleAnimation renders every frame of the posted scene file and streams them via SSE
func (s *Server) handleAnimation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "use POST with a scene file body")
		return
	}

	// Parse before switching to an event stream so bad input gets a plain error
	total, err := parseIntParam(r.URL.Query(), "frames", defaultFrames, 1, maxFrames)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneFile, err := readSceneFile(w, r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	start := time.Now()
	seq := &frames.Sequence{
		Source:  sceneFile,
		Frames:  total,
		Sink:    &sseSink{ctx: ctx, events: sseEventChan, total: total, start: start},
		Logger:  webLogger,
		Options: s.options,
	}
	result, err := seq.Run(ctx)

	// The logger is no longer used once Run returns
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Render error: %v", err))
	} else {
		data, _ := json.Marshal(CompleteUpdate{
			Frames:         result.Frames,
			PrimaryRays:    result.Stats.PrimaryRays,
			ShadowRays:     result.Stats.ShadowRays,
			ReflectionRays: result.Stats.ReflectionRays,
			ElapsedMs:      time.Since(start).Milliseconds(),
		})
		s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
	}

	close(sseEventChan)
	<-writerDone
}

// sseSink streams each frame as a "progress" event
type sseSink struct {
	ctx    context.Context
	events chan<- SSEEvent
	total  int
	start  time.Time
	frame  int
}

func (s *sseSink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %v", err)
	}

	data, err := json.Marshal(FrameUpdate{
		Frame:       s.frame,
		TotalFrames: s.total,
		Name:        name,
		ImageData:   imageData,
		ElapsedMs:   time.Since(s.start).Milliseconds(),
	})
	if err != nil {
		return err
	}
	s.frame++

	select {
	case s.events <- SSEEvent{Type: "progress", Data: string(data)}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
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
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
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

// streamConsoleMessages forwards log lines as "console" events until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				s.logger.Printf("Error marshaling console message: %v\n", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
