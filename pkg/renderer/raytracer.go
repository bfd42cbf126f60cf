package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Raytracer renders a scene into an Image one row at a time
type Raytracer struct {
	scene    *scene.Scene
	camera   *Camera
	tracer   *Tracer
	logger   core.Logger
	progress int // Log every progress rows, 0 disables row logging
}

// NewRaytracer creates a raytracer for s. A nil logger discards output.
func NewRaytracer(s *scene.Scene, options Options, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	progress := s.Camera.Height / 10
	if progress < 1 {
		progress = 1
	}
	return &Raytracer{
		scene:    s,
		camera:   NewCamera(s.Camera),
		tracer:   NewTracer(s, options),
		logger:   logger,
		progress: progress,
	}
}

// Stats returns the ray counters of the renders so far
func (rt *Raytracer) Stats() TraceStats {
	return rt.tracer.Stats()
}

// Render traces every pixel. Image row 0 is the top of the picture.
func (rt *Raytracer) Render() (*Image, error) {
	return rt.RenderContext(context.Background())
}

// RenderContext traces every pixel, checking ctx between rows
func (rt *Raytracer) RenderContext(ctx context.Context) (*Image, error) {
	width, height := rt.scene.Camera.Width, rt.scene.Camera.Height
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	if err := scene.ValidateMaxDepth(rt.scene.MaxDepth); err != nil {
		return nil, err
	}
	start := time.Now()

	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render cancelled at row %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			ray := rt.camera.GetRayThruPixel(x, height-y-1)
			rt.tracer.stats.PrimaryRays++
			img.SetColor(x, y, rt.tracer.RayTrace(ray, rt.scene.MaxDepth))
		}
		if (y+1)%rt.progress == 0 || y == height-1 {
			rt.logger.Printf("Rendered row %d/%d\n", y+1, height)
		}
	}

	stats := rt.tracer.Stats()
	rt.logger.Printf("Render completed in %v (%d rays)\n", time.Since(start), stats.TotalRays())
	return img, nil
}
