// Package frames renders an animation one frame after another and hands
// every finished frame to an output sink.
package frames

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/animation"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Source builds a fresh scene for a frame
type Source interface {
	Build(frame int, keyframes *animation.Keyframes) (*scene.Scene, error)
}

// Sequence renders frames 0..Frames-1 of an animated scene
type Sequence struct {
	Source    Source
	Keyframes *animation.Keyframes // nil uses animation.DefaultKeyframes
	Frames    int                  // 0 renders every keyframe
	Sink      output.Sink
	Logger    core.Logger
	Options   renderer.Options
}

// Result summarises a finished run
type Result struct {
	Frames   int
	Stats    renderer.TraceStats
	Duration time.Duration
}

// FrameName returns the output file name of frame
func FrameName(frame int) string {
	return fmt.Sprintf("frame%d.png", frame)
}

func (s *Sequence) keyframes() *animation.Keyframes {
	if s.Keyframes == nil {
		s.Keyframes = animation.DefaultKeyframes()
	}
	return s.Keyframes
}

func (s *Sequence) logger() core.Logger {
	if s.Logger == nil {
		return core.NopLogger{}
	}
	return s.Logger
}

// FrameCount returns how many frames Run will render
func (s *Sequence) FrameCount() int {
	if s.Frames > 0 {
		return s.Frames
	}
	return s.keyframes().Frames()
}

// RenderFrame builds and renders a single frame without writing it
func (s *Sequence) RenderFrame(ctx context.Context, frame int) (*renderer.Image, renderer.TraceStats, error) {
	sc, err := s.Source.Build(frame, s.keyframes())
	if err != nil {
		return nil, renderer.TraceStats{}, fmt.Errorf("failed to build frame %d: %w", frame, err)
	}

	rt := renderer.NewRaytracer(sc, s.Options, s.logger())
	img, err := rt.RenderContext(ctx)
	if err != nil {
		return nil, rt.Stats(), fmt.Errorf("failed to render frame %d: %w", frame, err)
	}
	return img, rt.Stats(), nil
}

// Run renders every frame in order and writes each to the sink.
// Cancellation is honoured between frames and between rows.
func (s *Sequence) Run(ctx context.Context) (Result, error) {
	if s.Source == nil {
		return Result{}, fmt.Errorf("sequence has no scene source")
	}
	if s.Sink == nil {
		return Result{}, fmt.Errorf("sequence has no output sink")
	}

	var result Result
	start := time.Now()
	total := s.FrameCount()
	log := s.logger()

	log.Printf("Rendering %d frames...\n", total)
	for frame := 0; frame < total; frame++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("rendering cancelled before frame %d: %w", frame, err)
		}

		frameStart := time.Now()
		img, stats, err := s.RenderFrame(ctx, frame)
		result.Stats.Add(stats)
		if err != nil {
			return result, err
		}

		rgba := img.RGBA()
		name := FrameName(frame)
		if err := s.Sink.WriteFrame(ctx, name, rgba); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", name, err)
		}
		result.Frames++

		log.Printf("Frame %d/%d written to %s in %v (average luminance %.3f)\n",
			frame+1, total, name, time.Since(frameStart), renderer.CalculateAverageLuminance(rgba))
	}

	result.Duration = time.Since(start)
	log.Printf("Rendered %d frames in %v (%d rays)\n", result.Frames, result.Duration, result.Stats.TotalRays())
	return result, nil
}
