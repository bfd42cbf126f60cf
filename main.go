package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-phong-raytracer/internal/logger"
	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/frames"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// options are the command line overrides applied on top of the config file
type options struct {
	configPath string
	envPath    string
	scene      string
	out        string
	frames     int
	frame      int // -1 renders the whole sequence
	thumb      int // -1 keeps the configured width
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	sceneFile := flag.String("scene", "", "Scene file to render (overrides config)")
	outDir := flag.String("out", "", "Directory for rendered frames (overrides config)")
	frameCount := flag.Int("frames", 0, "Number of frames to render, 0 for the config value")
	single := flag.Int("frame", -1, "Render only this frame")
	thumb := flag.Int("thumb", -1, "Thumbnail width in pixels, 0 disables thumbnails")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Phong Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Frames are written as frame<N>.png in the output directory.")
		fmt.Println("Environment: RAYTRACER_SCENE, RAYTRACER_OUTPUT, RAYTRACER_FRAMES, S3_BUCKET, S3_REGION,")
		fmt.Println("S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, LOG_LEVEL (also read from .env)")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{
		configPath: *configPath,
		envPath:    ".env",
		scene:      *sceneFile,
		out:        *outDir,
		frames:     *frameCount,
		frame:      *single,
		thumb:      *thumb,
	}
	if err := run(ctx, opts); err != nil {
		logger.NewLogger("error").Errorf("%v", err)
		os.Exit(1)
	}
}

// run loads the configuration and renders the requested frames
func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Infof("Loading scene %s", cfg.Raytracer.SceneFile)
	sceneFile, err := loaders.LoadSceneFile(cfg.Raytracer.SceneFile)
	if err != nil {
		return err
	}

	sink, err := buildSink(cfg, log)
	if err != nil {
		return err
	}

	seq := &frames.Sequence{
		Source:  sceneFile,
		Frames:  cfg.Raytracer.Frames,
		Sink:    sink,
		Logger:  log,
		Options: rendererOptions(cfg.Raytracer),
	}

	if opts.frame >= 0 {
		img, stats, err := seq.RenderFrame(ctx, opts.frame)
		if err != nil {
			return err
		}
		name := frames.FrameName(opts.frame)
		if err := sink.WriteFrame(ctx, name, img.RGBA()); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Infof("Frame %d written to %s (%d rays)", opts.frame, name, stats.TotalRays())
		return nil
	}

	result, err := seq.Run(ctx)
	if err != nil {
		return err
	}
	log.Infof("Done: %d frames, %d primary, %d shadow, %d reflection rays",
		result.Frames, result.Stats.PrimaryRays, result.Stats.ShadowRays, result.Stats.ReflectionRays)
	return nil
}

// loadConfig reads the config file and environment, then applies flag overrides
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.envPath)
	if err != nil {
		return nil, err
	}

	if opts.scene != "" {
		cfg.Raytracer.SceneFile = opts.scene
	}
	if opts.out != "" {
		cfg.Raytracer.OutputDir = opts.out
	}
	if opts.frames > 0 {
		cfg.Raytracer.Frames = opts.frames
	}
	if opts.thumb >= 0 {
		cfg.Output.ThumbnailWidth = uint(opts.thumb)
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.LogConfig) (*logger.Logger, error) {
	if cfg.File != "" {
		return logger.NewMultiLogger(cfg.Level, cfg.File)
	}
	return logger.NewLogger(cfg.Level), nil
}

// buildSink writes frames to the output directory and, when configured, to S3.
// Thumbnails go to every destination.
func buildSink(cfg *config.Config, log core.Logger) (output.Sink, error) {
	sinks := output.MultiSink{output.NewFileSink(cfg.Raytracer.OutputDir)}

	if s3 := cfg.Output.S3; s3.Enabled() {
		upload, err := output.NewS3Sink(output.S3Config{
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Endpoint:  s3.Endpoint,
			Region:    s3.Region,
			Bucket:    s3.Bucket,
			Prefix:    s3.Prefix,
		}, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, upload)
	}

	var sink output.Sink = sinks
	if cfg.Output.ThumbnailWidth > 0 {
		sink = output.NewThumbnailSink(sinks, cfg.Output.ThumbnailWidth)
	}
	return sink, nil
}

func rendererOptions(cfg config.RaytracerConfig) renderer.Options {
	opts := renderer.DefaultOptions()
	if cfg.ShadowDistance > 0 {
		opts.ShadowDistance = cfg.ShadowDistance
	}
	if cfg.ShininessScale > 0 {
		opts.ShininessScale = cfg.ShininessScale
	}
	return opts
}
