package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/df07/go-phong-raytracer/internal/logger"
	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/viewer"
	"github.com/df07/go-phong-raytracer/pkg/viewer/glview"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	snapshot := flag.String("snapshot", "", "Render one frame to this PNG on the CPU instead of opening a window")
	at := flag.Float64("time", 0, "Animation time in seconds for -snapshot")
	flag.Parse()

	cfg, err := config.Load(*configPath, ".env")
	if err != nil {
		logger.NewLogger("error").Errorf("%v", err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.Log.Level)
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *snapshot != "" {
		err = writeSnapshot(ctx, cfg.Viewer, *snapshot, float32(*at), log)
	} else {
		err = openWindow(ctx, cfg.Viewer, log)
	}
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func writeSnapshot(ctx context.Context, cfg config.ViewerConfig, path string, t float32, log *logger.Logger) error {
	textures := viewer.LoadTextures(cfg.Textures, false, log)
	img := viewer.Snapshot(cfg.Width, cfg.Height, t, viewer.NewFlyCameraFromConfig(cfg), textures)

	sink := output.NewFileSink(filepath.Dir(path))
	if err := sink.WriteFrame(ctx, filepath.Base(path), img); err != nil {
		return err
	}
	log.Infof("Snapshot written to %s", path)
	return nil
}

func openWindow(ctx context.Context, cfg config.ViewerConfig, log *logger.Logger) error {
	window, err := glview.New(cfg, log)
	if err != nil {
		return err
	}
	defer window.Close()

	if err := window.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
