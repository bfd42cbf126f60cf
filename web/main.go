package main

import (
	"flag"
	"os"

	"github.com/df07/go-phong-raytracer/internal/logger"
	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath, ".env")
	if err != nil {
		logger.NewLogger("error").Errorf("%v", err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.Log.Level)
	defer log.Close()

	options := renderer.DefaultOptions()
	if cfg.Raytracer.ShadowDistance > 0 {
		options.ShadowDistance = cfg.Raytracer.ShadowDistance
	}
	if cfg.Raytracer.ShininessScale > 0 {
		options.ShininessScale = cfg.Raytracer.ShininessScale
	}

	webServer := server.NewServer(*port, options, log)

	log.Infof("Phong Raytracer Web Server")
	log.Infof("POST a scene file to http://localhost:%d/api/render or /api/animation", *port)

	if err := webServer.Start(); err != nil {
		log.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
