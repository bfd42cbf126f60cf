package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Raytracer RaytracerConfig `yaml:"raytracer"`
	Output    OutputConfig    `yaml:"output"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Log       LogConfig       `yaml:"log"`
}

// RaytracerConfig contains offline renderer configuration
type RaytracerConfig struct {
	SceneFile      string  `yaml:"scene_file"`
	Frames         int     `yaml:"frames"` // 0 renders every keyframe
	OutputDir      string  `yaml:"output_dir"`
	ShadowDistance float64 `yaml:"shadow_distance"`
	ShininessScale float64 `yaml:"shininess_scale"`
}

// OutputConfig contains frame output configuration
type OutputConfig struct {
	ThumbnailWidth uint     `yaml:"thumbnail_width"` // 0 disables thumbnails
	S3             S3Config `yaml:"s3"`
}

// S3Config contains the upload target. Credentials are only read from the environment.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Enabled reports whether frames should be uploaded
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// ViewerConfig contains interactive viewer configuration
type ViewerConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	FovY       float64  `yaml:"fov_y"`
	NearPlane  float64  `yaml:"near_plane"`
	FarPlane   float64  `yaml:"far_plane"`
	MouseSpeed float64  `yaml:"mouse_speed"`
	MoveSpeed  float64  `yaml:"move_speed"`
	Textures   []string `yaml:"textures"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error, fatal
	File  string `yaml:"file"`  // Optional: also log to this file
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Raytracer: RaytracerConfig{
			SceneFile:      "scenes/pyramid.test",
			Frames:         0,
			OutputDir:      "output",
			ShadowDistance: 1.0,
			ShininessScale: 128.0,
		},
		Output: OutputConfig{
			ThumbnailWidth: 0,
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Viewer: ViewerConfig{
			Width:      800,
			Height:     800,
			FovY:       80,
			NearPlane:  0.1,
			FarPlane:   100,
			MouseSpeed: 0.05,
			MoveSpeed:  2,
			Textures:   []string{"textures/RoomTexture2.png", "textures/stone.jpg"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file. A missing or invalid file
// returns the defaults together with the error so callers may continue.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the process
// environment. Variables that are already set win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// getEnv returns the environment value for key or fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides fields from environment variables
func (c *Config) ApplyEnv() error {
	c.Raytracer.SceneFile = getEnv("RAYTRACER_SCENE", c.Raytracer.SceneFile)
	c.Raytracer.OutputDir = getEnv("RAYTRACER_OUTPUT", c.Raytracer.OutputDir)
	if frames, ok := os.LookupEnv("RAYTRACER_FRAMES"); ok {
		n, err := strconv.Atoi(frames)
		if err != nil {
			return fmt.Errorf("invalid RAYTRACER_FRAMES '%s': %w", frames, err)
		}
		c.Raytracer.Frames = n
	}

	c.Output.S3.AccessKey = getEnv("S3_ACCESS_KEY", c.Output.S3.AccessKey)
	c.Output.S3.SecretKey = getEnv("S3_SECRET_KEY", c.Output.S3.SecretKey)
	c.Output.S3.Bucket = getEnv("S3_BUCKET", c.Output.S3.Bucket)
	c.Output.S3.Region = getEnv("S3_REGION", c.Output.S3.Region)
	c.Output.S3.Endpoint = getEnv("S3_ENDPOINT", c.Output.S3.Endpoint)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	return nil
}

// Load reads the config file, then the .env file, then the environment.
// A missing config file is not an error.
func Load(configPath, envPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		config = loaded
	}

	if envPath != "" {
		if err := LoadDotEnv(envPath); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

var logLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Validate checks that the configuration can be used
func (c *Config) Validate() error {
	if c.Raytracer.Frames < 0 {
		return fmt.Errorf("raytracer.frames cannot be negative: %d", c.Raytracer.Frames)
	}
	if c.Raytracer.ShadowDistance < 0 {
		return fmt.Errorf("raytracer.shadow_distance cannot be negative: %f", c.Raytracer.ShadowDistance)
	}
	if c.Raytracer.ShininessScale < 0 {
		return fmt.Errorf("raytracer.shininess_scale cannot be negative: %f", c.Raytracer.ShininessScale)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.FovY <= 0 || c.Viewer.FovY >= 180 {
		return fmt.Errorf("viewer.fov_y must be between 0 and 180, got %f", c.Viewer.FovY)
	}
	if c.Viewer.NearPlane <= 0 || c.Viewer.FarPlane <= c.Viewer.NearPlane {
		return fmt.Errorf("viewer clip planes must satisfy 0 < near < far, got %f and %f", c.Viewer.NearPlane, c.Viewer.FarPlane)
	}

	level := strings.ToLower(c.Log.Level)
	for _, known := range logLevels {
		if level == known {
			return nil
		}
	}
	return fmt.Errorf("unknown log level '%s'", c.Log.Level)
}
