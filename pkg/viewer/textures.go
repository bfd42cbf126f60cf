package viewer

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
)

// LoadTextures loads paths[i] into texture unit i. A texture that fails to
// load is logged and left out, so its drawables render untextured.
func LoadTextures(paths []string, flipV bool, logger core.Logger) map[int32]image.Image {
	if logger == nil {
		logger = core.NopLogger{}
	}
	textures := make(map[int32]image.Image, len(paths))
	for i, path := range paths {
		img, err := loaders.LoadTexture(path, flipV)
		if err != nil {
			logger.Printf("Texture unit %d: %v\n", i, err)
			continue
		}
		textures[int32(i)] = img
	}
	return textures
}

// NewFlyCameraFromConfig applies the viewer settings to a default camera
func NewFlyCameraFromConfig(cfg config.ViewerConfig) *FlyCamera {
	cam := NewFlyCamera()
	if cfg.FovY > 0 {
		cam.FovY = float32(cfg.FovY)
	}
	if cfg.NearPlane > 0 {
		cam.Near = float32(cfg.NearPlane)
	}
	if cfg.FarPlane > 0 {
		cam.Far = float32(cfg.FarPlane)
	}
	if cfg.MouseSpeed > 0 {
		cam.MouseSpeed = float32(cfg.MouseSpeed)
	}
	if cfg.MoveSpeed > 0 {
		cam.MoveSpeed = float32(cfg.MoveSpeed)
	}
	return cam
}
