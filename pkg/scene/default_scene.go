package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// DefaultCameraConfig looks down -Z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookTarget:  core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		FovY:        45,
		FocalLength: 1,
		Width:       200,
		Height:      200,
	}
}

// NewDefaultScene creates a single white sphere lit by a directional light shining along -Z
func NewDefaultScene(cameraOverrides ...CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = cameraOverrides[0]
	}

	s := NewScene(cameraConfig, 0)

	white := geometry.NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, 0),
		1,
	)
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, white))

	s.AddLight(lights.NewDirectionalLight(
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0, 0),
	))

	return s
}
