package scene

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// CameraConfig describes the pinhole camera of a scene
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	LookTarget  core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Global up vector
	FovY        float64   // Vertical field of view in degrees
	FocalLength float64   // Distance from eye to the image plane
	Width       int       // Output image width in pixels
	Height      int       // Output image height in pixels
}

// Rendering limits. Reflection rays fan out once per unshadowed light, so the
// depth bound keeps the per-pixel work finite.
const (
	MaxImageDimension = 8192
	MaxImagePixels    = 4096 * 4096
	MaxTraceDepth     = 10
)

// ValidateImageSize checks that a width x height image is positive and within
// the rendering limits
func ValidateImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if width > MaxImageDimension || height > MaxImageDimension {
		return fmt.Errorf("image size %dx%d exceeds %d pixels per side", width, height, MaxImageDimension)
	}
	if width*height > MaxImagePixels {
		return fmt.Errorf("image size %dx%d exceeds %d pixels", width, height, MaxImagePixels)
	}
	return nil
}

// ValidateMaxDepth checks the reflection recursion budget
func ValidateMaxDepth(depth int) error {
	if depth < 0 || depth > MaxTraceDepth {
		return fmt.Errorf("max depth %d out of range 0-%d", depth, MaxTraceDepth)
	}
	return nil
}

// Scene contains all the elements needed for rendering one frame.
// Objects are owned by value; a new Scene is built for every frame.
type Scene struct {
	Objects  []geometry.Object
	Lights   []lights.Light
	Camera   CameraConfig
	MaxDepth int // Reflection recursion budget
}

// NewScene creates an empty scene for the given camera
func NewScene(camera CameraConfig, maxDepth int) *Scene {
	return &Scene{
		Objects:  make([]geometry.Object, 0),
		Lights:   make([]lights.Light, 0),
		Camera:   camera,
		MaxDepth: maxDepth,
	}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(sphere geometry.Sphere) {
	s.Objects = append(s.Objects, geometry.NewSphereObject(sphere))
}

// AddTriangle appends a triangle to the scene
func (s *Scene) AddTriangle(triangle geometry.Triangle) {
	s.Objects = append(s.Objects, geometry.NewTriangleObject(triangle))
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
