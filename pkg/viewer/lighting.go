package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DirLight is a light at infinity shining along Direction
type DirLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// PointLight is an omnidirectional light with distance attenuation
type PointLight struct {
	Position  mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// SpotLight is a cone light. CutOff and OuterCutOff are cosines of the cone half angles.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	Constant    float32
	Linear      float32
	Quadratic   float32
}

// Material scales the diffuse and specular terms of every light
type Material struct {
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// Lights holds every light uniform for one frame
type Lights struct {
	CameraPosition mgl32.Vec3
	Dir            DirLight
	Point          PointLight
	Spot           SpotLight
	Material       Material
}

// Lighting returns the light uniforms at time t. The spot light follows the camera.
func Lighting(t float32, cam *FlyCamera) Lights {
	tf := float64(t)
	ambient := mgl32.Vec3{0.2, 0.2, 0.2}
	none := mgl32.Vec3{}

	return Lights{
		CameraPosition: cam.Position,
		Dir: DirLight{
			Direction: mgl32.Vec3{-1.2, -1, -2.3},
			Ambient:   ambient,
			Diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
			Specular:  none,
		},
		Point: PointLight{
			Position: mgl32.Vec3{0, 0.15, -0.5},
			Ambient:  ambient,
			Diffuse: mgl32.Vec3{
				float32(math.Sin(tf*0.3) + 0.2),
				float32(math.Sin(tf*0.2) + 0.2),
				float32(math.Cos(tf * 0.6)),
			},
			Specular:  none,
			Constant:  1,
			Linear:    0.7,
			Quadratic: 1.8,
		},
		Spot: SpotLight{
			Position:    cam.Position,
			Direction:   cam.Direction(),
			Ambient:     ambient,
			Diffuse:     mgl32.Vec3{0.5, 0.5, 0.5},
			Specular:    none,
			CutOff:      float32(math.Cos(float64(mgl32.DegToRad(8)))),
			OuterCutOff: float32(math.Cos(float64(mgl32.DegToRad(12)))),
			Constant:    1,
			Linear:      0.5,
			Quadratic:   0.32,
		},
		Material: Material{
			Diffuse:   none,
			Specular:  mgl32.Vec3{1, 1, 1},
			Shininess: 16,
		},
	}
}
