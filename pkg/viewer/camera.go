// Package viewer describes the interactive room scene: a first person fly
// camera, the vertex data of its meshes, the per-frame model matrices and the
// light uniforms. It has no GL dependency; see package glview for the window.
package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FlyCamera is a first person camera steered by mouse offsets and WASD keys.
// Angles are in degrees.
type FlyCamera struct {
	Position        mgl32.Vec3
	HorizontalAngle float32
	VerticalAngle   float32

	MouseSpeed float32 // Degrees per pixel of mouse offset, before the 1.25 gain
	MoveSpeed  float32 // World units per second
	FovY       float32 // Vertical field of view in degrees
	Near, Far  float32
}

// mouseGain scales MouseSpeed for every pixel the cursor moved
const mouseGain = 1.25

// NewFlyCamera creates a camera at the origin looking along +Z
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:        mgl32.Vec3{0, 0, 0},
		HorizontalAngle: 3.14,
		VerticalAngle:   0,
		MouseSpeed:      0.05,
		MoveSpeed:       2,
		FovY:            80,
		Near:            0.1,
		Far:             100,
	}
}

// Look turns the camera by the cursor offset from the window centre.
// Positive dx turns left, positive dy looks up.
func (c *FlyCamera) Look(dx, dy float64) {
	c.HorizontalAngle += c.MouseSpeed * mouseGain * float32(dx)
	c.VerticalAngle += c.MouseSpeed * mouseGain * float32(dy)
}

// Direction returns the unit viewing direction
func (c *FlyCamera) Direction() mgl32.Vec3 {
	h := float64(mgl32.DegToRad(c.HorizontalAngle))
	v := float64(mgl32.DegToRad(c.VerticalAngle))
	return mgl32.Vec3{
		float32(math.Cos(v) * math.Sin(h)),
		float32(math.Sin(v)),
		float32(math.Cos(v) * math.Cos(h)),
	}
}

// Right returns the horizontal strafe direction
func (c *FlyCamera) Right() mgl32.Vec3 {
	h := float64(mgl32.DegToRad(c.HorizontalAngle)) - math.Pi/2
	return mgl32.Vec3{float32(math.Sin(h)), 0, float32(math.Cos(h))}
}

// Up is the camera's up vector. The scene is authored for a flipped view, so it points down.
func (c *FlyCamera) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, -1, 0}
}

// Move advances the camera. forward and strafe are -1, 0 or 1 per axis, dt is in seconds.
func (c *FlyCamera) Move(forward, strafe, dt float32) {
	step := c.MoveSpeed * dt
	c.Position = c.Position.
		Add(c.Direction().Mul(forward * step)).
		Add(c.Right().Mul(strafe * step))
}

// Target returns the point one unit in front of the camera
func (c *FlyCamera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Direction())
}

// View returns the world to camera matrix
func (c *FlyCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target(), c.Up())
}

// Projection returns the perspective matrix for the given aspect ratio
func (c *FlyCamera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}
