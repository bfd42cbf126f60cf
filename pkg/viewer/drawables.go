package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture units bound by the viewer
const (
	RoomTextureUnit  = 0
	StoneTextureUnit = 1
)

// Drawable is one draw call: a mesh range, its model matrix and the texture unit it samples
type Drawable struct {
	Name        string
	Model       mgl32.Mat4
	Range       DrawRange
	TextureUnit int32
	Visible     bool
}

// Drawables returns every object in the room at time t (seconds since start).
// The room shell is listed but not visible.
func Drawables(t float32) []Drawable {
	tf := float64(t)
	yAxis := mgl32.Vec3{0, 1, 0}

	return []Drawable{
		{
			Name:        "room",
			Model:       mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Scale3D(12, 6, 12)),
			Range:       RoomRange,
			TextureUnit: RoomTextureUnit,
		},
		{
			Name:        "table",
			Model:       mgl32.Translate3D(0, -1.5, -1).Mul4(mgl32.Scale3D(1.75, 0.75, 1)),
			Range:       CubeRange,
			TextureUnit: StoneTextureUnit,
			Visible:     true,
		},
		{
			Name: "bottom cube",
			Model: mgl32.Translate3D(0, -1.75, 1).
				Mul4(mgl32.Scale3D(0.5, 0.5, 0.5)).
				Mul4(rotate(45, yAxis)),
			Range:       CubeRange,
			TextureUnit: StoneTextureUnit,
			Visible:     true,
		},
		{
			Name:        "top cube",
			Model:       mgl32.Translate3D(0, -1.25, 1).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5)),
			Range:       CubeRange,
			TextureUnit: StoneTextureUnit,
			Visible:     true,
		},
		{
			Name: "octahedron",
			Model: mgl32.Translate3D(0, 1, 1).
				Mul4(mgl32.Scale3D(0.75, 0.75, 0.75)).
				Mul4(rotate(t*60, mgl32.Vec3{1, 1, 0})).
				Mul4(mgl32.Translate3D(float32(math.Cos(tf)), float32(math.Sin(tf)), 0)),
			Range:       OctahedronRange,
			TextureUnit: StoneTextureUnit,
			Visible:     true,
		},
		{
			Name: "pyramid",
			Model: mgl32.Translate3D(0, -1, -1).
				Mul4(mgl32.Scale3D(0.25, 0.25, 0.25)).
				Mul4(rotate(t*160, yAxis)).
				Mul4(mgl32.Translate3D(0, float32(math.Sin(tf))+1, 0)),
			Range:       PyramidRange,
			TextureUnit: StoneTextureUnit,
			Visible:     true,
		},
		{
			Name:        "floor",
			Model:       mgl32.Translate3D(0, -2, 0).Mul4(mgl32.Scale3D(24, 0.01, 24)),
			Range:       FloorRange,
			TextureUnit: RoomTextureUnit,
			Visible:     true,
		},
	}
}

// rotate builds a rotation of degrees around axis, which need not be unit length
func rotate(degrees float32, axis mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize())
}
