package renderer

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Camera generates primary rays through the pixel centres of a pinhole image plane
type Camera struct {
	origin          core.Vec3
	forward         core.Vec3
	lowerLeftCorner core.Vec3
	right           core.Vec3 // Unit vector along increasing x
	up              core.Vec3 // Unit vector along increasing y
	viewportWidth   float64
	viewportHeight  float64
	width           int
	height          int
}

// NewCamera creates a camera from a scene's camera configuration
func NewCamera(config scene.CameraConfig) *Camera {
	look := config.LookTarget.Subtract(config.Position).Normalize()

	aspectRatio := 1.0
	if config.Height > 0 {
		aspectRatio = float64(config.Width) / float64(config.Height)
	}
	theta := config.FovY * math.Pi / 180.0
	viewportHeight := 2.0 * config.FocalLength * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	right := look.Cross(config.Up).Normalize()
	up := right.Cross(look).Normalize()

	lowerLeftCorner := config.Position.
		Add(look.Multiply(config.FocalLength)).
		Subtract(right.Multiply(viewportWidth / 2)).
		Subtract(up.Multiply(viewportHeight / 2))

	return &Camera{
		origin:          config.Position,
		forward:         look,
		lowerLeftCorner: lowerLeftCorner,
		right:           right,
		up:              up,
		viewportWidth:   viewportWidth,
		viewportHeight:  viewportHeight,
		width:           config.Width,
		height:          config.Height,
	}
}

// GetRayThruPixel returns the unit-direction ray through the centre of pixel (x, y).
// y grows upwards from the bottom row of the image plane.
func (c *Camera) GetRayThruPixel(x, y int) core.Ray {
	s := (float64(x) + 0.5) / float64(c.width) * c.viewportWidth
	t := (float64(y) + 0.5) / float64(c.height) * c.viewportHeight

	pixel := c.lowerLeftCorner.
		Add(c.right.Multiply(s)).
		Add(c.up.Multiply(t))

	return core.NewRay(c.origin, pixel.Subtract(c.origin).Normalize())
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}
