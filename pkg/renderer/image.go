package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Image is a flat RGB byte buffer, three bytes per pixel, row-major from the top row
type Image struct {
	Data   []byte
	Width  int
	Height int
}

// NewImage allocates a black image. Sizes outside the scene limits are rejected
// before anything is allocated.
func NewImage(width, height int) (*Image, error) {
	if err := scene.ValidateImageSize(width, height); err != nil {
		return nil, err
	}
	return &Image{
		Data:   make([]byte, width*height*3),
		Width:  width,
		Height: height,
	}, nil
}

// ToChar clamps a color channel to [0,1] and scales it to a byte by truncation
func ToChar(c float64) byte {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return byte(c * 255)
}

// SetColor stores the clamped color of pixel (x, y). Out of range pixels are ignored.
func (img *Image) SetColor(x, y int, c core.Vec3) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 3
	img.Data[i] = ToChar(c.X)
	img.Data[i+1] = ToChar(c.Y)
	img.Data[i+2] = ToChar(c.Z)
}

// At returns the stored bytes of pixel (x, y)
func (img *Image) At(x, y int) (r, g, b byte) {
	i := (y*img.Width + x) * 3
	return img.Data[i], img.Data[i+1], img.Data[i+2]
}

// RGBA converts the buffer to an opaque *image.RGBA
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// EncodePNG writes the image as a PNG
func (img *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, img.RGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
